package storage

import "learnhub/backend/models"

// ID allocation is max(existing)+1 over a freshly loaded collection; there is
// no persisted counter. IDs regress only if the maximum-seen record is ever
// deleted, and allocations are race-free as long as they happen inside the
// collection's Update* critical section.

func NextUserID(users []models.User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func NextCourseID(courses []models.Course) int {
	max := 0
	for _, c := range courses {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// NextLessonID is scoped to a single course; lesson IDs are not global.
func NextLessonID(course models.Course) int {
	max := 0
	for _, l := range course.Lessons {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

func NextQuizID(quizzes []models.Quiz) int {
	max := 0
	for _, q := range quizzes {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

func NextAttemptID(attempts []models.QuizAttempt) int {
	max := 0
	for _, a := range attempts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

func NextCertificateID(certs []models.Certificate) int {
	max := 0
	for _, c := range certs {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
