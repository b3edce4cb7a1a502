// Package services implements the platform's business operations on top of
// the document store: accounts, course lifecycle, quizzes and attempts, the
// completion/eligibility engine, certificate issuance and analytics.
package services

import (
	"github.com/go-playground/validator/v10"

	"learnhub/backend/models"
)

var validate = validator.New()

// References between collections are weak: a stored ID is resolved by
// scanning the target collection. All resolution goes through these named
// lookup functions; each is O(n) over its collection, which is fine at the
// document sizes this store handles.

func userIndex(users []models.User, id int) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func courseIndex(courses []models.Course, id int) int {
	for i := range courses {
		if courses[i].ID == id {
			return i
		}
	}
	return -1
}

// QuizForLesson discovers the quiz bound to a lesson by scanning the quiz
// collection for a matching (courseId, lessonId) pair; the binding is not
// stored inside the lesson record.
func QuizForLesson(quizzes []models.Quiz, courseID, lessonID int) (models.Quiz, bool) {
	for _, q := range quizzes {
		if q.CourseID == courseID && q.LessonID == lessonID {
			return q, true
		}
	}
	return models.Quiz{}, false
}

func quizByID(quizzes []models.Quiz, quizID int) (models.Quiz, bool) {
	for _, q := range quizzes {
		if q.ID == quizID {
			return q, true
		}
	}
	return models.Quiz{}, false
}

// instructorName resolves a display name by scanning the users collection.
func instructorName(users []models.User, instructorID int) string {
	if i := userIndex(users, instructorID); i >= 0 && users[i].IsInstructor() {
		return users[i].Username
	}
	return "Unknown Instructor"
}
