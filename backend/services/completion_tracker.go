package services

import (
	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// CompletionTracker is the derivation engine behind certificates: it computes
// lesson-completion percentages, required-quiz pass state and certificate
// eligibility from the student record, the course record and the attempts
// log. Every method is a pure read; nothing here mutates stored state, so
// callers may re-derive as often as they like.
type CompletionTracker struct {
	store *storage.Store
}

func NewCompletionTracker(store *storage.Store) *CompletionTracker {
	return &CompletionTracker{store: store}
}

// snapshot gathers the facts one (student, course) derivation needs.
type completionFacts struct {
	student  models.User
	course   models.Course
	quizzes  []models.Quiz
	attempts []models.QuizAttempt
}

func (t *CompletionTracker) snapshot(studentID, courseID int) (completionFacts, error) {
	users := t.store.Users()
	ui := userIndex(users, studentID)
	if ui < 0 || !users[ui].IsStudent() {
		return completionFacts{}, errs.NotFound("student %d not found", studentID)
	}
	courses := t.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return completionFacts{}, errs.NotFound("course %d not found", courseID)
	}
	quizzes, attempts := t.store.QuizzesAndAttempts()
	return completionFacts{
		student:  users[ui],
		course:   courses[ci],
		quizzes:  quizzes,
		attempts: attempts,
	}, nil
}

// CompletionPercentage is the share of the course's lessons present in the
// student's completed set. A course with no lessons counts as 0%, not 100%;
// changing that would change eligibility display for empty courses.
func (t *CompletionTracker) CompletionPercentage(studentID, courseID int) (float64, error) {
	f, err := t.snapshot(studentID, courseID)
	if err != nil {
		return 0, err
	}
	return completionPercentage(f), nil
}

func completionPercentage(f completionFacts) float64 {
	total := len(f.course.Lessons)
	if total == 0 {
		return 0
	}
	// Intersect with the course's current lessons so completions recorded for
	// since-deleted lessons do not inflate the percentage.
	done := 0
	for _, l := range f.course.Lessons {
		if f.student.HasCompletedLesson(f.course.ID, l.ID) {
			done++
		}
	}
	return float64(done) * 100 / float64(total)
}

// AllLessonsCompleted holds when every lesson ID in the course appears in the
// student's completed set. A course with no lessons never satisfies it, so
// an empty course can never earn a certificate.
func (t *CompletionTracker) AllLessonsCompleted(studentID, courseID int) (bool, error) {
	f, err := t.snapshot(studentID, courseID)
	if err != nil {
		return false, err
	}
	return allLessonsCompleted(f), nil
}

func allLessonsCompleted(f completionFacts) bool {
	if len(f.course.Lessons) == 0 {
		return false
	}
	for _, l := range f.course.Lessons {
		if !f.student.HasCompletedLesson(f.course.ID, l.ID) {
			return false
		}
	}
	return true
}

// AllRequiredQuizzesPassed holds when every lesson carrying a required quiz
// has at least one passing attempt by the student. Lessons without a quiz, or
// with an optional one, are vacuously satisfied; a course with no lessons at
// all is not.
func (t *CompletionTracker) AllRequiredQuizzesPassed(studentID, courseID int) (bool, error) {
	f, err := t.snapshot(studentID, courseID)
	if err != nil {
		return false, err
	}
	return allRequiredQuizzesPassed(f), nil
}

func allRequiredQuizzesPassed(f completionFacts) bool {
	if len(f.course.Lessons) == 0 {
		return false
	}
	for _, l := range f.course.Lessons {
		quiz, ok := QuizForLesson(f.quizzes, f.course.ID, l.ID)
		if !ok || !quiz.Required {
			continue
		}
		if !HasPassed(f.attempts, f.student.ID, quiz.ID) {
			return false
		}
	}
	return true
}

// AverageScore is the mean of the student's best score on each quiz-bearing
// lesson of the course. A course with no quizzes averages to 100.0, full
// credit, since there is nothing to average. That asymmetry (0% completion
// for no lessons, 100.0 average for no quizzes) is deliberate; both values
// feed certificate records for edge-case courses.
func (t *CompletionTracker) AverageScore(studentID, courseID int) (float64, error) {
	f, err := t.snapshot(studentID, courseID)
	if err != nil {
		return 0, err
	}
	return averageScore(f), nil
}

func averageScore(f completionFacts) float64 {
	sum := 0.0
	count := 0
	for _, l := range f.course.Lessons {
		quiz, ok := QuizForLesson(f.quizzes, f.course.ID, l.ID)
		if !ok {
			continue
		}
		sum += BestScore(f.attempts, f.student.ID, quiz.ID)
		count++
	}
	if count == 0 {
		return 100.0
	}
	return sum / float64(count)
}

// EligibleForCertificate is the certificate gate: all lessons completed and
// all required quizzes passed. Once true it stays true: completions are
// never removed and a passing attempt is never erased by later re-attempts.
func (t *CompletionTracker) EligibleForCertificate(studentID, courseID int) (bool, error) {
	f, err := t.snapshot(studentID, courseID)
	if err != nil {
		return false, err
	}
	return allLessonsCompleted(f) && allRequiredQuizzesPassed(f), nil
}
