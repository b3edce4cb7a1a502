package services

import (
	"log"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// StudentService covers the student-facing operations: browsing, the
// dual-written enrollment relationship, lesson completion and progress.
type StudentService struct {
	store   *storage.Store
	tracker *CompletionTracker
	logger  *log.Logger
}

func NewStudentService(store *storage.Store, tracker *CompletionTracker, logger *log.Logger) *StudentService {
	return &StudentService{store: store, tracker: tracker, logger: logger}
}

// BrowseCourses lists the courses students may see: approved ones only.
func (s *StudentService) BrowseCourses() []models.Course {
	var out []models.Course
	for _, c := range s.store.Courses() {
		if c.IsApproved() {
			out = append(out, c)
		}
	}
	return out
}

// Enroll records the relationship on both sides, the student's course list
// and the course's student list, in one critical section over both
// collections. Only approved courses are enrollable.
func (s *StudentService) Enroll(studentID, courseID int) error {
	return s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ui := userIndex(users, studentID)
		if ui < 0 || !users[ui].IsStudent() {
			return nil, nil, errs.NotFound("student %d not found", studentID)
		}
		ci := courseIndex(courses, courseID)
		if ci < 0 {
			return nil, nil, errs.NotFound("course %d not found", courseID)
		}
		if !courses[ci].IsApproved() {
			return nil, nil, errs.Precondition("course %d is not approved for enrollment", courseID)
		}
		if users[ui].IsEnrolledIn(courseID) {
			return nil, nil, errs.Precondition("student %d is already enrolled in course %d", studentID, courseID)
		}
		users[ui].Enroll(courseID)
		courses[ci].EnrollStudent(studentID)
		return users, courses, nil
	})
}

func (s *StudentService) Unenroll(studentID, courseID int) error {
	return s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ui := userIndex(users, studentID)
		if ui < 0 || !users[ui].IsStudent() {
			return nil, nil, errs.NotFound("student %d not found", studentID)
		}
		ci := courseIndex(courses, courseID)
		if ci < 0 {
			return nil, nil, errs.NotFound("course %d not found", courseID)
		}
		if !users[ui].IsEnrolledIn(courseID) {
			return nil, nil, errs.Precondition("student %d is not enrolled in course %d", studentID, courseID)
		}
		users[ui].Unenroll(courseID)
		courses[ci].UnenrollStudent(studentID)
		return users, courses, nil
	})
}

func (s *StudentService) EnrolledCourses(studentID int) ([]models.Course, error) {
	users := s.store.Users()
	ui := userIndex(users, studentID)
	if ui < 0 || !users[ui].IsStudent() {
		return nil, errs.NotFound("student %d not found", studentID)
	}
	courses := s.store.Courses()
	var out []models.Course
	for _, id := range users[ui].EnrolledCourses {
		if ci := courseIndex(courses, id); ci >= 0 {
			out = append(out, courses[ci])
		}
	}
	return out, nil
}

// Lessons returns a course's lesson sequence for student consumption;
// content is visible only once the course is approved.
func (s *StudentService) Lessons(courseID int) ([]models.Lesson, error) {
	courses := s.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return nil, errs.NotFound("course %d not found", courseID)
	}
	if !courses[ci].IsApproved() {
		return nil, errs.Precondition("course %d is not approved", courseID)
	}
	return courses[ci].Lessons, nil
}

// MarkLessonComplete records a lesson completion. The gates, in order: the
// student must be enrolled, the lesson must not already be complete (reported
// as a precondition, not treated as a crash or silently swallowed), and a
// required quiz on the lesson must already be passed.
func (s *StudentService) MarkLessonComplete(studentID, courseID, lessonID int) error {
	return s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		ui := userIndex(users, studentID)
		if ui < 0 || !users[ui].IsStudent() {
			return nil, errs.NotFound("student %d not found", studentID)
		}
		if !users[ui].IsEnrolledIn(courseID) {
			return nil, errs.Precondition("student %d is not enrolled in course %d", studentID, courseID)
		}

		// Reads below take the courses and quizzes locks while holding the
		// users lock, which follows the store's documented lock order.
		courses := s.store.Courses()
		ci := courseIndex(courses, courseID)
		if ci < 0 {
			return nil, errs.NotFound("course %d not found", courseID)
		}
		if _, ok := courses[ci].LessonByID(lessonID); !ok {
			return nil, errs.NotFound("lesson %d not found in course %d", lessonID, courseID)
		}
		if users[ui].HasCompletedLesson(courseID, lessonID) {
			return nil, errs.Precondition("lesson %d already completed", lessonID)
		}

		quizzes, attempts := s.store.QuizzesAndAttempts()
		if quiz, ok := QuizForLesson(quizzes, courseID, lessonID); ok && quiz.Required {
			if !HasPassed(attempts, studentID, quiz.ID) {
				return nil, errs.Precondition("lesson %d requires passing its quiz first", lessonID)
			}
		}

		users[ui].MarkLessonCompleted(courseID, lessonID)
		return users, nil
	})
}

// Progress is the student's lesson-completion percentage for a course.
func (s *StudentService) Progress(studentID, courseID int) (float64, error) {
	return s.tracker.CompletionPercentage(studentID, courseID)
}

// IsLessonAccessible applies sequential gating: lesson N is reachable only
// when lesson N-1 is complete and, if N-1 carries a required quiz, that quiz
// is passed. The first lesson is always accessible.
func (s *StudentService) IsLessonAccessible(studentID, courseID, lessonID int) (bool, error) {
	users := s.store.Users()
	ui := userIndex(users, studentID)
	if ui < 0 || !users[ui].IsStudent() {
		return false, errs.NotFound("student %d not found", studentID)
	}
	courses := s.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return false, errs.NotFound("course %d not found", courseID)
	}
	idx := courses[ci].LessonIndex(lessonID)
	if idx < 0 {
		return false, errs.NotFound("lesson %d not found in course %d", lessonID, courseID)
	}
	if idx == 0 {
		return true, nil
	}

	prev := courses[ci].Lessons[idx-1]
	if !users[ui].HasCompletedLesson(courseID, prev.ID) {
		return false, nil
	}
	quizzes, attempts := s.store.QuizzesAndAttempts()
	if quiz, ok := QuizForLesson(quizzes, courseID, prev.ID); ok && quiz.Required {
		if !HasPassed(attempts, studentID, quiz.ID) {
			return false, nil
		}
	}
	return true, nil
}
