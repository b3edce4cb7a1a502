package services

import (
	"log"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// AnalyticsService builds the instructor and admin dashboards. All of it is
// read-side: every figure is derived on request from the stored collections,
// so the numbers cannot drift from the records they describe.
type AnalyticsService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewAnalyticsService(store *storage.Store, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

// StudentPerformances reports every enrolled student's standing in a course,
// using the same derivations the certificate eligibility check uses.
func (s *AnalyticsService) StudentPerformances(courseID int) ([]models.StudentPerformance, error) {
	courses := s.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return nil, errs.NotFound("course %d not found", courseID)
	}
	course := courses[ci]
	users := s.store.Users()
	quizzes, attempts := s.store.QuizzesAndAttempts()

	perfs := make([]models.StudentPerformance, 0, len(course.EnrolledStudents))
	for _, studentID := range course.EnrolledStudents {
		ui := userIndex(users, studentID)
		if ui < 0 {
			continue
		}
		student := users[ui]
		f := completionFacts{student: student, course: course, quizzes: quizzes, attempts: attempts}

		taken, passed := 0, 0
		for _, lesson := range course.Lessons {
			quiz, ok := QuizForLesson(quizzes, courseID, lesson.ID)
			if !ok {
				continue
			}
			if len(AttemptsFor(attempts, studentID, quiz.ID)) > 0 {
				taken++
			}
			if HasPassed(attempts, studentID, quiz.ID) {
				passed++
			}
		}

		perfs = append(perfs, models.StudentPerformance{
			StudentID:            studentID,
			StudentName:          student.Username,
			StudentEmail:         student.Email,
			CourseID:             courseID,
			LessonsCompleted:     len(student.CompletedLessonsIn(courseID)),
			TotalLessons:         len(course.Lessons),
			CompletionPercentage: completionPercentage(f),
			AverageQuizScore:     averageScore(f),
			QuizzesTaken:         taken,
			QuizzesPassed:        passed,
		})
	}
	return perfs, nil
}

// CourseStatistics aggregates enrollment, progress and per-lesson figures for
// one course. Lesson averages are taken over students who attempted that
// lesson's quiz; a lesson nobody attempted reports 0.
func (s *AnalyticsService) CourseStatistics(courseID int) (models.CourseStatistics, error) {
	courses := s.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return models.CourseStatistics{}, errs.NotFound("course %d not found", courseID)
	}
	course := courses[ci]

	perfs, err := s.StudentPerformances(courseID)
	if err != nil {
		return models.CourseStatistics{}, err
	}

	stats := models.CourseStatistics{
		CourseID:      courseID,
		CourseTitle:   course.Title,
		TotalEnrolled: len(perfs),
	}

	var progressSum, scoreSum float64
	for _, p := range perfs {
		progressSum += p.CompletionPercentage
		scoreSum += p.AverageQuizScore
		if p.CompletionPercentage == 100 {
			stats.StudentsCompleted++
		}
	}
	if len(perfs) > 0 {
		stats.AverageProgress = progressSum / float64(len(perfs))
		stats.AverageQuizScore = scoreSum / float64(len(perfs))
		stats.CompletionRate = float64(stats.StudentsCompleted) / float64(len(perfs)) * 100
	}

	users := s.store.Users()
	quizzes, attempts := s.store.QuizzesAndAttempts()
	for _, lesson := range course.Lessons {
		ls := models.LessonStats{LessonID: lesson.ID, LessonTitle: lesson.Title}
		for _, studentID := range course.EnrolledStudents {
			ui := userIndex(users, studentID)
			if ui < 0 {
				continue
			}
			if users[ui].HasCompletedLesson(courseID, lesson.ID) {
				ls.StudentsCompleted++
			}
		}
		if quiz, ok := QuizForLesson(quizzes, courseID, lesson.ID); ok {
			var bestSum float64
			attempted := 0
			for _, studentID := range course.EnrolledStudents {
				n := len(AttemptsFor(attempts, studentID, quiz.ID))
				if n == 0 {
					continue
				}
				ls.QuizAttempts += n
				bestSum += BestScore(attempts, studentID, quiz.ID)
				attempted++
			}
			if attempted > 0 {
				ls.AverageQuizScore = bestSum / float64(attempted)
			}
		}
		stats.LessonStatistics = append(stats.LessonStatistics, ls)
	}
	return stats, nil
}

// CompletionBreakdown counts the course's students by status label.
func (s *AnalyticsService) CompletionBreakdown(courseID int) (map[string]int, error) {
	perfs, err := s.StudentPerformances(courseID)
	if err != nil {
		return nil, err
	}
	breakdown := map[string]int{
		models.CompletionNotStarted: 0,
		models.CompletionStarted:    0,
		models.CompletionInProgress: 0,
		models.CompletionCompleted:  0,
	}
	for i := range perfs {
		breakdown[perfs[i].Status()]++
	}
	return breakdown, nil
}
