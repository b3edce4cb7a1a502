package services

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// env bundles every service over one temp-dir store so tests exercise the
// same wiring the server uses.
type env struct {
	store        *storage.Store
	tracker      *CompletionTracker
	users        *UserService
	courses      *CourseService
	quizzes      *QuizService
	students     *StudentService
	certificates *CertificateService
	analytics    *AnalyticsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	store, err := storage.New(t.TempDir(), logger)
	require.NoError(t, err)

	tracker := NewCompletionTracker(store)
	return &env{
		store:        store,
		tracker:      tracker,
		users:        NewUserService(store, logger),
		courses:      NewCourseService(store, logger),
		quizzes:      NewQuizService(store, logger),
		students:     NewStudentService(store, tracker, logger),
		certificates: NewCertificateService(store, tracker, logger),
		analytics:    NewAnalyticsService(store, logger),
	}
}

// seedAdmin provisions an admin directly; admins are not created via signup.
func (e *env) seedAdmin(t *testing.T, username string) models.User {
	t.Helper()
	var admin models.User
	err := e.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		admin = models.User{
			ID:       storage.NextUserID(users),
			Username: username,
			Email:    username + "@learnhub.test",
			Role:     models.RoleAdmin,
		}
		return append(users, admin), nil
	})
	require.NoError(t, err)
	return admin
}

func (e *env) signup(t *testing.T, username, role string) models.User {
	t.Helper()
	user, err := e.users.Signup(SignupInput{
		Username: username,
		Email:    username + "@learnhub.test",
		Password: "hunter22",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// seedApprovedCourse builds the standard fixture: an instructor-owned
// approved course with two lessons, the first carrying a required quiz.
func (e *env) seedApprovedCourse(t *testing.T, instructorID int) models.Course {
	t.Helper()
	course, err := e.courses.Create(instructorID, CourseInput{
		Title:       "Distributed Systems",
		Description: "Consensus, replication and failure models.",
	})
	require.NoError(t, err)

	_, err = e.courses.AddLesson(instructorID, course.ID, LessonInput{Title: "Clocks", Content: "Lamport clocks."})
	require.NoError(t, err)
	_, err = e.courses.AddLesson(instructorID, course.ID, LessonInput{Title: "Consensus", Content: "Raft."})
	require.NoError(t, err)

	_, err = e.quizzes.SetLessonQuiz(instructorID, course.ID, 1, QuizInput{
		PassingScore: 60,
		Required:     true,
		Questions: []QuestionInput{
			{Text: "Happened-before is", OptionA: "total", OptionB: "partial", OptionC: "empty", OptionD: "cyclic", CorrectAnswer: "B"},
			{Text: "Raft elects a", OptionA: "leader", OptionB: "king", OptionC: "broker", OptionD: "peer", CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	admin := e.seedAdmin(t, fmt.Sprintf("reviewer%d", course.ID))
	require.NoError(t, e.courses.Approve(admin.ID, course.ID))

	approved, err := e.courses.ByID(course.ID)
	require.NoError(t, err)
	return approved
}

// passQuiz submits a fully correct answer sheet for lesson 1's quiz.
func (e *env) passQuiz(t *testing.T, studentID, courseID, lessonID int, answers []string) models.QuizAttempt {
	t.Helper()
	attempt, err := e.quizzes.Submit(studentID, courseID, lessonID, answers)
	require.NoError(t, err)
	return attempt
}
