package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/errs"
	"learnhub/backend/models"
)

func TestStudentPerformanceStatusLabels(t *testing.T) {
	cases := []struct {
		pct   float64
		label string
	}{
		{0, models.CompletionNotStarted},
		{10, models.CompletionStarted},
		{49.9, models.CompletionStarted},
		{50, models.CompletionInProgress},
		{99.9, models.CompletionInProgress},
		{100, models.CompletionCompleted},
	}
	for _, tc := range cases {
		p := models.StudentPerformance{CompletionPercentage: tc.pct}
		assert.Equal(t, tc.label, p.Status(), "pct=%v", tc.pct)
	}
}

func TestStudentPerformances(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	ada := e.signup(t, "ada", models.RoleStudent)
	bob := e.signup(t, "bob", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(ada.ID, course.ID))
	require.NoError(t, e.students.Enroll(bob.ID, course.ID))

	// ada finishes everything; bob never starts.
	e.passQuiz(t, ada.ID, course.ID, 1, []string{"B", "A"})
	require.NoError(t, e.students.MarkLessonComplete(ada.ID, course.ID, 1))
	require.NoError(t, e.students.MarkLessonComplete(ada.ID, course.ID, 2))

	perfs, err := e.analytics.StudentPerformances(course.ID)
	require.NoError(t, err)
	require.Len(t, perfs, 2)

	byID := map[int]models.StudentPerformance{}
	for _, p := range perfs {
		byID[p.StudentID] = p
	}

	adaPerf := byID[ada.ID]
	assert.Equal(t, 2, adaPerf.LessonsCompleted)
	assert.InDelta(t, 100.0, adaPerf.CompletionPercentage, 0.001)
	assert.Equal(t, 1, adaPerf.QuizzesTaken)
	assert.Equal(t, 1, adaPerf.QuizzesPassed)
	assert.Equal(t, models.CompletionCompleted, adaPerf.Status())

	bobPerf := byID[bob.ID]
	assert.Zero(t, bobPerf.LessonsCompleted)
	assert.Zero(t, bobPerf.QuizzesTaken)
	assert.Equal(t, models.CompletionNotStarted, bobPerf.Status())
}

func TestCourseStatistics(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	ada := e.signup(t, "ada", models.RoleStudent)
	bob := e.signup(t, "bob", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(ada.ID, course.ID))
	require.NoError(t, e.students.Enroll(bob.ID, course.ID))

	e.passQuiz(t, ada.ID, course.ID, 1, []string{"B", "A"})
	require.NoError(t, e.students.MarkLessonComplete(ada.ID, course.ID, 1))
	require.NoError(t, e.students.MarkLessonComplete(ada.ID, course.ID, 2))

	stats, err := e.analytics.CourseStatistics(course.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalEnrolled)
	assert.Equal(t, 1, stats.StudentsCompleted)
	assert.InDelta(t, 50.0, stats.AverageProgress, 0.001)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)

	require.Len(t, stats.LessonStatistics, 2)
	first := stats.LessonStatistics[0]
	assert.Equal(t, 1, first.StudentsCompleted)
	assert.Equal(t, 1, first.QuizAttempts)
	// Lesson averages cover only students who attempted the quiz.
	assert.InDelta(t, 100.0, first.AverageQuizScore, 0.001)

	second := stats.LessonStatistics[1]
	assert.Equal(t, 1, second.StudentsCompleted)
	assert.Zero(t, second.QuizAttempts)
	assert.Zero(t, second.AverageQuizScore)
}

func TestCompletionBreakdown(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	ada := e.signup(t, "ada", models.RoleStudent)
	bob := e.signup(t, "bob", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(ada.ID, course.ID))
	require.NoError(t, e.students.Enroll(bob.ID, course.ID))

	e.passQuiz(t, ada.ID, course.ID, 1, []string{"B", "A"})
	require.NoError(t, e.students.MarkLessonComplete(ada.ID, course.ID, 1))

	breakdown, err := e.analytics.CompletionBreakdown(course.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		models.CompletionNotStarted: 1,
		models.CompletionStarted:    0,
		models.CompletionInProgress: 1,
		models.CompletionCompleted:  0,
	}, breakdown)
}

func TestAnalyticsUnknownCourse(t *testing.T) {
	e := newEnv(t)

	_, err := e.analytics.StudentPerformances(404)
	assert.True(t, errs.IsNotFound(err))
	_, err = e.analytics.CourseStatistics(404)
	assert.True(t, errs.IsNotFound(err))
}
