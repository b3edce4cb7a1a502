package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/errs"
	"learnhub/backend/models"
)

func completeCourse(t *testing.T, e *env, studentID, courseID int) {
	t.Helper()
	e.passQuiz(t, studentID, courseID, 1, []string{"B", "A"})
	require.NoError(t, e.students.MarkLessonComplete(studentID, courseID, 1))
	require.NoError(t, e.students.MarkLessonComplete(studentID, courseID, 2))
}

func TestIssueRequiresEligibility(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))

	_, err := e.certificates.Issue(student.ID, course.ID)
	require.Error(t, err)
	assert.True(t, errs.IsPrecondition(err))
	assert.Empty(t, e.certificates.ForStudent(student.ID))
}

func TestIssueSnapshotsDisplayFields(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))
	completeCourse(t, e, student.ID, course.ID)

	cert, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, cert.ID)
	assert.Equal(t, "ada", cert.StudentName)
	assert.Equal(t, course.Title, cert.CourseTitle)
	assert.Equal(t, "ivan", cert.InstructorName)
	assert.InDelta(t, 100.0, cert.FinalScore, 0.001)
	assert.False(t, cert.IssueDate.IsZero())

	// The student side of the link was written in the same transaction.
	stored, err := e.users.FindByID(student.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.EarnedCertificates, cert.ID)
}

func TestIssueIsIdempotent(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))
	completeCourse(t, e, student.ID, course.ID)

	first, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)
	second, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, e.certificates.ForStudent(student.ID), 1)
}

func TestIssueRepairsMissingStudentLink(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))
	completeCourse(t, e, student.ID, course.ID)

	cert, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)

	// Simulate a crash between the certificate write and the user write by
	// stripping the student-side link.
	require.NoError(t, e.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for i := range users {
			users[i].EarnedCertificates = nil
		}
		return users, nil
	}))

	again, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, cert.ID, again.ID)

	stored, err := e.users.FindByID(student.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.EarnedCertificates, cert.ID)
}

func TestCertificateSnapshotSurvivesRename(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))
	completeCourse(t, e, student.ID, course.ID)

	cert, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)

	_, err = e.courses.Edit(instructor.ID, course.ID, CourseInput{
		Title:       "Renamed Course",
		Description: "The description also changed after issuance.",
	})
	require.NoError(t, err)

	got, err := e.certificates.ByID(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, got.CourseTitle)
}

func TestRenderPDF(t *testing.T) {
	e := newEnv(t)
	instructor := e.signup(t, "ivan", models.RoleInstructor)
	student := e.signup(t, "ada", models.RoleStudent)
	course := e.seedApprovedCourse(t, instructor.ID)
	require.NoError(t, e.students.Enroll(student.ID, course.ID))
	completeCourse(t, e, student.ID, course.ID)

	cert, err := e.certificates.Issue(student.ID, course.ID)
	require.NoError(t, err)

	pdf, err := e.certificates.RenderPDF(cert)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
