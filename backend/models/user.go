package models

import "slices"

// Role values stored on the user record. The role selects which of the
// variant fields below carry data; the others stay empty.
const (
	RoleStudent    = "Student"
	RoleInstructor = "Instructor"
	RoleAdmin      = "Admin"
)

type User struct {
	ID           int    `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`

	// Variant fields are always serialized so the stored schema stays
	// stable: the record's own-role collections start empty, the others
	// stay null.

	// Student fields
	EnrolledCourses  []int         `json:"enrolledCourses"`
	CompletedLessons map[int][]int `json:"completedLessons"` // courseId -> lessonIds
	// QuizScores is the legacy lessonId -> best score map. It is kept up to
	// date on submission for older readers, but pass/fail and best-score facts
	// are always derived from the attempts log.
	QuizScores         map[int]float64 `json:"quizScores"`
	EarnedCertificates []int           `json:"earnedCertificates"`

	// Instructor fields
	CreatedCourses []int `json:"createdCourses"`

	// Admin fields
	ReviewedCourses []int `json:"reviewedCourses"`
}

// NewUser builds a fresh account record with the collections of its own role
// initialized, so they serialize as empty rather than null.
func NewUser(id int, username, email, passwordHash, role string) User {
	u := User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	switch role {
	case RoleStudent:
		u.EnrolledCourses = []int{}
		u.CompletedLessons = map[int][]int{}
		u.QuizScores = map[int]float64{}
		u.EarnedCertificates = []int{}
	case RoleInstructor:
		u.CreatedCourses = []int{}
	case RoleAdmin:
		u.ReviewedCourses = []int{}
	}
	return u
}

func (u *User) IsStudent() bool    { return u.Role == RoleStudent }
func (u *User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }

func (u *User) IsEnrolledIn(courseID int) bool {
	return slices.Contains(u.EnrolledCourses, courseID)
}

// CompletedLessonsIn returns the student's completed lesson IDs for a course.
func (u *User) CompletedLessonsIn(courseID int) []int {
	if u.CompletedLessons == nil {
		return nil
	}
	return u.CompletedLessons[courseID]
}

func (u *User) HasCompletedLesson(courseID, lessonID int) bool {
	return slices.Contains(u.CompletedLessonsIn(courseID), lessonID)
}

// MarkLessonCompleted records a lesson in the student's completion map.
// Adding the same lesson twice is a no-op.
func (u *User) MarkLessonCompleted(courseID, lessonID int) {
	if u.HasCompletedLesson(courseID, lessonID) {
		return
	}
	if u.CompletedLessons == nil {
		u.CompletedLessons = make(map[int][]int)
	}
	u.CompletedLessons[courseID] = append(u.CompletedLessons[courseID], lessonID)
}

func (u *User) Enroll(courseID int) {
	if !u.IsEnrolledIn(courseID) {
		u.EnrolledCourses = append(u.EnrolledCourses, courseID)
	}
}

func (u *User) Unenroll(courseID int) {
	u.EnrolledCourses = slices.DeleteFunc(u.EnrolledCourses, func(id int) bool {
		return id == courseID
	})
}

func (u *User) AddCertificate(certificateID int) {
	if !slices.Contains(u.EarnedCertificates, certificateID) {
		u.EarnedCertificates = append(u.EarnedCertificates, certificateID)
	}
}
