package models

import "slices"

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Lesson IDs are unique within their owning course only. QuizRequired
// mirrors the bound quiz's required flag; the quiz record stays the
// authority, the mirror is maintained whenever the quiz is set or removed.
type Lesson struct {
	ID           int    `json:"lessonId"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	QuizRequired bool   `json:"quizRequired"`
}

// Course embeds its lessons; the quiz for a lesson lives in the quizzes
// collection and is looked up by the (courseId, lessonId) pair.
type Course struct {
	ID               int      `json:"courseId"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	InstructorID     int      `json:"instructorId"`
	Lessons          []Lesson `json:"lessons"`
	EnrolledStudents []int    `json:"students"`

	Status          ApprovalStatus `json:"approvalStatus"`
	SubmissionDate  *DateTime      `json:"submissionDate"`
	ApprovalDate    *DateTime      `json:"approvalDate"`
	ReviewedBy      *string        `json:"reviewedBy"`
	RejectionReason *string        `json:"rejectionReason"`
}

func NewCourse(id int, title, description string, instructorID int) Course {
	now := Now()
	return Course{
		ID:               id,
		Title:            title,
		Description:      description,
		InstructorID:     instructorID,
		Lessons:          []Lesson{},
		EnrolledStudents: []int{},
		Status:           StatusPending,
		SubmissionDate:   &now,
	}
}

func (c *Course) IsApproved() bool { return c.Status == StatusApproved }
func (c *Course) IsPending() bool  { return c.Status == StatusPending }
func (c *Course) IsRejected() bool { return c.Status == StatusRejected }

// Approve moves the course to APPROVED and clears any prior rejection reason.
func (c *Course) Approve(reviewer string) {
	now := Now()
	c.Status = StatusApproved
	c.ApprovalDate = &now
	c.ReviewedBy = &reviewer
	c.RejectionReason = nil
}

// Reject moves the course to REJECTED. Callers must validate that the reason
// is non-empty before getting here.
func (c *Course) Reject(reviewer, reason string) {
	now := Now()
	c.Status = StatusRejected
	c.ApprovalDate = &now
	c.ReviewedBy = &reviewer
	c.RejectionReason = &reason
}

// Resubmit returns a rejected course to the review queue. Editing an approved
// course does not change its status, so this only fires from REJECTED.
func (c *Course) Resubmit() {
	if c.Status != StatusRejected {
		return
	}
	now := Now()
	c.Status = StatusPending
	c.SubmissionDate = &now
}

func (c *Course) LessonByID(lessonID int) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == lessonID {
			return l, true
		}
	}
	return Lesson{}, false
}

// LessonIndex returns the position of a lesson in the course's ordered
// sequence, or -1. Sequential gating is defined over this order.
func (c *Course) LessonIndex(lessonID int) int {
	return slices.IndexFunc(c.Lessons, func(l Lesson) bool { return l.ID == lessonID })
}

func (c *Course) IsStudentEnrolled(studentID int) bool {
	return slices.Contains(c.EnrolledStudents, studentID)
}

func (c *Course) EnrollStudent(studentID int) {
	if !c.IsStudentEnrolled(studentID) {
		c.EnrolledStudents = append(c.EnrolledStudents, studentID)
	}
}

func (c *Course) UnenrollStudent(studentID int) {
	c.EnrolledStudents = slices.DeleteFunc(c.EnrolledStudents, func(id int) bool {
		return id == studentID
	})
}
