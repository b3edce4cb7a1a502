package models

// Certificate snapshots the display fields at issue time so the document
// remains renderable even if the referenced records change later. At most one
// certificate ever exists per (StudentID, CourseID) pair.
type Certificate struct {
	ID             int      `json:"certificateId"`
	StudentID      int      `json:"studentId"`
	CourseID       int      `json:"courseId"`
	StudentName    string   `json:"studentName"`
	CourseTitle    string   `json:"courseTitle"`
	InstructorName string   `json:"instructorName"`
	FinalScore     float64  `json:"finalScore"`
	IssueDate      DateTime `json:"issueDate"`
}
