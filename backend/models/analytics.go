package models

// Completion status labels derived from the completion percentage.
const (
	CompletionNotStarted = "Not Started"
	CompletionStarted    = "Started"
	CompletionInProgress = "In Progress"
	CompletionCompleted  = "Completed"
)

// StudentPerformance is a read-side projection of one student's standing in
// one course. Never persisted.
type StudentPerformance struct {
	StudentID            int     `json:"studentId"`
	StudentName          string  `json:"studentName"`
	StudentEmail         string  `json:"studentEmail"`
	CourseID             int     `json:"courseId"`
	LessonsCompleted     int     `json:"lessonsCompleted"`
	TotalLessons         int     `json:"totalLessons"`
	CompletionPercentage float64 `json:"completionPercentage"`
	AverageQuizScore     float64 `json:"averageQuizScore"`
	QuizzesTaken         int     `json:"quizzesTaken"`
	QuizzesPassed        int     `json:"quizzesPassed"`
}

// Status buckets the completion percentage: 0 / (0,50) / [50,100) / 100.
func (p *StudentPerformance) Status() string {
	switch {
	case p.CompletionPercentage == 100:
		return CompletionCompleted
	case p.CompletionPercentage >= 50:
		return CompletionInProgress
	case p.CompletionPercentage > 0:
		return CompletionStarted
	default:
		return CompletionNotStarted
	}
}

type LessonStats struct {
	LessonID          int     `json:"lessonId"`
	LessonTitle       string  `json:"lessonTitle"`
	StudentsCompleted int     `json:"studentsCompleted"`
	AverageQuizScore  float64 `json:"averageQuizScore"`
	QuizAttempts      int     `json:"quizAttempts"`
}

type CourseStatistics struct {
	CourseID          int           `json:"courseId"`
	CourseTitle       string        `json:"courseTitle"`
	TotalEnrolled     int           `json:"totalStudentsEnrolled"`
	StudentsCompleted int           `json:"studentsCompleted"`
	AverageProgress   float64       `json:"averageProgress"`
	AverageQuizScore  float64       `json:"averageQuizScore"`
	CompletionRate    float64       `json:"completionRate"`
	LessonStatistics  []LessonStats `json:"lessonStatistics"`
}

// PlatformStatistics is the admin dashboard's course-count rollup.
type PlatformStatistics struct {
	TotalCourses    int `json:"totalCourses"`
	PendingCourses  int `json:"pendingCourses"`
	ApprovedCourses int `json:"approvedCourses"`
	RejectedCourses int `json:"rejectedCourses"`
}
