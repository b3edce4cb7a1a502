package models

import (
	"strings"
	"time"
)

type Question struct {
	ID            int     `json:"questionId"`
	Text          string  `json:"questionText"`
	OptionA       string  `json:"optionA"`
	OptionB       string  `json:"optionB"`
	OptionC       string  `json:"optionC"`
	OptionD       string  `json:"optionD"`
	CorrectAnswer string  `json:"correctAnswer"`
	Explanation   *string `json:"explanation"`
}

// Quiz is bound to at most one lesson through the (CourseID, LessonID) pair.
type Quiz struct {
	ID           int        `json:"quizId"`
	CourseID     int        `json:"courseId"`
	LessonID     int        `json:"lessonId"`
	PassingScore int        `json:"passingScore"` // 0-100
	Required     bool       `json:"required"`
	Questions    []Question `json:"questions"`
}

// Evaluate scores an answer sheet as the percentage of questions answered
// exactly right, case-insensitively. An answer list whose length does not
// match the question count scores 0.
func (q *Quiz) Evaluate(answers []string) float64 {
	if len(q.Questions) == 0 || len(answers) != len(q.Questions) {
		return 0
	}
	correct := 0
	for i, question := range q.Questions {
		if strings.EqualFold(question.CorrectAnswer, answers[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(q.Questions)) * 100
}

// QuizAttempt is an immutable event appended to the attempts log; best-score
// and has-passed facts are derived by scanning a student's attempts.
type QuizAttempt struct {
	ID        int       `json:"attemptId"`
	StudentID int       `json:"studentId"`
	QuizID    int       `json:"quizId"`
	LessonID  int       `json:"lessonId"`
	CourseID  int       `json:"courseId"`
	Answers   []string  `json:"studentAnswers"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"attemptDate"`
}
