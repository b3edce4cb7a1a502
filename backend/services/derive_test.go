package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"learnhub/backend/models"
)

func TestBestScoreIsMaxOverAttempts(t *testing.T) {
	attempts := []models.QuizAttempt{
		{ID: 1, StudentID: 7, QuizID: 3, Score: 40, Passed: false},
		{ID: 2, StudentID: 7, QuizID: 3, Score: 95, Passed: true},
		{ID: 3, StudentID: 7, QuizID: 3, Score: 70, Passed: true},
		{ID: 4, StudentID: 8, QuizID: 3, Score: 100, Passed: true}, // someone else
		{ID: 5, StudentID: 7, QuizID: 9, Score: 10, Passed: false}, // another quiz
	}

	assert.InDelta(t, 95.0, BestScore(attempts, 7, 3), 0.001)
	assert.True(t, HasPassed(attempts, 7, 3))
	assert.Len(t, AttemptsFor(attempts, 7, 3), 3)
}

func TestBestScoreWithoutAttemptsIsZero(t *testing.T) {
	assert.Zero(t, BestScore(nil, 7, 3))
	assert.False(t, HasPassed(nil, 7, 3))
}

// Passing is judged per attempt, not from the latest one: an early pass is
// never undone by later failing attempts.
func TestHasPassedIgnoresAttemptOrder(t *testing.T) {
	attempts := []models.QuizAttempt{
		{ID: 1, StudentID: 7, QuizID: 3, Score: 80, Passed: true},
		{ID: 2, StudentID: 7, QuizID: 3, Score: 20, Passed: false},
	}
	assert.True(t, HasPassed(attempts, 7, 3))
	assert.InDelta(t, 80.0, BestScore(attempts, 7, 3), 0.001)
}
