package services

import "learnhub/backend/models"

// The attempts log is append-only and has no materialized summary; every
// best-score or has-passed fact is recomputed by scanning a student's
// attempts for the quiz in question.

func AttemptsFor(attempts []models.QuizAttempt, studentID, quizID int) []models.QuizAttempt {
	var out []models.QuizAttempt
	for _, a := range attempts {
		if a.StudentID == studentID && a.QuizID == quizID {
			out = append(out, a)
		}
	}
	return out
}

// BestScore is the maximum score over all of a student's attempts at a quiz,
// or 0 when no attempts exist.
func BestScore(attempts []models.QuizAttempt, studentID, quizID int) float64 {
	best := 0.0
	for _, a := range attempts {
		if a.StudentID == studentID && a.QuizID == quizID && a.Score > best {
			best = a.Score
		}
	}
	return best
}

// HasPassed reports whether any attempt passed, regardless of later scores;
// passing is never revoked by a worse re-attempt.
func HasPassed(attempts []models.QuizAttempt, studentID, quizID int) bool {
	for _, a := range attempts {
		if a.StudentID == studentID && a.QuizID == quizID && a.Passed {
			return true
		}
	}
	return false
}
