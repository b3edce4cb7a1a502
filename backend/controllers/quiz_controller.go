package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type QuizController struct {
	Quizzes *services.QuizService
}

func NewQuizController(quizzes *services.QuizService) *QuizController {
	return &QuizController{Quizzes: quizzes}
}

// GetLessonQuiz returns the quiz a student sees before answering: questions
// and options only, with correct answers and explanations stripped.
func (qc *QuizController) GetLessonQuiz(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}

	quiz, quizErr := qc.Quizzes.ForLesson(courseID, lessonID)
	if quizErr != nil {
		return utils.RespondError(c, quizErr)
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, fiber.Map{
			"questionId":   q.ID,
			"questionText": q.Text,
			"optionA":      q.OptionA,
			"optionB":      q.OptionB,
			"optionC":      q.OptionC,
			"optionD":      q.OptionD,
		})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"quizId":       quiz.ID,
		"lessonId":     quiz.LessonID,
		"passingScore": quiz.PassingScore,
		"required":     quiz.Required,
		"questions":    questions,
	})
}

func (qc *QuizController) Submit(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}

	type SubmitInput struct {
		Answers []string `json:"answers"`
	}
	var input SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	attempt, submitErr := qc.Quizzes.Submit(middleware.UserID(c), courseID, lessonID, input.Answers)
	if submitErr != nil {
		return utils.RespondError(c, submitErr)
	}
	return utils.Created(c, fiber.Map{
		"attemptId": attempt.ID,
		"score":     attempt.Score,
		"passed":    attempt.Passed,
	})
}

// MyAttempts returns the caller's attempt history for a lesson's quiz along
// with the derived best score and pass state.
func (qc *QuizController) MyAttempts(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}

	quiz, quizErr := qc.Quizzes.ForLesson(courseID, lessonID)
	if quizErr != nil {
		return utils.RespondError(c, quizErr)
	}

	studentID := middleware.UserID(c)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"attempts":  qc.Quizzes.Attempts(studentID, quiz.ID),
		"bestScore": qc.Quizzes.BestScore(studentID, quiz.ID),
		"passed":    qc.Quizzes.HasPassed(studentID, quiz.ID),
	})
}
