package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type InstructorController struct {
	Courses *services.CourseService
	Quizzes *services.QuizService
}

func NewInstructorController(courses *services.CourseService, quizzes *services.QuizService) *InstructorController {
	return &InstructorController{Courses: courses, Quizzes: quizzes}
}

func (ic *InstructorController) CreateCourse(c *fiber.Ctx) error {
	var input services.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	course, err := ic.Courses.Create(middleware.UserID(c), input)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Created(c, course)
}

func (ic *InstructorController) MyCourses(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, ic.Courses.ByInstructor(middleware.UserID(c)))
}

func (ic *InstructorController) EditCourse(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	var input services.CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	course, editErr := ic.Courses.Edit(middleware.UserID(c), courseID, input)
	if editErr != nil {
		return utils.RespondError(c, editErr)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (ic *InstructorController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := ic.Courses.Delete(middleware.UserID(c), courseID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.NoContent(c)
}

func (ic *InstructorController) AddLesson(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	var input services.LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	lesson, addErr := ic.Courses.AddLesson(middleware.UserID(c), courseID, input)
	if addErr != nil {
		return utils.RespondError(c, addErr)
	}
	return utils.Created(c, lesson)
}

func (ic *InstructorController) EditLesson(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}
	var input services.LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ic.Courses.EditLesson(middleware.UserID(c), courseID, lessonID, input); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"updated": true})
}

func (ic *InstructorController) DeleteLesson(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}
	if err := ic.Courses.DeleteLesson(middleware.UserID(c), courseID, lessonID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.NoContent(c)
}

// SetQuiz creates or replaces the quiz attached to a lesson.
func (ic *InstructorController) SetQuiz(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}
	var input services.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	quiz, setErr := ic.Quizzes.SetLessonQuiz(middleware.UserID(c), courseID, lessonID, input)
	if setErr != nil {
		return utils.RespondError(c, setErr)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (ic *InstructorController) DeleteQuiz(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}
	if err := ic.Quizzes.DeleteLessonQuiz(middleware.UserID(c), courseID, lessonID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.NoContent(c)
}
