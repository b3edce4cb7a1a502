package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type StudentController struct {
	Students *services.StudentService
	Courses  *services.CourseService
}

func NewStudentController(students *services.StudentService, courses *services.CourseService) *StudentController {
	return &StudentController{Students: students, Courses: courses}
}

func paramInt(c *fiber.Ctx, name string) (int, error) {
	v, err := strconv.Atoi(c.Params(name))
	if err != nil {
		return 0, utils.BadRequest(c, "Invalid "+name)
	}
	return v, nil
}

func (sc *StudentController) BrowseCourses(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, sc.Students.BrowseCourses())
}

func (sc *StudentController) GetCourse(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}

	course, lookupErr := sc.Courses.ByID(courseID)
	if lookupErr != nil {
		return utils.RespondError(c, lookupErr)
	}
	// Students only see the approved catalog.
	if course.Status != models.StatusApproved {
		return utils.NotFound(c, "Course not found")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (sc *StudentController) Enroll(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Students.Enroll(middleware.UserID(c), courseID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"enrolled": true})
}

func (sc *StudentController) Unenroll(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := sc.Students.Unenroll(middleware.UserID(c), courseID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.NoContent(c)
}

func (sc *StudentController) MyCourses(c *fiber.Ctx) error {
	courses, err := sc.Students.EnrolledCourses(middleware.UserID(c))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// Lessons lists the course's lessons together with the caller's per-lesson
// state: completed or not, and whether sequential access allows opening it.
func (sc *StudentController) Lessons(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	studentID := middleware.UserID(c)

	lessons, lessonsErr := sc.Students.Lessons(courseID)
	if lessonsErr != nil {
		return utils.RespondError(c, lessonsErr)
	}

	result := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		accessible, accErr := sc.Students.IsLessonAccessible(studentID, courseID, lesson.ID)
		if accErr != nil {
			return utils.RespondError(c, accErr)
		}
		result = append(result, fiber.Map{
			"lessonId":     lesson.ID,
			"title":        lesson.Title,
			"content":      lesson.Content,
			"quizRequired": lesson.QuizRequired,
			"accessible":   accessible,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (sc *StudentController) CompleteLesson(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	lessonID, err := paramInt(c, "lessonId")
	if err != nil {
		return err
	}
	if err := sc.Students.MarkLessonComplete(middleware.UserID(c), courseID, lessonID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"completed": true})
}

func (sc *StudentController) Progress(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	progress, progErr := sc.Students.Progress(middleware.UserID(c), courseID)
	if progErr != nil {
		return utils.RespondError(c, progErr)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId":             courseID,
		"completionPercentage": progress,
	})
}
