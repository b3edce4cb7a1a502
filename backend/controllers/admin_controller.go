package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type AdminController struct {
	Courses *services.CourseService
}

func NewAdminController(courses *services.CourseService) *AdminController {
	return &AdminController{Courses: courses}
}

func (ac *AdminController) AllCourses(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		return utils.Success(c, fiber.StatusOK, ac.Courses.ByStatus(models.ApprovalStatus(status)))
	}
	return utils.Success(c, fiber.StatusOK, ac.Courses.All())
}

func (ac *AdminController) PendingCourses(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, ac.Courses.ByStatus(models.StatusPending))
}

func (ac *AdminController) Approve(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := ac.Courses.Approve(middleware.UserID(c), courseID); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"approved": true})
}

func (ac *AdminController) Reject(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}

	type RejectInput struct {
		Reason string `json:"reason"`
	}
	var input RejectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := ac.Courses.Reject(middleware.UserID(c), courseID, input.Reason); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"rejected": true})
}

func (ac *AdminController) PlatformStatistics(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, ac.Courses.Statistics())
}
