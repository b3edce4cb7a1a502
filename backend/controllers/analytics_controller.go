package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Courses   *services.CourseService
	Users     *services.UserService
}

func NewAnalyticsController(analytics *services.AnalyticsService, courses *services.CourseService, users *services.UserService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Courses: courses, Users: users}
}

// ownCourse verifies the caller may see a course's analytics: its instructor
// or an admin.
func (ac *AnalyticsController) ownCourse(c *fiber.Ctx, courseID int) error {
	course, err := ac.Courses.ByID(courseID)
	if err != nil {
		return utils.RespondError(c, err)
	}

	callerID := middleware.UserID(c)
	if course.InstructorID == callerID {
		return nil
	}
	caller, err := ac.Users.FindByID(callerID)
	if err == nil && caller.IsAdmin() {
		return nil
	}
	return utils.Forbidden(c, "You don't have permission to view this analytics")
}

func (ac *AnalyticsController) CourseStatistics(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := ac.ownCourse(c, courseID); err != nil {
		return err
	}

	stats, statsErr := ac.Analytics.CourseStatistics(courseID)
	if statsErr != nil {
		return utils.RespondError(c, statsErr)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

func (ac *AnalyticsController) StudentPerformances(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := ac.ownCourse(c, courseID); err != nil {
		return err
	}

	perfs, perfErr := ac.Analytics.StudentPerformances(courseID)
	if perfErr != nil {
		return utils.RespondError(c, perfErr)
	}

	result := make([]fiber.Map, 0, len(perfs))
	for i := range perfs {
		p := &perfs[i]
		result = append(result, fiber.Map{
			"studentId":            p.StudentID,
			"studentName":          p.StudentName,
			"studentEmail":         p.StudentEmail,
			"lessonsCompleted":     p.LessonsCompleted,
			"totalLessons":         p.TotalLessons,
			"completionPercentage": p.CompletionPercentage,
			"averageQuizScore":     p.AverageQuizScore,
			"quizzesTaken":         p.QuizzesTaken,
			"quizzesPassed":        p.QuizzesPassed,
			"status":               p.Status(),
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (ac *AnalyticsController) CompletionBreakdown(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	if err := ac.ownCourse(c, courseID); err != nil {
		return err
	}

	breakdown, bdErr := ac.Analytics.CompletionBreakdown(courseID)
	if bdErr != nil {
		return utils.RespondError(c, bdErr)
	}
	return utils.Success(c, fiber.StatusOK, breakdown)
}
