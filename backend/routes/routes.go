package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/storage"
)

func SetupRoutes(app *fiber.App, store *storage.Store, cfg *config.Config, logger *log.Logger) {
	tracker := services.NewCompletionTracker(store)
	userService := services.NewUserService(store, logger)
	courseService := services.NewCourseService(store, logger)
	quizService := services.NewQuizService(store, logger)
	studentService := services.NewStudentService(store, tracker, logger)
	certificateService := services.NewCertificateService(store, tracker, logger)
	analyticsService := services.NewAnalyticsService(store, logger)

	// Auth routes
	authController := controllers.NewAuthController(userService, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	studentOnly := middleware.RequireRole(userService, models.RoleStudent)
	instructorOnly := middleware.RequireRole(userService, models.RoleInstructor)
	adminOnly := middleware.RequireRole(userService, models.RoleAdmin)

	app.Get("/api/user/profile", authMiddleware, authController.Profile)

	// Student-facing catalog and progress routes
	studentController := controllers.NewStudentController(studentService, courseService)
	quizController := controllers.NewQuizController(quizService)
	certificateController := controllers.NewCertificateController(certificateService, tracker)

	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", studentController.BrowseCourses)
	courses.Get("/:id", studentController.GetCourse)
	courses.Post("/:id/enroll", studentOnly, studentController.Enroll)
	courses.Delete("/:id/enroll", studentOnly, studentController.Unenroll)
	courses.Get("/:id/lessons", studentOnly, studentController.Lessons)
	courses.Post("/:id/lessons/:lessonId/complete", studentOnly, studentController.CompleteLesson)
	courses.Get("/:id/progress", studentOnly, studentController.Progress)
	courses.Get("/:id/lessons/:lessonId/quiz", studentOnly, quizController.GetLessonQuiz)
	courses.Post("/:id/lessons/:lessonId/quiz/attempts", studentOnly, quizController.Submit)
	courses.Get("/:id/lessons/:lessonId/quiz/attempts", studentOnly, quizController.MyAttempts)
	courses.Get("/:id/certificate/eligibility", studentOnly, certificateController.Eligibility)
	courses.Post("/:id/certificate", studentOnly, certificateController.Issue)

	student := app.Group("/api/student", authMiddleware, studentOnly)
	student.Get("/courses", studentController.MyCourses)
	student.Get("/certificates", certificateController.MyCertificates)

	app.Get("/api/certificates/:id/pdf", authMiddleware, certificateController.Download)

	// Instructor routes
	instructorController := controllers.NewInstructorController(courseService, quizService)
	analyticsController := controllers.NewAnalyticsController(analyticsService, courseService, userService)

	instructor := app.Group("/api/instructor/courses", authMiddleware, instructorOnly)
	instructor.Get("/", instructorController.MyCourses)
	instructor.Post("/", instructorController.CreateCourse)
	instructor.Put("/:id", instructorController.EditCourse)
	instructor.Delete("/:id", instructorController.DeleteCourse)
	instructor.Post("/:id/lessons", instructorController.AddLesson)
	instructor.Put("/:id/lessons/:lessonId", instructorController.EditLesson)
	instructor.Delete("/:id/lessons/:lessonId", instructorController.DeleteLesson)
	instructor.Put("/:id/lessons/:lessonId/quiz", instructorController.SetQuiz)
	instructor.Delete("/:id/lessons/:lessonId/quiz", instructorController.DeleteQuiz)
	instructor.Get("/:id/statistics", analyticsController.CourseStatistics)
	instructor.Get("/:id/students", analyticsController.StudentPerformances)
	instructor.Get("/:id/breakdown", analyticsController.CompletionBreakdown)

	// Admin routes
	adminController := controllers.NewAdminController(courseService)

	admin := app.Group("/api/admin", authMiddleware, adminOnly)
	admin.Get("/courses", adminController.AllCourses)
	admin.Get("/courses/pending", adminController.PendingCourses)
	admin.Post("/courses/:id/approve", adminController.Approve)
	admin.Post("/courses/:id/reject", adminController.Reject)
	admin.Get("/statistics", adminController.PlatformStatistics)
}
