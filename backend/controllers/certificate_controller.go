package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type CertificateController struct {
	Certificates *services.CertificateService
	Tracker      *services.CompletionTracker
}

func NewCertificateController(certificates *services.CertificateService, tracker *services.CompletionTracker) *CertificateController {
	return &CertificateController{Certificates: certificates, Tracker: tracker}
}

// Eligibility reports the full derivation a student sees on the course page:
// progress, quiz state, average score and the final eligible flag.
func (cc *CertificateController) Eligibility(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	studentID := middleware.UserID(c)

	progress, derr := cc.Tracker.CompletionPercentage(studentID, courseID)
	if derr != nil {
		return utils.RespondError(c, derr)
	}
	lessonsDone, derr := cc.Tracker.AllLessonsCompleted(studentID, courseID)
	if derr != nil {
		return utils.RespondError(c, derr)
	}
	quizzesPassed, derr := cc.Tracker.AllRequiredQuizzesPassed(studentID, courseID)
	if derr != nil {
		return utils.RespondError(c, derr)
	}
	average, derr := cc.Tracker.AverageScore(studentID, courseID)
	if derr != nil {
		return utils.RespondError(c, derr)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"courseId":                 courseID,
		"completionPercentage":     progress,
		"allLessonsCompleted":      lessonsDone,
		"allRequiredQuizzesPassed": quizzesPassed,
		"averageScore":             average,
		"eligible":                 lessonsDone && quizzesPassed,
	})
}

func (cc *CertificateController) Issue(c *fiber.Ctx) error {
	courseID, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	cert, issueErr := cc.Certificates.Issue(middleware.UserID(c), courseID)
	if issueErr != nil {
		return utils.RespondError(c, issueErr)
	}
	return utils.Created(c, cert)
}

func (cc *CertificateController) MyCertificates(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, cc.Certificates.ForStudent(middleware.UserID(c)))
}

// Download renders the certificate as a PDF. Only the certificate's owner may
// fetch it.
func (cc *CertificateController) Download(c *fiber.Ctx) error {
	certID, err := paramInt(c, "id")
	if err != nil {
		return err
	}

	cert, lookupErr := cc.Certificates.ByID(certID)
	if lookupErr != nil {
		return utils.RespondError(c, lookupErr)
	}
	if cert.StudentID != middleware.UserID(c) {
		return utils.Forbidden(c, "Not your certificate")
	}

	pdf, renderErr := cc.Certificates.RenderPDF(cert)
	if renderErr != nil {
		return utils.RespondError(c, renderErr)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=certificate-%d.pdf", cert.ID))
	return c.Send(pdf)
}
