package services

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// CertificateService issues certificates. Issuance is the one operation that
// must look atomic across two collections: the certificate document and the
// student's earned-certificate list.
type CertificateService struct {
	store   *storage.Store
	tracker *CompletionTracker
	logger  *log.Logger
}

func NewCertificateService(store *storage.Store, tracker *CompletionTracker, logger *log.Logger) *CertificateService {
	return &CertificateService{store: store, tracker: tracker, logger: logger}
}

func (s *CertificateService) Eligible(studentID, courseID int) (bool, error) {
	return s.tracker.EligibleForCertificate(studentID, courseID)
}

// Issue re-derives eligibility (a caller's earlier check is never trusted),
// then creates at most one certificate per (student, course) pair. Calling it
// again returns the existing certificate unchanged, and re-asserts the link
// on the student record, so a crash between the two writes is healed by a
// retry. Eligibility is derived before the critical section: it is monotonic,
// so it cannot turn false in between.
func (s *CertificateService) Issue(studentID, courseID int) (models.Certificate, error) {
	eligible, err := s.tracker.EligibleForCertificate(studentID, courseID)
	if err != nil {
		return models.Certificate{}, err
	}
	if !eligible {
		return models.Certificate{}, errs.Precondition("student %d is not eligible for a certificate in course %d", studentID, courseID)
	}

	courses := s.store.Courses()
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return models.Certificate{}, errs.NotFound("course %d not found", courseID)
	}
	course := courses[ci]
	finalScore, err := s.tracker.AverageScore(studentID, courseID)
	if err != nil {
		return models.Certificate{}, err
	}

	var issued models.Certificate
	err = s.store.UpdateUsersAndCertificates(func(users []models.User, certs []models.Certificate) ([]models.User, []models.Certificate, error) {
		ui := userIndex(users, studentID)
		if ui < 0 || !users[ui].IsStudent() {
			return nil, nil, errs.NotFound("student %d not found", studentID)
		}

		for _, c := range certs {
			if c.StudentID == studentID && c.CourseID == courseID {
				issued = c
				users[ui].AddCertificate(c.ID)
				return users, certs, nil
			}
		}

		issued = models.Certificate{
			ID:             storage.NextCertificateID(certs),
			StudentID:      studentID,
			CourseID:       courseID,
			StudentName:    users[ui].Username,
			CourseTitle:    course.Title,
			InstructorName: instructorName(users, course.InstructorID),
			FinalScore:     finalScore,
			IssueDate:      models.Now(),
		}
		users[ui].AddCertificate(issued.ID)
		return users, append(certs, issued), nil
	})
	if err != nil {
		return models.Certificate{}, err
	}
	s.logger.Printf("certificate %d issued to student %d for course %d (score %.1f)", issued.ID, studentID, courseID, issued.FinalScore)
	return issued, nil
}

func (s *CertificateService) ForStudent(studentID int) []models.Certificate {
	var out []models.Certificate
	for _, c := range s.store.Certificates() {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out
}

// ForCourse finds the student's certificate for one course, if issued.
func (s *CertificateService) ForCourse(studentID, courseID int) (models.Certificate, error) {
	for _, c := range s.store.Certificates() {
		if c.StudentID == studentID && c.CourseID == courseID {
			return c, nil
		}
	}
	return models.Certificate{}, errs.NotFound("no certificate for student %d in course %d", studentID, courseID)
}

func (s *CertificateService) ByID(certificateID int) (models.Certificate, error) {
	for _, c := range s.store.Certificates() {
		if c.ID == certificateID {
			return c, nil
		}
	}
	return models.Certificate{}, errs.NotFound("certificate %d not found", certificateID)
}

// RenderPDF lays out a printable landscape A4 certificate from the snapshot
// fields; it never reads other collections, so it works even if the student
// or course records have since changed.
func (s *CertificateService) RenderPDF(cert models.Certificate) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetY(40)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(10)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, cert.StudentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, cert.CourseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, fmt.Sprintf("Final score: %.1f%%", cert.FinalScore), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Instructor: "+cert.InstructorName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Issued on "+cert.IssueDate.Format("2 January 2006"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetY(-30)
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate no. %d", cert.ID), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Storage("render certificate pdf", err)
	}
	return buf.Bytes(), nil
}
