// Package storage persists the platform's collections as JSON documents, one
// file per collection. There is no partial-update primitive: every mutation
// loads a whole collection, changes it in memory and rewrites the file, so
// each collection is guarded by its own lock and mutations run through the
// Update* critical sections.
package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"learnhub/backend/errs"
	"learnhub/backend/models"
)

const (
	usersFile        = "users.json"
	coursesFile      = "courses.json"
	quizzesFile      = "quizzes.json"
	certificatesFile = "certificates.json"
)

type usersDoc struct {
	Users []models.User `json:"users"`
}

type coursesDoc struct {
	Courses []models.Course `json:"courses"`
}

// Quizzes and attempts share one file: two top-level arrays, one logical store.
type quizzesDoc struct {
	Quizzes  []models.Quiz        `json:"quizzes"`
	Attempts []models.QuizAttempt `json:"attempts"`
}

type certificatesDoc struct {
	Certificates []models.Certificate `json:"certificates"`
}

// Store owns the data directory. Lock order when an operation spans more than
// one collection: users -> courses -> quizzes -> certificates.
type Store struct {
	dir    string
	logger *log.Logger

	usersMu   sync.RWMutex
	coursesMu sync.RWMutex
	quizzesMu sync.RWMutex
	certsMu   sync.RWMutex
}

func New(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Storage("create data directory", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// readDoc fills out from a collection file. A missing, unreadable or corrupt
// file degrades to the zero document so a first run (or one bad file) never
// takes the whole application down; the condition is logged, not raised.
func (s *Store) readDoc(name string, out any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Printf("storage: read %s: %v (treating as empty)", name, err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Printf("storage: decode %s: %v (treating as empty)", name, err)
	}
}

// writeDoc replaces a collection file. The new content is fully marshalled
// and written to a temporary file first, then renamed over the old one, so a
// failed write leaves the previous contents untouched.
func (s *Store) writeDoc(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.Storage("encode "+name, err)
	}
	tmp := filepath.Join(s.dir, name+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.Storage("write "+name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return errs.Storage("replace "+name, err)
	}
	return nil
}

func (s *Store) loadUsers() []models.User {
	var doc usersDoc
	s.readDoc(usersFile, &doc)
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	return doc.Users
}

func (s *Store) loadCourses() []models.Course {
	var doc coursesDoc
	s.readDoc(coursesFile, &doc)
	if doc.Courses == nil {
		doc.Courses = []models.Course{}
	}
	return doc.Courses
}

func (s *Store) loadQuizzes() quizzesDoc {
	var doc quizzesDoc
	s.readDoc(quizzesFile, &doc)
	if doc.Quizzes == nil {
		doc.Quizzes = []models.Quiz{}
	}
	if doc.Attempts == nil {
		doc.Attempts = []models.QuizAttempt{}
	}
	return doc
}

func (s *Store) loadCertificates() []models.Certificate {
	var doc certificatesDoc
	s.readDoc(certificatesFile, &doc)
	if doc.Certificates == nil {
		doc.Certificates = []models.Certificate{}
	}
	return doc.Certificates
}

// Users returns a snapshot of the users collection.
func (s *Store) Users() []models.User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.loadUsers()
}

func (s *Store) SaveUsers(users []models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.writeDoc(usersFile, usersDoc{Users: users})
}

// UpdateUsers runs fn as the collection's load-mutate-save critical section.
// Returning an error from fn abandons the mutation without touching disk.
func (s *Store) UpdateUsers(fn func([]models.User) ([]models.User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	users, err := fn(s.loadUsers())
	if err != nil {
		return err
	}
	return s.writeDoc(usersFile, usersDoc{Users: users})
}

func (s *Store) Courses() []models.Course {
	s.coursesMu.RLock()
	defer s.coursesMu.RUnlock()
	return s.loadCourses()
}

func (s *Store) SaveCourses(courses []models.Course) error {
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()
	return s.writeDoc(coursesFile, coursesDoc{Courses: courses})
}

func (s *Store) UpdateCourses(fn func([]models.Course) ([]models.Course, error)) error {
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()
	courses, err := fn(s.loadCourses())
	if err != nil {
		return err
	}
	return s.writeDoc(coursesFile, coursesDoc{Courses: courses})
}

func (s *Store) Quizzes() []models.Quiz {
	s.quizzesMu.RLock()
	defer s.quizzesMu.RUnlock()
	return s.loadQuizzes().Quizzes
}

func (s *Store) Attempts() []models.QuizAttempt {
	s.quizzesMu.RLock()
	defer s.quizzesMu.RUnlock()
	return s.loadQuizzes().Attempts
}

// QuizzesAndAttempts returns both arrays of the quizzes file as one
// consistent snapshot.
func (s *Store) QuizzesAndAttempts() ([]models.Quiz, []models.QuizAttempt) {
	s.quizzesMu.RLock()
	defer s.quizzesMu.RUnlock()
	doc := s.loadQuizzes()
	return doc.Quizzes, doc.Attempts
}

// UpdateQuizzes covers both arrays of the quizzes file in one critical
// section; either array may be changed.
func (s *Store) UpdateQuizzes(fn func([]models.Quiz, []models.QuizAttempt) ([]models.Quiz, []models.QuizAttempt, error)) error {
	s.quizzesMu.Lock()
	defer s.quizzesMu.Unlock()
	doc := s.loadQuizzes()
	quizzes, attempts, err := fn(doc.Quizzes, doc.Attempts)
	if err != nil {
		return err
	}
	return s.writeDoc(quizzesFile, quizzesDoc{Quizzes: quizzes, Attempts: attempts})
}

func (s *Store) Certificates() []models.Certificate {
	s.certsMu.RLock()
	defer s.certsMu.RUnlock()
	return s.loadCertificates()
}

func (s *Store) SaveCertificates(certs []models.Certificate) error {
	s.certsMu.Lock()
	defer s.certsMu.Unlock()
	return s.writeDoc(certificatesFile, certificatesDoc{Certificates: certs})
}

// UpdateUsersAndCourses is the critical section for the dual-written
// enrollment relationship. The course file is written first: its EnrollStudent
// side is idempotent, so if the second write fails a retry of the whole
// operation converges instead of deadlocking on "already enrolled".
func (s *Store) UpdateUsersAndCourses(fn func([]models.User, []models.Course) ([]models.User, []models.Course, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()

	users, courses, err := fn(s.loadUsers(), s.loadCourses())
	if err != nil {
		return err
	}
	if err := s.writeDoc(coursesFile, coursesDoc{Courses: courses}); err != nil {
		return err
	}
	return s.writeDoc(usersFile, usersDoc{Users: users})
}

// UpdateCoursesAndQuizzes is the critical section for quiz authoring, which
// mirrors the quiz's required flag onto the owning lesson record. The quiz
// file is written first because the quiz is the authority for requiredness;
// a failed mirror write is repaired by re-running the authoring operation.
func (s *Store) UpdateCoursesAndQuizzes(fn func([]models.Course, []models.Quiz, []models.QuizAttempt) ([]models.Course, []models.Quiz, []models.QuizAttempt, error)) error {
	s.coursesMu.Lock()
	defer s.coursesMu.Unlock()
	s.quizzesMu.Lock()
	defer s.quizzesMu.Unlock()

	doc := s.loadQuizzes()
	courses, quizzes, attempts, err := fn(s.loadCourses(), doc.Quizzes, doc.Attempts)
	if err != nil {
		return err
	}
	if err := s.writeDoc(quizzesFile, quizzesDoc{Quizzes: quizzes, Attempts: attempts}); err != nil {
		return err
	}
	return s.writeDoc(coursesFile, coursesDoc{Courses: courses})
}

// UpdateUsersAndCertificates is the critical section for certificate
// issuance. Certificates are written first because they carry the uniqueness
// invariant; if the student-side link write fails, re-running issuance finds
// the existing certificate and repairs the link.
func (s *Store) UpdateUsersAndCertificates(fn func([]models.User, []models.Certificate) ([]models.User, []models.Certificate, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.certsMu.Lock()
	defer s.certsMu.Unlock()

	users, certs, err := fn(s.loadUsers(), s.loadCertificates())
	if err != nil {
		return err
	}
	if err := s.writeDoc(certificatesFile, certificatesDoc{Certificates: certs}); err != nil {
		return err
	}
	return s.writeDoc(usersFile, usersDoc{Users: users})
}
