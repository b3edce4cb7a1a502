package services

import (
	"log"
	"slices"
	"strings"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// CourseService covers the instructor's course/lesson CRUD and the admin
// review workflow that drives the PENDING/APPROVED/REJECTED state machine.
type CourseService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewCourseService(store *storage.Store, logger *log.Logger) *CourseService {
	return &CourseService{store: store, logger: logger}
}

type CourseInput struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
}

type LessonInput struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required"`
}

// Create registers a new PENDING course and records it on the instructor's
// created list; both records are written in one critical section.
func (s *CourseService) Create(instructorID int, input CourseInput) (models.Course, error) {
	if err := validate.Struct(input); err != nil {
		return models.Course{}, errs.Validation("invalid course: %v", err)
	}

	var created models.Course
	err := s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ui := userIndex(users, instructorID)
		if ui < 0 {
			return nil, nil, errs.NotFound("instructor %d not found", instructorID)
		}
		if !users[ui].IsInstructor() {
			return nil, nil, errs.Precondition("user %d is not an instructor", instructorID)
		}
		created = models.NewCourse(storage.NextCourseID(courses), input.Title, input.Description, instructorID)
		users[ui].CreatedCourses = append(users[ui].CreatedCourses, created.ID)
		return users, append(courses, created), nil
	})
	if err != nil {
		return models.Course{}, err
	}
	s.logger.Printf("course %d %q submitted for review by instructor %d", created.ID, created.Title, instructorID)
	return created, nil
}

// Edit updates title and description. Editing a rejected course resubmits it
// for review; editing an approved course leaves it approved.
func (s *CourseService) Edit(instructorID, courseID int, input CourseInput) (models.Course, error) {
	if err := validate.Struct(input); err != nil {
		return models.Course{}, errs.Validation("invalid course: %v", err)
	}

	var edited models.Course
	err := s.store.UpdateCourses(func(courses []models.Course) ([]models.Course, error) {
		ci, err := s.ownedCourse(courses, instructorID, courseID)
		if err != nil {
			return nil, err
		}
		courses[ci].Title = input.Title
		courses[ci].Description = input.Description
		courses[ci].Resubmit()
		edited = courses[ci]
		return courses, nil
	})
	return edited, err
}

// Delete removes a course and its entry on the owning instructor's record.
// Quizzes bound to its lessons stay in the quiz collection; the bindings are
// weak and a dangling one is never followed.
func (s *CourseService) Delete(instructorID, courseID int) error {
	return s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ci, err := s.ownedCourse(courses, instructorID, courseID)
		if err != nil {
			return nil, nil, err
		}
		if ui := userIndex(users, instructorID); ui >= 0 {
			users[ui].CreatedCourses = slices.DeleteFunc(users[ui].CreatedCourses, func(id int) bool {
				return id == courseID
			})
		}
		return users, slices.Delete(courses, ci, ci+1), nil
	})
}

// AddLesson appends a lesson with the next per-course lesson ID.
func (s *CourseService) AddLesson(instructorID, courseID int, input LessonInput) (models.Lesson, error) {
	if err := validate.Struct(input); err != nil {
		return models.Lesson{}, errs.Validation("invalid lesson: %v", err)
	}

	var added models.Lesson
	err := s.store.UpdateCourses(func(courses []models.Course) ([]models.Course, error) {
		ci, err := s.ownedCourse(courses, instructorID, courseID)
		if err != nil {
			return nil, err
		}
		added = models.Lesson{
			ID:      storage.NextLessonID(courses[ci]),
			Title:   input.Title,
			Content: input.Content,
		}
		courses[ci].Lessons = append(courses[ci].Lessons, added)
		courses[ci].Resubmit()
		return courses, nil
	})
	return added, err
}

func (s *CourseService) EditLesson(instructorID, courseID, lessonID int, input LessonInput) error {
	if err := validate.Struct(input); err != nil {
		return errs.Validation("invalid lesson: %v", err)
	}

	return s.store.UpdateCourses(func(courses []models.Course) ([]models.Course, error) {
		ci, err := s.ownedCourse(courses, instructorID, courseID)
		if err != nil {
			return nil, err
		}
		li := courses[ci].LessonIndex(lessonID)
		if li < 0 {
			return nil, errs.NotFound("lesson %d not found in course %d", lessonID, courseID)
		}
		courses[ci].Lessons[li].Title = input.Title
		courses[ci].Lessons[li].Content = input.Content
		courses[ci].Resubmit()
		return courses, nil
	})
}

// DeleteLesson removes the lesson and, afterwards, any quiz bound to it.
// The quiz cleanup runs as its own critical section; if it fails the binding
// is merely dangling, which readers already tolerate.
func (s *CourseService) DeleteLesson(instructorID, courseID, lessonID int) error {
	err := s.store.UpdateCourses(func(courses []models.Course) ([]models.Course, error) {
		ci, err := s.ownedCourse(courses, instructorID, courseID)
		if err != nil {
			return nil, err
		}
		li := courses[ci].LessonIndex(lessonID)
		if li < 0 {
			return nil, errs.NotFound("lesson %d not found in course %d", lessonID, courseID)
		}
		courses[ci].Lessons = slices.Delete(courses[ci].Lessons, li, li+1)
		courses[ci].Resubmit()
		return courses, nil
	})
	if err != nil {
		return err
	}

	err = s.store.UpdateQuizzes(func(quizzes []models.Quiz, attempts []models.QuizAttempt) ([]models.Quiz, []models.QuizAttempt, error) {
		quizzes = slices.DeleteFunc(quizzes, func(q models.Quiz) bool {
			return q.CourseID == courseID && q.LessonID == lessonID
		})
		return quizzes, attempts, nil
	})
	if err != nil {
		s.logger.Printf("course %d: quiz cleanup for deleted lesson %d failed: %v", courseID, lessonID, err)
	}
	return nil
}

func (s *CourseService) ByID(courseID int) (models.Course, error) {
	courses := s.store.Courses()
	if ci := courseIndex(courses, courseID); ci >= 0 {
		return courses[ci], nil
	}
	return models.Course{}, errs.NotFound("course %d not found", courseID)
}

func (s *CourseService) All() []models.Course {
	return s.store.Courses()
}

func (s *CourseService) ByStatus(status models.ApprovalStatus) []models.Course {
	var out []models.Course
	for _, c := range s.store.Courses() {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

func (s *CourseService) ByInstructor(instructorID int) []models.Course {
	var out []models.Course
	for _, c := range s.store.Courses() {
		if c.InstructorID == instructorID {
			out = append(out, c)
		}
	}
	return out
}

// Approve moves a pending course to APPROVED and records the review on the
// admin's record. There is no transition from APPROVED or REJECTED here;
// rejected courses come back through the queue via instructor resubmission.
func (s *CourseService) Approve(adminID, courseID int) error {
	return s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ui, ci, err := s.reviewable(users, courses, adminID, courseID)
		if err != nil {
			return nil, nil, err
		}
		courses[ci].Approve(users[ui].Username)
		if !slices.Contains(users[ui].ReviewedCourses, courseID) {
			users[ui].ReviewedCourses = append(users[ui].ReviewedCourses, courseID)
		}
		s.logger.Printf("course %d approved by %s", courseID, users[ui].Username)
		return users, courses, nil
	})
}

// Reject requires a non-empty reason.
func (s *CourseService) Reject(adminID, courseID int, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.Validation("rejection reason cannot be empty")
	}
	return s.store.UpdateUsersAndCourses(func(users []models.User, courses []models.Course) ([]models.User, []models.Course, error) {
		ui, ci, err := s.reviewable(users, courses, adminID, courseID)
		if err != nil {
			return nil, nil, err
		}
		courses[ci].Reject(users[ui].Username, reason)
		if !slices.Contains(users[ui].ReviewedCourses, courseID) {
			users[ui].ReviewedCourses = append(users[ui].ReviewedCourses, courseID)
		}
		s.logger.Printf("course %d rejected by %s: %s", courseID, users[ui].Username, reason)
		return users, courses, nil
	})
}

// Statistics is the admin dashboard rollup of course counts by status.
func (s *CourseService) Statistics() models.PlatformStatistics {
	var stats models.PlatformStatistics
	for _, c := range s.store.Courses() {
		stats.TotalCourses++
		switch c.Status {
		case models.StatusPending:
			stats.PendingCourses++
		case models.StatusApproved:
			stats.ApprovedCourses++
		case models.StatusRejected:
			stats.RejectedCourses++
		}
	}
	return stats
}

func (s *CourseService) ownedCourse(courses []models.Course, instructorID, courseID int) (int, error) {
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return -1, errs.NotFound("course %d not found", courseID)
	}
	if courses[ci].InstructorID != instructorID {
		return -1, errs.Precondition("course %d is not owned by instructor %d", courseID, instructorID)
	}
	return ci, nil
}

func (s *CourseService) reviewable(users []models.User, courses []models.Course, adminID, courseID int) (int, int, error) {
	ui := userIndex(users, adminID)
	if ui < 0 {
		return -1, -1, errs.NotFound("admin %d not found", adminID)
	}
	if !users[ui].IsAdmin() {
		return -1, -1, errs.Precondition("user %d is not an admin", adminID)
	}
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return -1, -1, errs.NotFound("course %d not found", courseID)
	}
	if !courses[ci].IsPending() {
		return -1, -1, errs.Precondition("course %d is not pending review (status %s)", courseID, courses[ci].Status)
	}
	return ui, ci, nil
}
