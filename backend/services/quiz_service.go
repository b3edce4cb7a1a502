package services

import (
	"log"
	"slices"
	"time"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

// QuizService owns quiz authoring and the append-only attempts log.
type QuizService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewQuizService(store *storage.Store, logger *log.Logger) *QuizService {
	return &QuizService{store: store, logger: logger}
}

type QuestionInput struct {
	Text          string  `json:"questionText" validate:"required"`
	OptionA       string  `json:"optionA" validate:"required"`
	OptionB       string  `json:"optionB" validate:"required"`
	OptionC       string  `json:"optionC" validate:"required"`
	OptionD       string  `json:"optionD" validate:"required"`
	CorrectAnswer string  `json:"correctAnswer" validate:"required"`
	Explanation   *string `json:"explanation"`
}

type QuizInput struct {
	PassingScore int             `json:"passingScore" validate:"min=0,max=100"`
	Required     bool            `json:"required"`
	Questions    []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

// SetLessonQuiz creates or replaces the quiz bound to a lesson; a lesson has
// at most one. Replacement keeps the existing quiz ID so prior attempts
// remain attached. The lesson record's quizRequired mirror is updated in the
// same critical section.
func (s *QuizService) SetLessonQuiz(instructorID, courseID, lessonID int, input QuizInput) (models.Quiz, error) {
	if err := validate.Struct(input); err != nil {
		return models.Quiz{}, errs.Validation("invalid quiz: %v", err)
	}

	questions := make([]models.Question, len(input.Questions))
	for i, q := range input.Questions {
		questions[i] = models.Question{
			ID:            i + 1,
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}

	var saved models.Quiz
	err := s.store.UpdateCoursesAndQuizzes(func(courses []models.Course, quizzes []models.Quiz, attempts []models.QuizAttempt) ([]models.Course, []models.Quiz, []models.QuizAttempt, error) {
		ci, li, err := ownedLesson(courses, instructorID, courseID, lessonID)
		if err != nil {
			return nil, nil, nil, err
		}
		courses[ci].Lessons[li].QuizRequired = input.Required

		saved = models.Quiz{
			CourseID:     courseID,
			LessonID:     lessonID,
			PassingScore: input.PassingScore,
			Required:     input.Required,
			Questions:    questions,
		}
		for i, q := range quizzes {
			if q.CourseID == courseID && q.LessonID == lessonID {
				saved.ID = q.ID
				quizzes[i] = saved
				return courses, quizzes, attempts, nil
			}
		}
		saved.ID = storage.NextQuizID(quizzes)
		return courses, append(quizzes, saved), attempts, nil
	})
	return saved, err
}

// DeleteLessonQuiz removes the lesson's quiz and clears the quizRequired
// mirror on the lesson record.
func (s *QuizService) DeleteLessonQuiz(instructorID, courseID, lessonID int) error {
	return s.store.UpdateCoursesAndQuizzes(func(courses []models.Course, quizzes []models.Quiz, attempts []models.QuizAttempt) ([]models.Course, []models.Quiz, []models.QuizAttempt, error) {
		ci, li, err := ownedLesson(courses, instructorID, courseID, lessonID)
		if err != nil {
			return nil, nil, nil, err
		}
		before := len(quizzes)
		quizzes = slices.DeleteFunc(quizzes, func(q models.Quiz) bool {
			return q.CourseID == courseID && q.LessonID == lessonID
		})
		if len(quizzes) == before {
			return nil, nil, nil, errs.NotFound("lesson %d in course %d has no quiz", lessonID, courseID)
		}
		courses[ci].Lessons[li].QuizRequired = false
		return courses, quizzes, attempts, nil
	})
}

// ForLesson resolves the lesson's quiz binding, or NotFound when the lesson
// has none.
func (s *QuizService) ForLesson(courseID, lessonID int) (models.Quiz, error) {
	if quiz, ok := QuizForLesson(s.store.Quizzes(), courseID, lessonID); ok {
		return quiz, nil
	}
	return models.Quiz{}, errs.NotFound("lesson %d in course %d has no quiz", lessonID, courseID)
}

// Submit grades an answer sheet and appends the attempt to the log. Attempts
// are unlimited; the record is immutable once written. The legacy per-lesson
// quizScores map on the student record is refreshed afterwards for older
// readers, but the attempt log alone is authoritative.
func (s *QuizService) Submit(studentID, courseID, lessonID int, answers []string) (models.QuizAttempt, error) {
	users := s.store.Users()
	ui := userIndex(users, studentID)
	if ui < 0 || !users[ui].IsStudent() {
		return models.QuizAttempt{}, errs.NotFound("student %d not found", studentID)
	}
	if !users[ui].IsEnrolledIn(courseID) {
		return models.QuizAttempt{}, errs.Precondition("student %d is not enrolled in course %d", studentID, courseID)
	}

	var attempt models.QuizAttempt
	err := s.store.UpdateQuizzes(func(quizzes []models.Quiz, attempts []models.QuizAttempt) ([]models.Quiz, []models.QuizAttempt, error) {
		quiz, ok := QuizForLesson(quizzes, courseID, lessonID)
		if !ok {
			return nil, nil, errs.NotFound("lesson %d in course %d has no quiz", lessonID, courseID)
		}
		score := quiz.Evaluate(answers)
		attempt = models.QuizAttempt{
			ID:        storage.NextAttemptID(attempts),
			StudentID: studentID,
			QuizID:    quiz.ID,
			LessonID:  lessonID,
			CourseID:  courseID,
			Answers:   answers,
			Score:     score,
			Passed:    score >= float64(quiz.PassingScore),
			Timestamp: time.Now().UTC(),
		}
		return quizzes, append(attempts, attempt), nil
	})
	if err != nil {
		return models.QuizAttempt{}, err
	}

	if err := s.refreshLegacyScore(studentID, lessonID, attempt.Score); err != nil {
		s.logger.Printf("attempt %d recorded but legacy score refresh failed: %v", attempt.ID, err)
	}
	return attempt, nil
}

func (s *QuizService) refreshLegacyScore(studentID, lessonID int, score float64) error {
	return s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		ui := userIndex(users, studentID)
		if ui < 0 {
			return nil, errs.NotFound("student %d not found", studentID)
		}
		if score <= users[ui].QuizScores[lessonID] {
			return users, nil
		}
		if users[ui].QuizScores == nil {
			users[ui].QuizScores = make(map[int]float64)
		}
		users[ui].QuizScores[lessonID] = score
		return users, nil
	})
}

func (s *QuizService) Attempts(studentID, quizID int) []models.QuizAttempt {
	return AttemptsFor(s.store.Attempts(), studentID, quizID)
}

func (s *QuizService) AttemptCount(studentID, quizID int) int {
	return len(s.Attempts(studentID, quizID))
}

func (s *QuizService) BestScore(studentID, quizID int) float64 {
	return BestScore(s.store.Attempts(), studentID, quizID)
}

func (s *QuizService) HasPassed(studentID, quizID int) bool {
	return HasPassed(s.store.Attempts(), studentID, quizID)
}

// ownedLesson verifies the instructor owns the course and the lesson exists,
// returning both indexes into the loaded slice.
func ownedLesson(courses []models.Course, instructorID, courseID, lessonID int) (int, int, error) {
	ci := courseIndex(courses, courseID)
	if ci < 0 {
		return 0, 0, errs.NotFound("course %d not found", courseID)
	}
	if courses[ci].InstructorID != instructorID {
		return 0, 0, errs.Precondition("course %d is not owned by instructor %d", courseID, instructorID)
	}
	li := courses[ci].LessonIndex(lessonID)
	if li < 0 {
		return 0, 0, errs.NotFound("lesson %d not found in course %d", lessonID, courseID)
	}
	return ci, li, nil
}
