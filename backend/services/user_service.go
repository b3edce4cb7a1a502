package services

import (
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"learnhub/backend/errs"
	"learnhub/backend/models"
	"learnhub/backend/storage"
)

type UserService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewUserService(store *storage.Store, logger *log.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=Student Instructor"`
}

// Signup registers a new account. Admins are provisioned out of band, not via
// signup. Email uniqueness is checked inside the users critical section so
// two concurrent signups cannot both claim the same address.
func (s *UserService) Signup(input SignupInput) (models.User, error) {
	if err := validate.Struct(input); err != nil {
		return models.User{}, errs.Validation("invalid signup: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, errs.Validation("unusable password: %v", err)
	}

	var created models.User
	err = s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, input.Email) {
				return nil, errs.Validation("email already registered: %s", input.Email)
			}
		}
		created = models.NewUser(storage.NextUserID(users), input.Username, input.Email, string(hash), input.Role)
		return append(users, created), nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.logger.Printf("registered %s %q (id=%d)", created.Role, created.Username, created.ID)
	return created, nil
}

// Login verifies credentials and returns the matching account. The same
// failure is reported for an unknown email and a wrong password.
func (s *UserService) Login(email, password string) (models.User, error) {
	for _, u := range s.store.Users() {
		if strings.EqualFold(u.Email, email) {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
				return u, nil
			}
			break
		}
	}
	return models.User{}, errs.NotFound("invalid email or password")
}

func (s *UserService) FindByID(id int) (models.User, error) {
	users := s.store.Users()
	if i := userIndex(users, id); i >= 0 {
		return users[i], nil
	}
	return models.User{}, errs.NotFound("user %d not found", id)
}
