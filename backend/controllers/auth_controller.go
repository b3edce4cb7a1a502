package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type AuthController struct {
	Users *services.UserService
	Cfg   *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{Users: users, Cfg: cfg}
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a new account with the Student or Instructor role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.SignupInput true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Users.Signup(input)
	if err != nil {
		return utils.RespondError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate by email and password, returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Users.Login(input.Email, input.Password)
	if err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

func (ac *AuthController) Profile(c *fiber.Ctx) error {
	user, err := ac.Users.FindByID(middleware.UserID(c))
	if err != nil {
		return utils.RespondError(c, err)
	}
	// The stored record carries the password hash; never echo it back.
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":                 user.ID,
		"username":           user.Username,
		"email":              user.Email,
		"role":               user.Role,
		"enrolledCourses":    user.EnrolledCourses,
		"createdCourses":     user.CreatedCourses,
		"earnedCertificates": user.EarnedCertificates,
	})
}
