package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/routes"
	"learnhub/backend/storage"
	"learnhub/backend/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *storage.Store, *config.Config) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	store, err := storage.New(t.TempDir(), logger)
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "test-secret", ServerPort: "0"}
	app := fiber.New()
	app.Use(middleware.LoggingMiddleware(logger))
	routes.SetupRoutes(app, store, cfg, logger)
	return app, store, cfg
}

func itoa(v int) string { return strconv.Itoa(v) }

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func register(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@learnhub.test",
		"password": "hunter22",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestRegisterLoginProfile(t *testing.T) {
	app, _, _ := newTestApp(t)
	register(t, app, "ada", models.RoleStudent)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@learnhub.test",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	decode(t, resp, &login)
	assert.Equal(t, "ada", login.User.Username)
	assert.Equal(t, models.RoleStudent, login.User.Role)

	resp = doJSON(t, app, http.MethodGet, "/api/user/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Data map[string]any `json:"data"`
	}
	decode(t, resp, &profile)
	assert.Equal(t, "ada", profile.Data["username"])
	// The password hash must never appear in a response.
	assert.NotContains(t, profile.Data, "passwordHash")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)
	register(t, app, "ada", models.RoleStudent)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@learnhub.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRoutesRequireAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRoleEnforcement(t *testing.T) {
	app, _, _ := newTestApp(t)
	studentToken := register(t, app, "ada", models.RoleStudent)

	// A student cannot reach instructor or admin surfaces.
	resp := doJSON(t, app, http.MethodPost, "/api/instructor/courses", studentToken, fiber.Map{
		"title":       "Go Concurrency",
		"description": "Goroutines, channels and the memory model.",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/admin/courses", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// Full happy path over HTTP: instructor authors a course, admin approves it,
// student enrolls, passes the quiz, completes the lessons and downloads a
// certificate PDF.
func TestCourseLifecycleOverHTTP(t *testing.T) {
	app, store, cfg := newTestApp(t)
	instructorToken := register(t, app, "ivan", models.RoleInstructor)
	studentToken := register(t, app, "ada", models.RoleStudent)

	// Admins are provisioned out of band, so the token is minted directly.
	var adminID int
	require.NoError(t, store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		adminID = storage.NextUserID(users)
		return append(users, models.User{ID: adminID, Username: "root", Email: "root@learnhub.test", Role: models.RoleAdmin}), nil
	}))
	adminToken, err := utils.GenerateJWTToken(adminID, models.RoleAdmin, cfg)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/instructor/courses", instructorToken, fiber.Map{
		"title":       "Distributed Systems",
		"description": "Consensus, replication and failure models.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.Course `json:"data"`
	}
	decode(t, resp, &created)
	courseID := created.Data.ID

	coursePath := "/api/instructor/courses/" + itoa(courseID)
	for _, lesson := range []fiber.Map{
		{"title": "Clocks", "content": "Lamport clocks."},
		{"title": "Consensus", "content": "Raft."},
	} {
		resp = doJSON(t, app, http.MethodPost, coursePath+"/lessons", instructorToken, lesson)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodPut, coursePath+"/lessons/1/quiz", instructorToken, fiber.Map{
		"passingScore": 60,
		"required":     true,
		"questions": []fiber.Map{
			{"questionText": "Happened-before is", "optionA": "total", "optionB": "partial", "optionC": "empty", "optionD": "cyclic", "correctAnswer": "B"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Not yet approved, so the student catalog is empty and enrollment fails.
	resp = doJSON(t, app, http.MethodPost, "/api/courses/"+itoa(courseID)+"/enroll", studentToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/admin/courses/"+itoa(courseID)+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/courses/"+itoa(courseID)+"/enroll", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The served quiz hides the answer key.
	resp = doJSON(t, app, http.MethodGet, "/api/courses/"+itoa(courseID)+"/lessons/1/quiz", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quizBody struct {
		Data struct {
			Questions []map[string]any `json:"questions"`
		} `json:"data"`
	}
	decode(t, resp, &quizBody)
	require.Len(t, quizBody.Data.Questions, 1)
	assert.NotContains(t, quizBody.Data.Questions[0], "correctAnswer")

	resp = doJSON(t, app, http.MethodPost, "/api/courses/"+itoa(courseID)+"/lessons/1/quiz/attempts", studentToken, fiber.Map{
		"answers": []string{"B"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var attempt struct {
		Data struct {
			Score  float64 `json:"score"`
			Passed bool    `json:"passed"`
		} `json:"data"`
	}
	decode(t, resp, &attempt)
	assert.True(t, attempt.Data.Passed)

	for _, lessonID := range []int{1, 2} {
		resp = doJSON(t, app, http.MethodPost, "/api/courses/"+itoa(courseID)+"/lessons/"+itoa(lessonID)+"/complete", studentToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodPost, "/api/courses/"+itoa(courseID)+"/certificate", studentToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cert struct {
		Data models.Certificate `json:"data"`
	}
	decode(t, resp, &cert)
	assert.Equal(t, "ada", cert.Data.StudentName)

	resp = doJSON(t, app, http.MethodGet, "/api/certificates/"+itoa(cert.Data.ID)+"/pdf", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// Another student cannot download someone else's certificate.
	otherToken := register(t, app, "eve", models.RoleStudent)
	resp = doJSON(t, app, http.MethodGet, "/api/certificates/"+itoa(cert.Data.ID)+"/pdf", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
