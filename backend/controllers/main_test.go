package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/routes"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// newTestEnv wires the full route table against a fresh in-memory
// sqlite database. One database per test keeps the suites independent.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive
	// for the duration of the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "0"}
	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)

	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// register creates an account through the public endpoint and returns
// the issued token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	resp := e.request(t, "POST", "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token, _ := decodeMap(t, resp)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createUser inserts an account of an arbitrary role directly into the
// store, sidestepping the registration bootstrap rule.
func (e *testEnv) createUser(t *testing.T, name, email, password string, role models.Role) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := decodeMap(t, resp)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createCourse makes a course through the API as the given trainer and
// returns its id.
func (e *testEnv) createCourse(t *testing.T, token, title string) uint {
	t.Helper()
	resp := e.request(t, "POST", "/api/courses/", token, map[string]string{
		"title":       title,
		"description": "A course for testing",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id, ok := decodeMap(t, resp)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

// createQuiz makes a one-question quiz (options [X, Y], correct X) on
// the given course and returns the quiz id and question id.
func (e *testEnv) createQuiz(t *testing.T, token string, courseID uint, title string) (uint, uint) {
	t.Helper()
	resp := e.request(t, "POST", "/api/quizzes/", token, map[string]interface{}{
		"title":     title,
		"course_id": courseID,
		"questions": []map[string]interface{}{
			{"text": "Pick the right one", "options": []string{"X", "Y"}, "correct_answer": "X"},
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	quiz := decodeMap(t, resp)
	quizID := uint(quiz["id"].(float64))
	questions := quiz["questions"].([]interface{})
	require.Len(t, questions, 1)
	questionID := uint(questions[0].(map[string]interface{})["id"].(float64))
	return quizID, questionID
}

// enroll replaces the course's student set with the given student ids.
// The update endpoint replaces title and description wholesale, so the
// current values are fetched and sent back unchanged.
func (e *testEnv) enroll(t *testing.T, token string, courseID uint, studentIDs ...uint) {
	t.Helper()
	var course models.Course
	require.NoError(t, e.db.First(&course, courseID).Error)

	resp := e.request(t, "PUT", fmt.Sprintf("/api/courses/%d", courseID), token, map[string]interface{}{
		"title":       course.Title,
		"description": course.Description,
		"students":    studentIDs,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
