package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"usersvc/internal/database"
	"usersvc/internal/handlers"
	"usersvc/internal/middleware"
	"usersvc/internal/models"
	"usersvc/internal/repositories"
	"usersvc/internal/services"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and the user handlers.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.Open(database.Config{SQLitePath: database.MemoryDSN(uuid.NewString())})
	require.NoError(t, err, "failed to connect to in-memory database")
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db), "failed to migrate database")

	return newApp(repositories.NewGORMUserRepository(db))
}

func newApp(repo repositories.UserRepository) *fiber.App {
	log := zap.NewNop()
	userService := services.NewUserService(repo, nil, log)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	apiV1 := app.Group("/api/v1")
	handlers.NewHealthHandler().RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			jsonBody, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(jsonBody)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestUserLifecycle(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]string{
		"name":  "Grace Hopper",
		"email": "grace@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.User](t, resp)
	assert.Equal(t, int64(1), created.ID)
	assert.Len(t, created.UUID, 36)
	assert.Equal(t, "Grace Hopper", created.Name)
	_, err := time.Parse(time.RFC3339, created.CreatedAt)
	assert.NoError(t, err)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[models.User](t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users/"+created.UUID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[models.User](t, resp))

	resp = doJSON(t, app, http.MethodPut, "/api/v1/users/"+created.UUID, map[string]string{"name": "Rear Admiral Hopper"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.User](t, resp)
	assert.Equal(t, "Rear Admiral Hopper", updated.Name)
	assert.Equal(t, "grace@example.com", updated.Email)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, middleware.ErrorResponse{Error: "NotFound", Message: "User not found"}, decode[middleware.ErrorResponse](t, resp))

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/users/"+created.UUID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateUserValidation(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]interface{}{"name": "", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[middleware.ErrorResponse](t, resp)
	assert.Equal(t, "ValidationError", errResp.Error)
	assert.Equal(t, "name: String must contain at least 1 character(s); email: Invalid email address", errResp.Message)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/users", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name: Required; email: Required", decode[middleware.ErrorResponse](t, resp).Message)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/users", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BadRequest", decode[middleware.ErrorResponse](t, resp).Error)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := setupApp(t)
	user := map[string]string{"name": "Ada", "email": "ada@example.com"}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users", user)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/users", user)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Conflict", decode[middleware.ErrorResponse](t, resp).Error)
}

func TestUpdateUser(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/users/1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "value: At least one field is required", decode[middleware.ErrorResponse](t, resp).Message)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/users/1", map[string]string{"name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/users/abc", map[string]string{"name": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUserInvalidIdentifier(t *testing.T) {
	app := setupApp(t)

	for _, id := range []string{"not-a-valid-id", "0"} {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/users/"+id, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
		assert.Equal(t, "ValidationError", decode[middleware.ErrorResponse](t, resp).Error, id)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListUsers(t *testing.T) {
	app := newApp(repositories.NewMockUserRepository())

	for i := 1; i <= 12; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]string{
			"name":  fmt.Sprintf("User %d", i),
			"email": fmt.Sprintf("user%d@example.com", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[models.Page[models.User]](t, resp)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 10)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users?page=2&pageSize=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode[models.Page[models.User]](t, resp)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(11), page.Items[0].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[middleware.ErrorResponse](t, resp)
	assert.Equal(t, "ValidationError", errResp.Error)
	assert.Equal(t, "page: Number must be greater than 0", errResp.Message)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/users?pageSize=101", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newApp(repositories.NewMockUserRepository())

	resp := doJSON(t, app, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]interface{}](t, resp)
	assert.Equal(t, true, body["ok"])
	_, err := time.Parse(time.RFC3339, body["ts"].(string))
	assert.NoError(t, err)
}
