package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dietbro/internal/handlers"
	"dietbro/internal/repositories"
	"dietbro/internal/services"
)

// setupApp wires a Fiber app the way main does, with in-memory repositories
// and no event publisher.
func setupApp() *fiber.App {
	userRepo := repositories.NewMockUserRepository()
	blogRepo := repositories.NewMockBlogRepository()

	userService := services.NewUserService(userRepo, nil)
	blogService := services.NewBlogService(blogRepo, nil)

	userHandler := handlers.NewUserHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)
	planHandler := handlers.NewPlanHandler()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(true),
	})

	api := app.Group("/api")
	userHandler.RegisterRoutes(api)
	blogHandler.RegisterRoutes(api)
	planHandler.RegisterRoutes(api)
	app.Use(handlers.NotFoundHandler)

	return app
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func validRegistration(suffix int) map[string]interface{} {
	return map[string]interface{}{
		"name":           fmt.Sprintf("Test User %d", suffix),
		"phone":          fmt.Sprintf("98765432%02d", suffix),
		"email":          fmt.Sprintf("user%d@example.com", suffix),
		"address":        "12 MG Road, Bengaluru",
		"mealPlan":       "both",
		"foodPreference": "Non-Veg",
		"password":       "password123",
	}
}

func TestRegisterUser(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/users/register", validRegistration(1))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "user1@example.com", data["email"])
	assert.Equal(t, "pending", data["subscriptionStatus"])
	// No trace of the password may leave the server
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)
}

func TestRegisterUser_MissingRequiredField(t *testing.T) {
	app := setupApp()

	payload := validRegistration(1)
	delete(payload, "password")

	status, body := doJSON(t, app, http.MethodPost, "/api/users/register", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Password is required")

	// No partial write on the failure path
	status, listBody := doJSON(t, app, http.MethodGet, "/api/users/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, listBody["data"])
}

func TestRegisterUser_DuplicateEmailAndPhone(t *testing.T) {
	app := setupApp()

	status, _ := doJSON(t, app, http.MethodPost, "/api/users/register", validRegistration(1))
	require.Equal(t, http.StatusCreated, status)

	// Same email, different phone
	dup := validRegistration(2)
	dup["email"] = "user1@example.com"
	status, body := doJSON(t, app, http.MethodPost, "/api/users/register", dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "email")

	// Same phone, different email
	dup = validRegistration(3)
	dup["phone"] = validRegistration(1)["phone"]
	status, body = doJSON(t, app, http.MethodPost, "/api/users/register", dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "phone")
}

func TestGetUser_MalformedAndMissingID(t *testing.T) {
	app := setupApp()

	// Malformed id must be indistinguishable from a missing one
	status, body := doJSON(t, app, http.MethodGet, "/api/users/not-a-hex-id", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/64b1f0c2a1b2c3d4e5f60718", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/users/register", validRegistration(1))
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, app, http.MethodPut, "/api/users/"+id, map[string]interface{}{
		"subscriptionStatus": "active",
		"allergies":          "peanuts",
	})
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "active", data["subscriptionStatus"])
	assert.Equal(t, "peanuts", data["allergies"])

	// Enum violations are rejected
	status, _ = doJSON(t, app, http.MethodPut, "/api/users/"+id, map[string]interface{}{
		"subscriptionStatus": "frozen",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserStats(t *testing.T) {
	app := setupApp()

	// Empty collection: all counters zero, no errors
	status, body := doJSON(t, app, http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["totalUsers"])
	assert.Equal(t, float64(0), data["activeSubscriptions"])

	reg := validRegistration(1)
	reg["foodPreference"] = "Veg"
	reg["mealPlan"] = "lunch"
	status, _ = doJSON(t, app, http.MethodPost, "/api/users/register", reg)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/users/register", validRegistration(2))
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["totalUsers"])
	assert.Equal(t, float64(1), data["vegUsers"])
	assert.Equal(t, float64(1), data["nonVegUsers"])
	assert.Equal(t, float64(1), data["lunchUsers"])
	assert.Equal(t, float64(1), data["bothMealsUsers"])
	assert.Equal(t, float64(2), data["pendingSubscriptions"])
}

func seedBlogs(t *testing.T, app *fiber.App, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		status, body := doJSON(t, app, http.MethodPost, "/api/blogs/", map[string]interface{}{
			"title":   fmt.Sprintf("Post %d", i),
			"content": "This content is comfortably longer than the fifty character minimum.",
			"author":  "Asha Rao",
			"tags":    []string{"nutrition"},
		})
		require.Equal(t, http.StatusCreated, status)
		ids = append(ids, body["data"].(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestCreateBlog_ContentTooShort(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/blogs/", map[string]interface{}{
		"title":   "Short",
		"content": "too short",
		"author":  "Asha Rao",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Content must be at least 50 characters long")
}

func TestListBlogs_PaginationBoundary(t *testing.T) {
	app := setupApp()
	seedBlogs(t, app, 15)

	status, body := doJSON(t, app, http.MethodGet, "/api/blogs/?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 10)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(15), pagination["total"])
	assert.Equal(t, float64(2), pagination["pages"])

	status, body = doJSON(t, app, http.MethodGet, "/api/blogs/?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 5)
	pagination = body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
}

func TestGetBlog_CountsEachView(t *testing.T) {
	app := setupApp()
	ids := seedBlogs(t, app, 1)

	var body map[string]interface{}
	var status int
	for i := 0; i < 3; i++ {
		status, body = doJSON(t, app, http.MethodGet, "/api/blogs/"+ids[0], nil)
		require.Equal(t, http.StatusOK, status)
	}
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["views"])
}

func TestLikeBlog_CountsEachCall(t *testing.T) {
	app := setupApp()
	ids := seedBlogs(t, app, 1)

	status, _ := doJSON(t, app, http.MethodPut, "/api/blogs/"+ids[0]+"/like", nil)
	require.Equal(t, http.StatusOK, status)
	status, body := doJSON(t, app, http.MethodPut, "/api/blogs/"+ids[0]+"/like", nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["likes"])
}

func TestBlogStats(t *testing.T) {
	app := setupApp()
	ids := seedBlogs(t, app, 2)

	// 3 views and 1 like on the first post
	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, app, http.MethodGet, "/api/blogs/"+ids[0], nil)
		require.Equal(t, http.StatusOK, status)
	}
	status, _ := doJSON(t, app, http.MethodPut, "/api/blogs/"+ids[0]+"/like", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/blogs/stats", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["totalBlogs"])
	assert.Equal(t, float64(1), data["totalLikes"])
	assert.Equal(t, float64(3), data["totalViews"])
	assert.Equal(t, 0.5, data["avgLikesPerBlog"])
	assert.Equal(t, 1.5, data["avgViewsPerBlog"])
}

func TestPlanQuote(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/plans/quote", map[string]interface{}{
		"dietType":       "HighProtein",
		"days":           7,
		"mealPlan":       "both",
		"foodPreference": "Non-Veg",
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3780), data["basePrice"])
	assert.Equal(t, float64(280), data["surcharge"])
	assert.Equal(t, float64(4060), data["total"])

	// A day count outside the rate table is rejected, not priced at zero
	status, body = doJSON(t, app, http.MethodPost, "/api/plans/quote", map[string]interface{}{
		"dietType":       "Balanced",
		"days":           5,
		"mealPlan":       "lunch",
		"foodPreference": "Veg",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestPlanCatalog(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodGet, "/api/plans/", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["plans"], 2)
	assert.Len(t, data["days"], 4)
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp()

	status, body := doJSON(t, app, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "/api/nothing-here")
}
