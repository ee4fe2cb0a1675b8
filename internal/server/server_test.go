package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"tripsync/internal/config"
	"tripsync/internal/database"
	"tripsync/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a Fiber app over an in-memory sqlite database with
// all routes registered. Redis is absent; cached paths fall through to the
// database.
func setupTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{Port: "8080", Env: "test"}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into a map.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// registerUser creates a user through the API and returns its id.
func registerUser(t *testing.T, app *fiber.App, first, last, username string) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/register", map[string]any{
		"first_name": first,
		"last_name":  last,
		"username":   username,
		"email":      username + "@example.com",
		"password":   "secret",
	})
	require.Equal(t, http.StatusCreated, status)
	return uint(body["user_id"].(float64))
}

// befriend runs the mutual-request flow between two users.
func befriend(t *testing.T, app *fiber.App, a, b uint) {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/friends/request",
		map[string]any{"user_id": a, "friend_id": b})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/friends/request",
		map[string]any{"user_id": b, "friend_id": a})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Friend request accepted", body["message"])
}

// createGroupWith creates a group via the API and returns its id.
func createGroupWith(t *testing.T, app *fiber.App, name string, createdBy uint, members []uint) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/groups", map[string]any{
		"group_name": name,
		"created_by": createdBy,
		"members":    members,
	})
	require.Equal(t, http.StatusCreated, status)
	return uint(body["group_id"].(float64))
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := setupTestServer(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "up", body["status"])

	status, body = doJSON(t, app, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", body["status"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	app, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// seedCatalog inserts cities and places directly for catalog handler tests.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	cities := []models.City{{CityName: "Barcelona"}, {CityName: "Lisbon"}}
	for i := range cities {
		require.NoError(t, db.Create(&cities[i]).Error)
	}

	categories := []string{"Restaurant", "Museum"}
	n := 0
	for _, city := range cities {
		for _, category := range categories {
			for p := 0; p < 3; p++ {
				n++
				require.NoError(t, db.Create(&models.Place{
					Name:     fmt.Sprintf("%s %s %d", city.CityName, category, p),
					Category: category,
					CityID:   city.ID,
				}).Error)
			}
		}
	}
	require.Equal(t, 12, n)
}
