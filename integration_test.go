package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk-api/config"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "integration-test-secret-0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		GoEnv:              "test",
		JWTSecret:          testJWTSecret,
		UploadDir:          t.TempDir(),
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		OverdueSweepCron:   "5 0 * * *",
		NodeID:             1,
	}
}

// testApp is the full router over an in-memory database with mocked external calls
type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	searcher *services.MockCustomerSearcher
	reporter *services.MockRevenueReporter
	storage  *services.LocalPhotoStorage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	db := setupTestDB(t)
	numberer, err := services.NewNumberer(cfg.NodeID)
	require.NoError(t, err)

	app := &testApp{
		db:       db,
		cfg:      cfg,
		searcher: &services.MockCustomerSearcher{},
		reporter: &services.MockRevenueReporter{},
		storage:  services.NewLocalPhotoStorage(cfg.UploadDir),
	}
	app.router, err = setupRouter(Dependencies{
		Config:   cfg,
		DB:       db,
		Numberer: numberer,
		Searcher: app.searcher,
		Reporter: app.reporter,
		Storage:  app.storage,
	})
	require.NoError(t, err)
	return app
}

// signToken issues an HS256 token the way a local identity provider would
func signToken(t *testing.T, subject, role, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims["https://crewdesk.app/role"] = role
	}
	if email != "" {
		claims["email"] = email
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (a *testApp) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error.Code
}

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "CrewDesk API is running", response["message"])
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

// TestHealthEndpointMethod tests that only GET method is allowed
func TestHealthEndpointMethod(t *testing.T) {
	app := newTestApp(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := app.do(method, "/api/v1/health", "")
		assert.Equal(t, http.StatusNotFound, w.Code, "%s should not be allowed", method)
	}
}

// TestAPIV1Prefix tests that the endpoint requires /api/v1 prefix
func TestAPIV1Prefix(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/health", "").Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	paths := []string{
		"/api/v1/customers",
		"/api/v1/jobs",
		"/api/v1/quotes",
		"/api/v1/invoices",
		"/api/v1/routes",
		"/api/v1/photos",
		"/api/v1/reports/revenue",
		"/api/v1/dashboard",
		"/api/v1/users/me",
	}
	for _, path := range paths {
		w := app.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, w), path)
	}

	w := app.do(http.MethodGet, "/api/v1/customers", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w))
}

func TestProtectedRoutesRequireProfile(t *testing.T) {
	app := newTestApp(t)
	token := signToken(t, "auth0|newcomer", "staff", "new@example.com")

	w := app.do(http.MethodGet, "/api/v1/customers", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PROFILE_REQUIRED", errorCode(t, w))
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadsRouteOnlyForLocalStorage(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/api/v1/uploads/jobs/x/missing.png", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FILE_NOT_FOUND", errorCode(t, w))

	db := setupTestDB(t)
	numberer, err := services.NewNumberer(1)
	require.NoError(t, err)
	router, err := setupRouter(Dependencies{
		Config:   testConfig(t),
		DB:       db,
		Numberer: numberer,
		Searcher: &services.MockCustomerSearcher{},
		Reporter: &services.MockRevenueReporter{},
		Storage:  services.NewMockPhotoStorage(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/jobs/x/missing.png", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "FILE_NOT_FOUND")
}
