package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"law_shop_app_go/config"
	"law_shop_app_go/middleware"
	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAuthSecret = "handler-test-signing-secret"

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment:          "test",
		AuthTokenSecret:      testAuthSecret,
		CorporateEmailDomain: "@thelawshop.com",
		CalcomWebhookSecret:  "whsec_test",
		EmailTestMode:        true,
		UploadDir:            t.TempDir(),
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while keeping the database
	// visible to the async goroutines
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Client{},
		&models.Case{},
		&models.ClientCase{},
		&models.Portal{},
		&models.Document{},
		&models.WebhookLog{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	return testDB
}

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	cfg := testConfig(t)
	testDB := setupTestDB(t)
	h := New(testDB, cfg, services.NoopContactsSyncer{}, services.NewLocalStorage(cfg.UploadDir))
	return h, testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

// markAttorney simulates a request that passed the attorney middleware
func markAttorney(c echo.Context) {
	c.Set(middleware.ContextKeyIsAttorney, true)
	c.Set(middleware.ContextKeyUser, &services.TokenUser{
		UID:   "uid-test-attorney",
		Email: "ana@thelawshop.com",
		Role:  services.RoleAttorney,
	})
}

func attorneyToken(t *testing.T) string {
	claims := services.TokenClaims{
		Email: "ana@thelawshop.com",
		Role:  services.RoleAttorney,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-test-attorney",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthSecret))
	assert.NoError(t, err)
	return signed
}

func seedIntake(t *testing.T, testDB *gorm.DB, email string) *services.IntakeResult {
	result, err := services.CreateIntake(testDB, services.IntakeInput{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           email,
		CellPhone:       "+15551234567",
		PropertyAddress: "123 Main St, Brooklyn NY",
		CaseType:        models.CaseTypeCondo,
	}, false)
	assert.NoError(t, err)
	return result
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func serveRequest(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
