package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/database/migrations"
	"github.com/PavaniTiago/lcp-network-api/internal/infrastructure/repository"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/middleware"
)

const (
	secret   = "route-test-secret"
	memberID = "6f1c2f4e-2b1a-4c55-9a57-1f0f1d6b7c11"
	adminID  = "0b7e7d55-3c5f-4f0e-8d7e-2a8d8c3f9a10"
)

type testAPI struct {
	app *fiber.App
	db  *gorm.DB
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	registry := survey.DefaultRegistry()
	require.NoError(t, migrations.Migrate(db, registry))

	log := zap.NewNop()
	store := repository.NewGormStore(db)
	uc := usecases.New(registry, usecases.Repositories{
		Surveys:     repositories.NewSurveyRepository(store, registry, log),
		Projections: repositories.NewMemberSurveyRepository(store),
		Visibility:  repositories.NewVisibilityRepository(store),
		Viewers:     repositories.NewViewerRepository(store),
	}, time.Minute, time.UTC, log)

	app := fiber.New()
	SetupRoutes(app, handlers.NewHandlers(uc, log), middleware.Auth(secret))
	return &testAPI{app: app, db: db}
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	claims := &middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserRole: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func (a *testAPI) do(t *testing.T, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := a.app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func validAnswers() map[string]interface{} {
	return map[string]interface{}{
		"vehicle_name":        "Acacia Fund",
		"email_address":       "gp@acacia.example",
		"organisation_name":   "Acacia Capital",
		"investment_networks": []string{"LCP"},
		"geographic_markets":  []string{"East Africa"},
		"legal_domicile":      []string{"Kenya"},
		"markets_operated":    map[string]float64{"Kenya": 60, "Uganda": 40},
		"target_capital":      1000000,
		"capital_raised":      250000,
	}
}

func TestHealthAndSchemas(t *testing.T) {
	api := setupAPI(t)

	status, body := api.do(t, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = api.do(t, fiber.MethodGet, "/api/v1/surveys/schemas", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []interface{}{2021.0, 2022.0, 2023.0, 2024.0}, body["years"])
}

func TestSurveyRoutes_RequireToken(t *testing.T) {
	api := setupAPI(t)

	for _, path := range []string{"/api/v1/surveys/status", "/api/v1/surveys/2024", "/api/v1/analytics/2024/stats/target_capital"} {
		status, _ := api.do(t, fiber.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
	}
}

func TestSurveyLifecycle(t *testing.T) {
	api := setupAPI(t)
	member := token(t, memberID, "member")

	status, _ := api.do(t, fiber.MethodGet, "/api/v1/surveys/2024", member, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := api.do(t, fiber.MethodPut, "/api/v1/surveys/2024/draft", member, map[string]interface{}{
		"vehicle_name":         "Acacia Fund",
		"legal_entity_date_to": "present",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, false, body["completed"])
	draftID := body["id"]

	status, body = api.do(t, fiber.MethodGet, "/api/v1/surveys/2024", member, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Acacia Fund", data["vehicle_name"])
	assert.Equal(t, "present", data["legal_entity_date_to"])

	status, body = api.do(t, fiber.MethodPost, "/api/v1/surveys/2024/submit", member, map[string]interface{}{"vehicle_name": "Acacia Fund"})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, body["errors"])

	status, body = api.do(t, fiber.MethodPost, "/api/v1/surveys/2024/submit", member, validAnswers())
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, true, body["completed"])
	assert.Equal(t, draftID, body["id"])

	status, _ = api.do(t, fiber.MethodPut, "/api/v1/surveys/2024/draft", member, map[string]interface{}{"thesis": "late edit"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = api.do(t, fiber.MethodGet, "/api/v1/surveys/status", member, nil)
	require.Equal(t, fiber.StatusOK, status)
	for _, s := range body["data"].([]interface{}) {
		entry := s.(map[string]interface{})
		assert.Equal(t, entry["year"] == 2024.0, entry["completed"], "year %v", entry["year"])
	}

	var projected int64
	require.NoError(t, api.db.Table("member_surveys").Where("user_id = ?", memberID).Count(&projected).Error)
	assert.Equal(t, int64(1), projected)
}

func TestSubmit_AllocationCap(t *testing.T) {
	api := setupAPI(t)

	answers := validAnswers()
	answers["markets_operated"] = map[string]float64{"Kenya": 70, "Uganda": 40}

	status, body := api.do(t, fiber.MethodPost, "/api/v1/surveys/2024/submit", token(t, memberID, ""), answers)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "markets_operated", body["field"])
	assert.InDelta(t, 110.0, body["total"], 1e-9)
}

func TestSurveyRoutes_BadYear(t *testing.T) {
	api := setupAPI(t)
	member := token(t, memberID, "")

	status, _ := api.do(t, fiber.MethodGet, "/api/v1/surveys/abc", member, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = api.do(t, fiber.MethodGet, "/api/v1/surveys/2019", member, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAnalyticsRoutes(t *testing.T) {
	api := setupAPI(t)
	member := token(t, memberID, "member")
	admin := token(t, adminID, "admin")

	status, _ := api.do(t, fiber.MethodPost, "/api/v1/surveys/2024/submit", member, validAnswers())
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024", member, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := api.do(t, fiber.MethodGet, "/api/v1/analytics/2024", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1.0, body["responses"])

	// no visibility rule yet: admin only
	status, _ = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024/distribution/legal_domicile", member, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	require.NoError(t, api.db.Exec(`INSERT INTO field_visibility (survey_year, field_name, field_category, viewer_visible, member_visible, admin_visible)
		VALUES (2024, 'legal_domicile', 'geography', 0, 1, 1), (2024, 'target_capital', 'financials', 0, 1, 1)`).Error)

	status, body = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024/distribution/legal_domicile", member, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "geography", body["category"])

	status, body = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024/stats/target_capital", member, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1000000.0, body["median"])

	status, _ = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024/stats/legal_domicile", member, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = api.do(t, fiber.MethodGet, "/api/v1/analytics/2024/stats/favourite_colour", admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminViewers(t *testing.T) {
	api := setupAPI(t)

	status, _ := api.do(t, fiber.MethodPost, "/api/v1/admin/viewers", token(t, memberID, "member"), map[string]interface{}{})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := api.do(t, fiber.MethodPost, "/api/v1/admin/viewers", token(t, adminID, "admin"), map[string]interface{}{
		"email":            "viewer@fund.example",
		"password":         "secret123",
		"confirm_password": "secret124",
		"first_name":       "Amani",
		"last_name":        "Otieno",
		"survey_year":      2024,
		"survey_data":      validAnswers(),
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, "confirm_password", errs[0].(map[string]interface{})["field"])
}
