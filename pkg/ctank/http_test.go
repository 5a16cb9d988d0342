package ctank

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	api := fiber.New()
	app.Mount("/api", api)
	InitializeRoutes(app, api)
	return app
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()

	pkg.Conf.JWTSecret = "test-secret"
	pkg.Conf.JWTExpiredIn = time.Minute

	us := pkg.UserSession{USR: pkg.UserResponse{ID: uuid.New(), Role: role}}
	require.NoError(t, us.CreateJWTAccessToken())
	return "Bearer " + us.ACCTok
}

func TestHandleHealth(t *testing.T) {

	app := testApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body := map[string]string{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "CTMS is running", body["message"])
}

func TestRoutesRequireAuth(t *testing.T) {

	app := testApp(t)

	for _, path := range []string{
		"/api/tanks",
		"/api/readings",
		"/api/supplies",
		"/api/cws-params",
		"/api/bws-params",
		"/api/notes",
	} {
		res, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, path)
	}
}

func TestWriteRoutesRejectViewers(t *testing.T) {

	app := testApp(t)
	token := bearerToken(t, "viewer")

	req := httptest.NewRequest(http.MethodPost, "/api/tanks", nil)
	req.Header.Set("Authorization", token)

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestReportUnavailableWithoutSummarizer(t *testing.T) {

	app := testApp(t)
	token := bearerToken(t, "viewer")

	prev := ReportSummarizer
	ReportSummarizer = nil
	defer func() { ReportSummarizer = prev }()

	req := httptest.NewRequest(http.MethodPost, "/api/reports/summary", nil)
	req.Header.Set("Authorization", token)

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestUnknownAPIPathReturnsNotFound(t *testing.T) {

	app := testApp(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/no-such-thing", nil))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
