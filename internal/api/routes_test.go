package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"icoffee-admin/internal/database"
	"icoffee-admin/pkg/config"
	"icoffee-admin/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "coffee-pass-123"

func setupTestServer(t *testing.T) (*gin.Engine, *Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// In-memory sqlite lives per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Security.JWTSecret = "integration-test-secret"
	cfg.Security.JWTExpiration = time.Hour
	cfg.Security.RefreshExpiration = 24 * time.Hour
	cfg.API.LoginPath = "/login"
	cfg.API.RateLimit = 10000
	cfg.API.BurstLimit = 10000
	cfg.API.CORS.AllowedOrigins = []string{"*"}

	log := logger.NewLogger("error", "")
	services := NewServices(db, log, cfg)

	router := gin.New()
	SetupRoutes(router, services)
	return router, services
}

func createTestUser(t *testing.T, services *Services, name, email, role, subRole string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	err = services.UserRepository().Create(&database.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		SubRole:      subRole,
		IsActive:     true,
	})
	require.NoError(t, err)
}

func loginAs(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": testPassword,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func doRequest(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Ada Obi", "ada@i-coffee.ng", "ADMIN", "IT")

	t.Run("Success", func(t *testing.T) {
		token := loginAs(t, router, "ada@i-coffee.ng")
		assert.True(t, services.SessionStore().IsTokenValid(token))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/login", "", map[string]string{
			"email":    "ada@i-coffee.ng",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		body := decodeBody(t, w)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errInfo["code"])
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/login", "", map[string]string{
			"email":    "nobody@i-coffee.ng",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("SubRoleMismatch", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/login", "", map[string]string{
			"email":    "ada@i-coffee.ng",
			"password": testPassword,
			"sub_role": "SALES",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGuardedRoutes(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Obi Udo", "obi@i-coffee.ng", "ADMIN", "WAREHOUSE")
	token := loginAs(t, router, "obi@i-coffee.ng")

	t.Run("NoTokenRedirectsToLogin", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/dashboard", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		body := decodeBody(t, w)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "SESSION_INVALID", errInfo["code"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "/login", data["redirect_to"])
	})

	t.Run("DashboardAdmitsAnyAdmin", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/dashboard", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		cfg := data["config"].(map[string]interface{})
		assert.Equal(t, "Warehouse Dashboard", cfg["title"])
	})

	t.Run("AllowedSectionAuthorized", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/stock", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("WrongSubRoleGetsDenialPanel", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/pricing-config", token, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		body := decodeBody(t, w)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "PERMISSION_DENIED", errInfo["code"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, "WAREHOUSE", data["current_sub_role"])
		assert.Equal(t, "/admin/dashboard", data["go_back_path"])

		// Denied in place, session untouched.
		assert.True(t, services.SessionStore().IsTokenValid(token))
	})

	t.Run("SettingsAdmitsAnyAdmin", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/settings", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CustomerIsNotAnAdmin", func(t *testing.T) {
		createTestUser(t, services, "Buyer", "buyer@example.com", "USER", "BTC")
		customerToken := loginAs(t, router, "buyer@example.com")

		w := doRequest(router, http.MethodGet, "/admin/dashboard", customerToken, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Ada Obi", "ada@i-coffee.ng", "ADMIN", "IT")
	token := loginAs(t, router, "ada@i-coffee.ng")

	w := doRequest(router, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, services.SessionStore().IsTokenValid(token))

	w = doRequest(router, http.MethodGet, "/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Ada Obi", "ada@i-coffee.ng", "ADMIN", "IT")

	body, _ := json.Marshal(map[string]string{
		"email":    "ada@i-coffee.ng",
		"password": testPassword,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w2 := doRequest(router, http.MethodPost, "/refresh", "", map[string]string{
		"refresh_token": loginResp.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var refreshResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &refreshResp))
	require.NotEmpty(t, refreshResp.AccessToken)

	// Old session is replaced by the new one.
	assert.False(t, services.SessionStore().IsTokenValid(loginResp.AccessToken))
	assert.True(t, services.SessionStore().IsTokenValid(refreshResp.AccessToken))

	t.Run("UnknownRefreshToken", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/refresh", "", map[string]string{
			"refresh_token": "never-issued",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserManagementPolicy(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Ego Nwosu", "ego@i-coffee.ng", "ADMIN", "HR")
	createTestUser(t, services, "Seyi Ade", "seyi@i-coffee.ng", "ADMIN", "SALES")
	hrToken := loginAs(t, router, "ego@i-coffee.ng")
	salesToken := loginAs(t, router, "seyi@i-coffee.ng")

	t.Run("SalesCannotReachUserSection", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/users", salesToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("HRListsUsers", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/admin/users?page=1&page_size=10", hrToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("HRCreatesSalesAdmin", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users", hrToken, map[string]string{
			"name":     "New Sales",
			"email":    "newsales@i-coffee.ng",
			"password": "securepass123",
			"role":     "ADMIN",
			"sub_role": "SALES",
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("HRCannotCreateDirector", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users", hrToken, map[string]string{
			"name":     "New Director",
			"email":    "newdirector@i-coffee.ng",
			"password": "securepass123",
			"role":     "ADMIN",
			"sub_role": "DIRECTOR",
		})
		require.Equal(t, http.StatusForbidden, w.Code)

		body := decodeBody(t, w)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "PERMISSION_DENIED", errInfo["code"])
	})

	t.Run("HRCreatesCustomer", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users", hrToken, map[string]string{
			"name":     "New Buyer",
			"email":    "buyer2@example.com",
			"password": "securepass123",
			"role":     "USER",
			"sub_role": "BTC",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("InvalidSubRoleForRoleRejected", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users", hrToken, map[string]string{
			"name":     "Broken",
			"email":    "broken@i-coffee.ng",
			"password": "securepass123",
			"role":     "USER",
			"sub_role": "SALES",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users", hrToken, map[string]string{
			"name":     "Again",
			"email":    "seyi@i-coffee.ng",
			"password": "securepass123",
			"role":     "ADMIN",
			"sub_role": "SALES",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("HRCannotDelete", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/admin/users/2", hrToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("HRResetsPassword", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users/2/reset-password", hrToken, map[string]string{
			"new_password":     "replacement-pass",
			"confirm_password": "replacement-pass",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("PasswordMismatchRejected", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users/2/reset-password", hrToken, map[string]string{
			"new_password":     "replacement-pass",
			"confirm_password": "different-pass",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("HRIssuesRecoveryCode", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/admin/users/2/recovery-code", hrToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["recovery_code"])
	})
}

func TestDirectorDeletesUser(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Big Boss", "boss@i-coffee.ng", "ADMIN", "DIRECTOR")
	createTestUser(t, services, "Leaver", "leaver@i-coffee.ng", "ADMIN", "SALES")
	token := loginAs(t, router, "boss@i-coffee.ng")

	w := doRequest(router, http.MethodDelete, "/admin/users/2", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Deactivated accounts cannot sign in anymore.
	body, _ := json.Marshal(map[string]string{
		"email":    "leaver@i-coffee.ng",
		"password": testPassword,
	})
	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestRouteTableSubRoleMatrix(t *testing.T) {
	router, services := setupTestServer(t)

	accounts := map[string]string{
		"EDITOR":     "editor@i-coffee.ng",
		"LOGISTICS":  "logistics@i-coffee.ng",
		"ACCOUNTANT": "accountant@i-coffee.ng",
	}
	tokens := make(map[string]string)
	for subRole, email := range accounts {
		createTestUser(t, services, subRole, email, "ADMIN", subRole)
		tokens[subRole] = loginAs(t, router, email)
	}

	cases := []struct {
		subRole string
		path    string
		status  int
	}{
		{"EDITOR", "/admin/categories", http.StatusOK},
		{"EDITOR", "/admin/blog/posts", http.StatusOK},
		{"EDITOR", "/admin/logistics", http.StatusForbidden},
		{"LOGISTICS", "/admin/tracking", http.StatusOK},
		{"LOGISTICS", "/admin/suppliers", http.StatusForbidden},
		{"ACCOUNTANT", "/admin/exchange-rates", http.StatusOK},
		{"ACCOUNTANT", "/admin/reports/pricing", http.StatusOK},
		{"ACCOUNTANT", "/admin/stock", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%s", tc.subRole, tc.path), func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tc.path, tokens[tc.subRole], nil)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestRootRedirect(t *testing.T) {
	router, services := setupTestServer(t)
	createTestUser(t, services, "Ada Obi", "ada@i-coffee.ng", "ADMIN", "IT")

	w := doRequest(router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	token := loginAs(t, router, "ada@i-coffee.ng")
	w = doRequest(router, http.MethodGet, "/", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestHealthAndNotFound(t *testing.T) {
	router, _ := setupTestServer(t)

	w := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	errInfo := body["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errInfo["code"])
}
