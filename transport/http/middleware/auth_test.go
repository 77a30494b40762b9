package middleware_test

import (
	"heritage/config"
	"heritage/infras/jwt"
	"heritage/infras/otel/mocks"
	"heritage/permissions"
	"heritage/shared/constant"
	"heritage/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "heritage"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 15

	return cfg
}

func newProtectedRouter(cfg *config.Config) http.Handler {
	authRole := middleware.NewAuthRoleMiddleware(jwt.New(cfg), mocks.NewOtel(), permissions.Get(), cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Group(func(group chi.Router) {
		group.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		group.Route("/v1", func(v1 chi.Router) {
			v1.Get("/places/{id}", whoami)
			v1.Post("/bookings", whoami)
			v1.Get("/crowd/overview", whoami)
		})
	})

	return router
}

func token(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()

	signed, err := jwt.New(cfg).GenerateAccessToken(jwt.Identity{UserID: "user-1", Email: "asha@example.com", Name: "Asha", Role: role})
	require.NoError(t, err)

	return "Bearer " + signed
}

func TestAuthRole(t *testing.T) {
	cfg := testConfig()
	router := newProtectedRouter(cfg)

	expired := testConfig()
	expired.JWT.AccessExpireMin = -5

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantCode int
		wantBody string
	}{
		{
			name:     "public place lookup needs no token",
			method:   http.MethodGet,
			path:     "/v1/places/P1",
			wantCode: http.StatusOK,
		},
		{
			name:     "booking without token",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "booking with malformed header",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "booking with expired token",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			headers:  map[string]string{constant.RequestHeaderAuthorization: token(t, expired, constant.RoleUser)},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "booking as visitor",
			method:   http.MethodPost,
			path:     "/v1/bookings",
			headers:  map[string]string{constant.RequestHeaderAuthorization: token(t, cfg, constant.RoleUser)},
			wantCode: http.StatusOK,
			wantBody: "user-1",
		},
		{
			name:     "overview as visitor",
			method:   http.MethodGet,
			path:     "/v1/crowd/overview",
			headers:  map[string]string{constant.RequestHeaderAuthorization: token(t, cfg, constant.RoleUser)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "overview as admin",
			method:   http.MethodGet,
			path:     "/v1/crowd/overview",
			headers:  map[string]string{constant.RequestHeaderAuthorization: token(t, cfg, constant.RoleAdmin)},
			wantCode: http.StatusOK,
		},
		{
			name:     "overview with api key",
			method:   http.MethodGet,
			path:     "/v1/crowd/overview",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "overview with wrong api key",
			method:   http.MethodGet,
			path:     "/v1/crowd/overview",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "unknown route is left to the router",
			method:   http.MethodGet,
			path:     "/v1/nowhere",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "wrong method is left to the router",
			method:   http.MethodDelete,
			path:     "/v1/bookings",
			wantCode: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
