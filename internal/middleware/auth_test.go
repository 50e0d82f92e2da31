package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/models"
)

func protectedHandler(t *testing.T, tokens *auth.TokenManager, perm auth.Permission) http.Handler {
	t.Helper()
	return Require(tokens, perm, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", string(id.Role))
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequire(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	driverToken, err := tokens.Generate(models.User{ID: 7, Role: models.RoleDriver, Email: "d@x.com"})
	require.NoError(t, err)
	adminToken, err := tokens.Generate(models.User{ID: 1, Role: models.RoleAdmin, Email: "a@x.com"})
	require.NoError(t, err)
	foreign, err := auth.NewTokenManager("other", "test", time.Hour).Generate(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		perm   auth.Permission
		want   int
	}{
		{"missing header", "", auth.AnyRole, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + adminToken, auth.AnyRole, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", auth.AnyRole, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", auth.AnyRole, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, auth.AnyRole, http.StatusUnauthorized},
		{"driver on admin route", "Bearer " + driverToken, auth.AdminOnly, http.StatusForbidden},
		{"admin on driver route", "Bearer " + adminToken, auth.DriverOnly, http.StatusForbidden},
		{"driver on shared route", "Bearer " + driverToken, auth.AdminOrDriver, http.StatusOK},
		{"lowercase scheme", "bearer " + adminToken, auth.AdminOnly, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protectedHandler(t, tokens, tt.perm).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"message"`)
			}
		})
	}
}

func TestAuthorizeWithoutIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	Authorize(auth.AnyRole)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := CORS([]string{"https://fleet.example.com"})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://FLEET.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://FLEET.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://fleet.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
