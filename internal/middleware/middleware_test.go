// internal/middleware/middleware_test.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/utils"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(ctx context.Context, id string) (bool, error) {
	return r[id], nil
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-secret")
}

func protectedRouter(revocations RevocationChecker, role models.Role) *gin.Engine {
	r := gin.New()
	r.Use(I18nMiddleware(""))
	handlers := []gin.HandlerFunc{AuthRequired(revocations)}
	if role != "" {
		handlers = append(handlers, RoleRequired(role))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := utils.GetUserIDFromContext(c)
		role, _ := utils.GetRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})
	r.GET("/private", handlers...)
	return r
}

func call(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestAuthRequired(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	r := protectedRouter(revokedSet{}, "")

	w := call(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", message(t, w))

	w = call(r, map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", message(t, w))

	token, err := utils.GenerateJWT("u1", "Asha", "farmer", 1)
	require.NoError(t, err)
	w = call(r, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"farmer"`)
}

func TestAuthRequiredExpiredAndRevoked(t *testing.T) {
	require.NoError(t, i18n.Initialize())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("middleware-secret"))
	require.NoError(t, err)

	w := call(protectedRouter(nil, ""), map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has expired", message(t, w))

	token, err := utils.GenerateJWT("u1", "Asha", "farmer", 1)
	require.NoError(t, err)
	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)

	w = call(protectedRouter(revokedSet{claims.ID: true}, ""), map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", message(t, w))
}

func TestRoleRequired(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	r := protectedRouter(nil, models.RoleFarmer)

	customer, err := utils.GenerateJWT("u2", "Meera", "customer", 1)
	require.NoError(t, err)
	w := call(r, map[string]string{"Authorization": "Bearer " + customer})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only farmer accounts can do this", message(t, w))

	farmer, err := utils.GenerateJWT("u1", "Asha", "farmer", 1)
	require.NoError(t, err)
	w = call(r, map[string]string{"Authorization": "Bearer " + farmer, "Accept-Language": "hi-IN,hi;q=0.9"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveLanguage(t *testing.T) {
	require.NoError(t, i18n.Initialize())

	assert.Equal(t, "en", resolveLanguage("", "en"))
	assert.Equal(t, "hi", resolveLanguage("hi-IN,hi;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "hi", resolveLanguage("fr-FR, hi_IN", "en"))
	assert.Equal(t, "en", resolveLanguage("fr-FR,de", "en"))
	assert.Equal(t, "en", resolveLanguage("*, -", "en"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.GET("/private", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, call(r, nil).Code)
	assert.Equal(t, http.StatusNoContent, call(r, nil).Code)
	w := call(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	rl.Stop()
	rl.Stop()
}

func TestRateLimiterStopEndsCleanup(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1, AuthPerMinute: 1, AuthBurst: 1})
	limits.Stop()

	for _, rl := range []*RateLimiter{limits.General, limits.Auth} {
		select {
		case <-rl.done:
		default:
			t.Fatal("cleanup goroutine still running after Stop")
		}
	}
}

func TestNewRateLimits(t *testing.T) {
	limits := NewRateLimits(config.RateLimitConfig{RequestsPerSecond: 10, Burst: 20, AuthPerMinute: 5, AuthBurst: 5})
	defer limits.Stop()

	assert.Equal(t, rate.Limit(10), limits.General.rate)
	assert.Equal(t, 20, limits.General.burst)
	assert.Equal(t, rate.Every(12*time.Second), limits.Auth.rate)
	assert.Equal(t, 12, limits.Auth.retryAfter())
}

func TestNewAuditLogRedactsPasswords(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
	c.Set("user_id", "b3c1e2d4-0000-4000-8000-000000000001")

	entry := newAuditLog(c, []byte(`{"email":"asha@example.com","password":"secret1"}`))

	assert.Equal(t, "auth", entry.ResourceType)
	assert.Equal(t, "[REDACTED]", entry.NewValues["password"])
	assert.Equal(t, "asha@example.com", entry.NewValues["email"])
	require.NotNil(t, entry.UserID)
	assert.Nil(t, entry.ResourceID)
}

func TestExtractResource(t *testing.T) {
	id := "7d0f6a36-2f43-4d4c-9a59-3a7d3f1f2b10"
	assert.Equal(t, "orders", extractResourceType("/api/orders/"+id))
	assert.Equal(t, id, extractResourceID("/api/orders/"+id))
	assert.Equal(t, "", extractResourceID("/api/orders/my-orders"))
	assert.Equal(t, "health", extractResourceType("/health"))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
