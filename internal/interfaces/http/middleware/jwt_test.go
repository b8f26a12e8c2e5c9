package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/auth"
	"github.com/ginvoice/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware-tests",
		AccessTokenExpiration: time.Hour,
		Issuer:                "ginvoice-test",
	})
}

func newSignedToken(t *testing.T, jwtService *auth.JWTService) (*auth.Token, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID:       uuid.New(),
		Name:         "billing@firm.example",
		Capabilities: []string{"intake:write", "billing:decide"},
	}
	token, err := jwtService.Generate(input)
	require.NoError(t, err)
	return token, input
}

func newProtectedRouter(jwtService *auth.JWTService, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/protected", handler)
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, input := newSignedToken(t, jwtService)

	var capturedUserID, capturedName, capturedContextActor string
	var capturedCaps []string
	router := newProtectedRouter(jwtService, func(c *gin.Context) {
		capturedUserID = GetJWTUserID(c)
		capturedName = GetJWTName(c)
		if claims := GetJWTClaims(c); claims != nil {
			capturedCaps = claims.Capabilities
		}
		capturedContextActor = shared.ActorFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, input.UserID.String(), capturedUserID)
	assert.Equal(t, input.Name, capturedName)
	assert.Equal(t, input.Capabilities, capturedCaps)
	// the change log records this actor for every save in the request
	assert.Equal(t, input.Name, capturedContextActor)
}

func TestJWTAuthMiddleware_RejectsBadRequests(t *testing.T) {
	jwtService := newTestJWTService()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty bearer token", BearerPrefix},
		{"garbage token", BearerPrefix + "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(jwtService, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/v1/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware-tests",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "ginvoice-test",
	})
	token, _ := newSignedToken(t, expiredService)

	router := newProtectedRouter(newTestJWTService(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/swagger/index.html", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/health", "/swagger/index.html"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s should not require auth", path)
	}
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newSignedToken(t, jwtService)

	claims, err := jwtService.Validate(token.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = blacklist

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/v1/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestGetActor(t *testing.T) {
	t.Run("builds the actor from stored claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		userID := uuid.New()
		c.Set(JWTClaimsKey, &auth.Claims{
			UserID:       userID.String(),
			Name:         "reviewer@firm.example",
			Capabilities: []string{"intake:review"},
		})

		actor := GetActor(c)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, "reviewer@firm.example", actor.Name)
		assert.True(t, actor.Has(capability.IntakeReview))
		assert.False(t, actor.Has(capability.BillingDecide))
	})

	t.Run("returns the zero actor without claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		actor := GetActor(c)
		assert.Equal(t, uuid.Nil, actor.UserID)
		assert.Empty(t, actor.Capabilities)
	})
}
