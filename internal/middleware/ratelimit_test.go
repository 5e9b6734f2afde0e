package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gregsantos/ip-derivative-agent/internal/auth"
)

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within rate limit", func(t *testing.T) {
		router := rateLimitedRouter(NewRateLimiter(10, 20))

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-Forwarded-For", "192.168.1.1")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("blocks requests exceeding rate limit", func(t *testing.T) {
		router := rateLimitedRouter(NewRateLimiter(1, 2))

		var lastCode int
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-Forwarded-For", "192.168.1.2")
			router.ServeHTTP(w, req)
			lastCode = w.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})

	t.Run("different clients have separate limits", func(t *testing.T) {
		router := rateLimitedRouter(NewRateLimiter(1, 1))

		w1 := httptest.NewRecorder()
		req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
		req1.Header.Set("X-Forwarded-For", "192.168.1.3")
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
		req2.Header.Set("X-Forwarded-For", "192.168.1.4")
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
	})

	t.Run("health endpoint is never limited", func(t *testing.T) {
		router := rateLimitedRouter(NewRateLimiter(1, 1))

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("X-Forwarded-For", "192.168.1.5")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestGetClientIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(configure func(*gin.Context)) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
		configure(c)
		return c
	}

	t.Run("prefers the API key prefix", func(t *testing.T) {
		c := newContext(func(c *gin.Context) {
			c.Request.Header.Set("X-API-Key", "ipa_abcdefgh_rest")
		})
		assert.Equal(t, "api:ipa_abcd", getClientIdentifier(c))
	})

	t.Run("uses the authenticated caller address", func(t *testing.T) {
		caller := common.HexToAddress("0x42")
		c := newContext(func(c *gin.Context) {
			c.Set(auth.CallerAddressKey, caller)
		})
		assert.Equal(t, "caller:"+caller.Hex(), getClientIdentifier(c))
	})

	t.Run("falls back to the forwarded IP", func(t *testing.T) {
		c := newContext(func(c *gin.Context) {
			c.Request.Header.Set("X-Forwarded-For", "10.0.0.1")
		})
		assert.Equal(t, "ip:10.0.0.1", getClientIdentifier(c))
	})
}
