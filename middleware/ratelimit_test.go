package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/dental-practice-api/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_FailOpenWithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)

	r := newTestRouter()
	r.Use(RateLimiter(RateLimitConfig{Limit: 1}))
	r.GET("/ai/summarize", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Without Redis every request passes, even past the configured limit.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/summarize", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_DefaultsApplied(t *testing.T) {
	config.SetRedisClientForTesting(nil)

	r := newTestRouter()
	r.Use(RateLimiter(RateLimitConfig{}))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
