package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/dental-practice-api/ai"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noopGenerator struct{}

func (noopGenerator) Summarize(ctx context.Context, clinicalText string) (string, error) {
	return "", nil
}

func (noopGenerator) DraftLetter(ctx context.Context, soapSummary, referrerName, referrerAddress, patientName string) (string, error) {
	return "", nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestDatabaseMiddleware_RoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	r := newTestRouter()
	r.Use(DatabaseMiddleware(db))
	r.GET("/", func(c *gin.Context) {
		assert.Same(t, db, GetDB(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetDB_NotInjected(t *testing.T) {
	r := newTestRouter()
	r.GET("/", func(c *gin.Context) {
		assert.Nil(t, GetDB(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGeneratorMiddleware_Injected(t *testing.T) {
	gen := noopGenerator{}

	r := newTestRouter()
	r.Use(GeneratorMiddleware(gen))
	r.GET("/", func(c *gin.Context) {
		assert.NotNil(t, GetGenerator(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGeneratorMiddleware_NilIsAbsent(t *testing.T) {
	var gen ai.Generator

	r := newTestRouter()
	r.Use(GeneratorMiddleware(gen))
	r.GET("/", func(c *gin.Context) {
		assert.Nil(t, GetGenerator(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newTestRouter()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORSMiddleware_PassThrough(t *testing.T) {
	r := newTestRouter()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
