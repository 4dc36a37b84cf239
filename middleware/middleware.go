package middleware

import (
	"net/http"

	"github.com/ariebrainware/dental-practice-api/ai"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbContextKey        = "db"
	generatorContextKey = "textGenerator"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the gorm DB connection into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped DB connection, or nil if none was injected.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbContextKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// GeneratorMiddleware injects the text-generation client into the request
// context. A nil generator (provider not configured, decided once at startup)
// is simply not injected; handlers treat its absence as the NotConfigured
// outcome.
func GeneratorMiddleware(gen ai.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gen != nil {
			c.Set(generatorContextKey, gen)
		}
		c.Next()
	}
}

// GetGenerator returns the request-scoped text-generation client, or nil when
// the provider is not configured.
func GetGenerator(c *gin.Context) ai.Generator {
	if v, ok := c.Get(generatorContextKey); ok {
		if gen, ok := v.(ai.Generator); ok {
			return gen
		}
	}
	return nil
}
