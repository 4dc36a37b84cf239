package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/dental-practice-api/config"
	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// endpointTestModels defines the standard set of models migrated for endpoint tests
var endpointTestModels = []interface{}{
	&model.Patient{},
	&model.Referral{},
	&model.Note{},
	&model.Appointment{},
	&model.AuditLog{},
}

// setupTestDB initializes a test database with all standard models migrated.
// It sets APPENV to "test" so ConnectMySQL opens in-memory SQLite.
// Cleanup is automatically registered via t.Cleanup().
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	t.Setenv("APPENV", "test")
	config.ResetForTesting()

	db, err := config.ConnectMySQL()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}

	if err := db.AutoMigrate(endpointTestModels...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	// Clean up all tables (the in-memory DB is shared between connections)
	for _, m := range endpointTestModels {
		db.Unscoped().Where("1 = 1").Delete(m)
	}

	t.Cleanup(func() {
		for _, m := range endpointTestModels {
			_ = db.Migrator().DropTable(m)
		}
	})

	return db
}

// setupEndpointTest returns a Gin engine and database connection configured for endpoint tests.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	return r, db
}

// performJSON issues a request with a JSON-encoded body against the engine.
func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// parseResponse decodes the standard API envelope.
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

// responseData returns the data object of the standard API envelope.
func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	response := parseResponse(t, w)
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", response["data"])
	}
	return data
}

// assertStatus asserts that the response HTTP status code matches the expected value
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code)
}

// assertSuccessResponse asserts that the response indicates success with HTTP 200
func assertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	if success, ok := response["success"].(bool); ok {
		assert.True(t, success)
	}
}
