package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recordResponse(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	c.Writer.WriteHeaderNow()
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestContains(t *testing.T) {
	list := []string{"Scheduled", "Completed", "Cancelled"}
	assert.True(t, Contains("Completed", list))
	assert.False(t, Contains("Pending", list))
	assert.False(t, Contains("Completed", nil))
}

func TestCallSuccessOK(t *testing.T) {
	w := recordResponse(t, func(c *gin.Context) {
		CallSuccessOK(c, APISuccessParams{Msg: "Fetched", Data: map[string]interface{}{"count": 2}})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	assert.True(t, response.Success)
	assert.Empty(t, response.Error)
	assert.Equal(t, "Fetched", response.Msg)
}

func TestCallSuccessCreated(t *testing.T) {
	w := recordResponse(t, func(c *gin.Context) {
		CallSuccessCreated(c, APISuccessParams{Msg: "Created", Data: map[string]interface{}{"id": 1}})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeEnvelope(t, w)
	assert.True(t, response.Success)
}

func TestCallSuccessNoContent(t *testing.T) {
	w := recordResponse(t, func(c *gin.Context) {
		CallSuccessNoContent(c)
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(c *gin.Context, params APIErrorParams)
		code int
	}{
		{"user error", CallUserError, http.StatusBadRequest},
		{"not found", CallErrorNotFound, http.StatusNotFound},
		{"server error", CallServerError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordResponse(t, func(c *gin.Context) {
				tc.fn(c, APIErrorParams{Msg: "Something went wrong", Err: fmt.Errorf("boom")})
			})

			assert.Equal(t, tc.code, w.Code)
			response := decodeEnvelope(t, w)
			assert.False(t, response.Success)
			assert.Equal(t, "boom", response.Error)
			assert.Equal(t, "Something went wrong", response.Msg)
		})
	}
}
