package problem

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"api error", NewNotFound("", "weg"), http.StatusNotFound, "Not Found"},
		{"wrapped api error", fmt.Errorf("context: %w", NewTooManyRequests("rustig")), http.StatusTooManyRequests, "Too Many Requests"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/v1/workflows/analyze", nil)

			status, body := ErrorHook(c, tt.err)
			assert.Equal(t, tt.status, status)
			apiErr, ok := body.(APIError)
			assert.True(t, ok)
			assert.Equal(t, tt.title, apiErr.Title)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewBadRequest("/x", "ongeldig", InvalidParam{Name: "workflow", Reason: "leeg"})
	assert.Equal(t, "ongeldig", err.Error())
	assert.Equal(t, 400, err.Status)
	assert.Len(t, err.InvalidParams, 1)
}
