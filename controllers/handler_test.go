package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"laundrypro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name     string
		err      error
		notFound string
		wantCode int
		wantBody string
	}{
		{"lookup miss", services.ErrNotFound, "Customer not found", http.StatusNotFound, "Customer not found"},
		{"miss without lookup text", services.ErrNotFound, "", http.StatusNotFound, "Not found"},
		{"duplicate phone", fmt.Errorf("%w: 555-0001", services.ErrDuplicatePhone), "", http.StatusConflict, "Customer with this phone number already exists"},
		{"missing reference", services.ErrReference, "", http.StatusBadRequest, "Referenced customer or ring slot does not exist"},
		{"storage", errors.New("disk full"), "", http.StatusInternalServerError, "Database error"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: zaptest.NewLogger(t)}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.respondServiceError(c, tt.err, tt.notFound)

			assert.Equal(t, tt.wantCode, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["error"])
		})
	}
}
