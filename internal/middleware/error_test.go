// File: internal/middleware/error_test.go
package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"estatehub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newErrorHandlerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(ErrorHandler(zap.NewNop()))
	return router
}

// decodeSingleJSON fails if the body holds anything besides one JSON object,
// which catches a second envelope being appended after a handler already
// responded.
func decodeSingleJSON(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	decoder := json.NewDecoder(body)
	var payload map[string]interface{}
	require.NoError(t, decoder.Decode(&payload))
	require.ErrorIs(t, decoder.Decode(&map[string]interface{}{}), io.EOF)
	return payload
}

func TestErrorHandlerLeavesHandlerResponsesAlone(t *testing.T) {
	router := newErrorHandlerRouter()
	router.GET("/things/:id", func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("Thing not found."))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/123", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeSingleJSON(t, w.Body)
	assert.Equal(t, "NOT_FOUND", payload["code"])
	assert.Equal(t, "Thing not found.", payload["details"])
}

func TestErrorHandlerEnvelopesUnmatchedRoutes(t *testing.T) {
	router := newErrorHandlerRouter()
	router.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeSingleJSON(t, w.Body)
	assert.Equal(t, "NOT_FOUND", payload["code"])
	assert.Equal(t, "The requested endpoint does not exist.", payload["details"])
}

func TestErrorHandlerEnvelopesMethodNotAllowed(t *testing.T) {
	router := newErrorHandlerRouter()
	router.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/things", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	payload := decodeSingleJSON(t, w.Body)
	assert.Equal(t, "METHOD_NOT_ALLOWED", payload["code"])
}

func TestErrorHandlerMasksUnexpectedErrors(t *testing.T) {
	router := newErrorHandlerRouter()
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("connection reset by peer"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	payload := decodeSingleJSON(t, w.Body)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", payload["code"])
	assert.NotContains(t, payload["details"], "connection reset")
}

func TestErrorHandlerPassesAPIErrorsThrough(t *testing.T) {
	router := newErrorHandlerRouter()
	router.GET("/forbidden", func(c *gin.Context) {
		_ = c.Error(common.ErrForbidden.WithDetails("Admins only."))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	payload := decodeSingleJSON(t, w.Body)
	assert.Equal(t, "FORBIDDEN", payload["code"])
	assert.Equal(t, "Admins only.", payload["details"])
}
