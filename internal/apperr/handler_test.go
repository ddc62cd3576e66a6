package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonlab/lawtrace/internal/storage"
)

func handle(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	GlobalErrorHandler()(err, c)
	return rec
}

func TestGlobalErrorHandler_Validation(t *testing.T) {
	rec := handle(t, &ValidationError{Message: "date must be YYYY-MM-DD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "date must be YYYY-MM-DD", body["error"])
}

func TestGlobalErrorHandler_NotFound(t *testing.T) {
	rec := handle(t, storage.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGlobalErrorHandler_EchoHTTPError(t *testing.T) {
	rec := handle(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGlobalErrorHandler_Fallback(t *testing.T) {
	rec := handle(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
