package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siherrmann/sheetReconciler/model"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMiddleware(t *testing.T) {
	m := NewMiddleware()
	assert.Len(t, m.csrfKey, 32)
	assert.Equal(t, []string{"localhost:5000", "127.0.0.1:5000"}, m.trustedOrigins)

	m = NewMiddleware("example.com:8080")
	assert.Equal(t, []string{"example.com:8080"}, m.trustedOrigins)
}

func TestRequestContextMiddleware(t *testing.T) {
	m := NewMiddleware()
	e := echo.New()

	t.Run("Sets request context with generated request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var rc model.RequestContext
		err := m.RequestContextMiddleware(func(c *echo.Context) error {
			rc = model.GetRequestContext(c)
			return nil
		})(c)
		require.NoError(t, err)

		assert.Equal(t, "/api/logs", rc.Url)
		assert.True(t, rc.HxRequest)
		assert.NotEmpty(t, rc.RequestID)
		assert.Equal(t, rc.RequestID, rec.Header().Get(HeaderRequestID))
	})

	t.Run("Keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var rc model.RequestContext
		err := m.RequestContextMiddleware(func(c *echo.Context) error {
			rc = model.GetRequestContext(c.Request().Context())
			return nil
		})(c)
		require.NoError(t, err)

		assert.Equal(t, "abc-123", rc.RequestID)
		assert.Equal(t, "abc-123", model.RequestIDFromContext(c.Request().Context()))
		assert.False(t, rc.HxRequest)
	})
}

func TestCsrfMiddleware(t *testing.T) {
	m := NewMiddleware()
	e := echo.New()

	t.Run("Rejects post without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		err := m.CsrfMiddleware()(func(c *echo.Context) error {
			called = true
			return nil
		})(c)
		require.NoError(t, err)

		assert.False(t, called)
		assert.Contains(t, rec.Body.String(), "Invalid CSRF token")
	})

	t.Run("Allows get requests and issues the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		err := m.CsrfMiddleware()(func(c *echo.Context) error {
			called = true
			return nil
		})(c)
		require.NoError(t, err)

		assert.True(t, called)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), CsrfCookieName+"=")
	})

	t.Run("Rejects api post without token as json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/logs", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := m.CsrfMiddleware()(func(c *echo.Context) error {
			return nil
		})(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})
}
