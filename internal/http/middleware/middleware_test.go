package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pimapi/internal/auth"
	authMocks "pimapi/internal/auth/mocks"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("generates a request id when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("preserves an existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerTo(&buf))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestRequireAuth(t *testing.T) {
	newApp := func(tokens auth.TokenIssuer) *fiber.App {
		app := fiber.New()
		app.Use(RequireAuth(tokens))
		app.Get("/test", func(c *fiber.Ctx) error {
			claims := ClaimsFromCtx(c)
			return c.SendString(claims.UserID)
		})
		return app
	}

	t.Run("missing header is rejected", func(t *testing.T) {
		mTokens := new(authMocks.MockTokenIssuer)
		app := newApp(mTokens)

		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		mTokens := new(authMocks.MockTokenIssuer)
		mTokens.On("ValidateAccessToken", "garbage").Return(nil, auth.ErrInvalidToken)
		app := newApp(mTokens)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		mTokens := new(authMocks.MockTokenIssuer)
		mTokens.On("ValidateAccessToken", "good").
			Return(&auth.Claims{UserID: "user-1", Role: "admin"}, nil)
		app := newApp(mTokens)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good")
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "user-1", buf.String())
	})
}

func TestRequireRole(t *testing.T) {
	newApp := func(claims *auth.Claims) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			if claims != nil {
				c.Locals(ClaimsLocalKey, claims)
			}
			return c.Next()
		})
		app.Use(RequireRole("admin"))
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("matching role passes", func(t *testing.T) {
		app := newApp(&auth.Claims{UserID: "u", Role: "admin"})
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		app := newApp(&auth.Claims{UserID: "u", Role: "staff"})
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("no claims is unauthorized", func(t *testing.T) {
		app := newApp(nil)
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
