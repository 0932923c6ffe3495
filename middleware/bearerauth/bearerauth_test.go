package bearerauth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chun-mura/tasktrack/middleware/bearerauth"
)

type stubClaims struct {
	subject string
	email   string
}

func (s stubClaims) Subject() string     { return s.subject }
func (s stubClaims) UserID() string      { return s.subject }
func (s stubClaims) Email() string       { return s.email }
func (s stubClaims) Expires() time.Time  { return time.Now().Add(time.Hour) }
func (s stubClaims) IssuedAt() time.Time { return time.Now() }

type stubValidator struct {
	claims bearerauth.AuthClaims
	err    error
	seen   string
}

func (s *stubValidator) Validate(tokenString string) (bearerauth.AuthClaims, error) {
	s.seen = tokenString
	return s.claims, s.err
}

func newApp(cfg bearerauth.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", bearerauth.New(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, header string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}

	return res, payload
}

func TestNew_MissingHeader(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "abc"}}
	app := newApp(bearerauth.Config{Validator: validator})

	res, payload := doRequest(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, bearerauth.MissingMessage, payload["error"])
	assert.Empty(t, validator.seen)
}

func TestNew_MalformedHeader(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "abc"}}
	app := newApp(bearerauth.Config{Validator: validator})

	for _, header := range []string{
		"Bearer",
		"Bearer ",
		"Basic abc123",
		"bearer abc123",
	} {
		res, payload := doRequest(t, app, header)
		require.Equal(t, fiber.StatusUnauthorized, res.StatusCode, header)
		assert.Equal(t, bearerauth.InvalidMessage, payload["error"], header)
	}
}

func TestNew_InvalidToken(t *testing.T) {
	validator := &stubValidator{err: errors.New("bad token")}
	app := newApp(bearerauth.Config{Validator: validator})

	res, payload := doRequest(t, app, "Bearer abc123")
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, bearerauth.InvalidMessage, payload["error"])
	assert.Equal(t, "abc123", validator.seen)
}

func TestNew_ValidToken(t *testing.T) {
	claims := stubClaims{subject: "abc", email: "user@example.com"}
	validator := &stubValidator{claims: claims}

	var gotLocals any
	app := fiber.New()
	app.Get("/protected", bearerauth.New(bearerauth.Config{Validator: validator}), func(c *fiber.Ctx) error {
		gotLocals = c.Locals("user")
		return c.JSON(fiber.Map{"ok": true})
	})

	res, payload := doRequest(t, app, "Bearer abc123")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, claims, gotLocals)
}

func TestNew_ResolverRejects(t *testing.T) {
	validator := &stubValidator{claims: stubClaims{subject: "abc"}}
	app := newApp(bearerauth.Config{
		Validator: validator,
		Resolver: func(ctx context.Context, claims bearerauth.AuthClaims) (any, error) {
			return nil, errors.New("subject gone")
		},
	})

	res, payload := doRequest(t, app, "Bearer abc123")
	require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, bearerauth.InvalidMessage, payload["error"])
}

func TestNew_EnricherBindsContext(t *testing.T) {
	type principalKey struct{}

	claims := stubClaims{subject: "abc"}
	validator := &stubValidator{claims: claims}

	var got any
	app := fiber.New()
	app.Get("/protected", bearerauth.New(bearerauth.Config{
		Validator: validator,
		Resolver: func(ctx context.Context, claims bearerauth.AuthClaims) (any, error) {
			return "principal-abc", nil
		},
		Enricher: func(ctx context.Context, claims bearerauth.AuthClaims, principal any) context.Context {
			return context.WithValue(ctx, principalKey{}, principal)
		},
	}), func(c *fiber.Ctx) error {
		got = c.UserContext().Value(principalKey{})
		return c.JSON(fiber.Map{"ok": true})
	})

	res, payload := doRequest(t, app, "Bearer abc123")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, "principal-abc", got)
}

func TestNew_FilterSkips(t *testing.T) {
	validator := &stubValidator{err: errors.New("should not be called")}
	app := newApp(bearerauth.Config{
		Validator: validator,
		Filter:    func(c *fiber.Ctx) bool { return true },
	})

	res, payload := doRequest(t, app, "")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, true, payload["ok"])
}

func TestExtractRawToken(t *testing.T) {
	app := fiber.New()

	var token string
	var err error
	app.Get("/", func(c *fiber.Ctx) error {
		token, err = bearerauth.ExtractRawToken(c, "Bearer")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer the-token")
	_, testErr := app.Test(req, -1)
	require.NoError(t, testErr)

	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
}

func TestNew_RequiresValidator(t *testing.T) {
	assert.Panics(t, func() {
		bearerauth.New(bearerauth.Config{})
	})
}
