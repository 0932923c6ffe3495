// Package bearerauth gates requests behind a bearer token. It extracts the
// credential from the authorization header, validates it, resolves the
// subject to a live principal, and binds the result into the request
// context. Interfaces mirror the root package to avoid an import cycle.
package bearerauth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// MissingMessage and InvalidMessage are the only two authentication
// failure bodies a client can observe. Which internal sub-case produced the
// invalid outcome is deliberately not recoverable from the response.
const (
	MissingMessage = "Token is missing"
	InvalidMessage = "Invalid token"
)

// ErrTokenMissing is returned when the request carries no authorization
// header at all.
var ErrTokenMissing = errors.New("authorization header is missing", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when the header is present but does not
// have the "<scheme> <token>" shape.
var ErrTokenMalformed = errors.New("authorization header is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// AuthClaims mirrors the root package claim accessors.
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
}

// TokenValidator validates a raw token string into claims.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// IdentityResolver maps a verified assertion to a live principal. Returning
// an error rejects the request; a deleted subject must not pass.
type IdentityResolver func(ctx context.Context, claims AuthClaims) (any, error)

// ContextEnricher propagates the bound identity into the request context.
type ContextEnricher func(ctx context.Context, claims AuthClaims, principal any) context.Context

type Config struct {
	// Filter skips authentication when it returns true.
	Filter func(*fiber.Ctx) bool
	// Validator is required.
	Validator TokenValidator
	// Resolver is optional; when set, its failure rejects the request.
	Resolver IdentityResolver
	// Enricher is optional.
	Enricher ContextEnricher
	// MissingHandler responds when no header is present.
	MissingHandler fiber.Handler
	// ErrorHandler responds to every other failure.
	ErrorHandler func(*fiber.Ctx, error) error
	// AuthScheme defaults to "Bearer".
	AuthScheme string
	// ContextKey is the locals key for the claims. Defaults to "user".
	ContextKey string
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}
	if cfg.MissingHandler == nil {
		cfg.MissingHandler = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": MissingMessage})
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": InvalidMessage})
		}
	}

	return cfg
}

// New returns the authentication middleware. Per request the flow is
// extract, verify, resolve, bind; a failure at any stage ends the request
// before any handler logic runs.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	if cfg.Validator == nil {
		panic("bearerauth: Config.Validator is required")
	}

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, cfg.AuthScheme)
		if err != nil {
			if errors.Is(err, ErrTokenMissing) {
				return cfg.MissingHandler(c)
			}
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		var principal any
		if cfg.Resolver != nil {
			principal, err = cfg.Resolver(c.UserContext(), claims)
			if err != nil {
				return cfg.ErrorHandler(c, err)
			}
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.Enricher != nil {
			c.SetUserContext(cfg.Enricher(c.UserContext(), claims, principal))
		}

		return c.Next()
	}
}

// ExtractRawToken pulls the token out of the authorization header. The
// expected shape is the scheme name, one space, and the token.
func ExtractRawToken(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrTokenMissing
	}

	prefix := authScheme + " "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", ErrTokenMalformed
	}

	token := header[len(prefix):]
	if token == "" {
		return "", ErrTokenMalformed
	}

	return token, nil
}
