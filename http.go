package tasktrack

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"

	"github.com/chun-mura/tasktrack/middleware/bearerauth"
)

// External failure messages. These are the complete set of strings an
// unauthenticated or unauthorized caller can observe.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgTokenMissing       = bearerauth.MissingMessage
	MsgTokenInvalid       = bearerauth.InvalidMessage
	MsgNotFound           = "Not found"
)

// RespondError is the single mapping point from internal failure kinds to
// external responses. Token sub-kinds and cross-owner access collapse here;
// nothing below this function decides what a client gets to see.
func RespondError(c *fiber.Ctx, err error) error {
	if reasons, ok := ValidationReasons(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": reasons})
	}

	if repository.IsRecordNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": MsgNotFound})
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	switch {
	case richErr.TextCode == TextCodeTokenMissing:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": MsgTokenMissing})
	case IsTokenInvalid(richErr):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": MsgTokenInvalid})
	case richErr.Category == errors.CategoryAuth:
		// invalid credentials and the login cool-down read the same
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": MsgInvalidCredentials})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

// HealthCheck is the only unauthenticated endpoint besides issuance.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ProtectedRoute builds the request authenticator: extract bearer token,
// validate, resolve the subject against the store, bind the principal into
// the request context.
func ProtectedRoute(tokens TokenService, auther Authenticator, cfg Config) fiber.Handler {
	return bearerauth.New(bearerauth.Config{
		AuthScheme: cfg.GetAuthScheme(),
		ContextKey: cfg.GetContextKey(),
		Validator:  validatorAdapter{tokens},
		Resolver: func(ctx context.Context, claims bearerauth.AuthClaims) (any, error) {
			identity, err := auther.IdentityFromClaims(ctx, claims)
			if err != nil {
				return nil, err
			}
			ui, ok := identity.(userIdentity)
			if !ok {
				return nil, ErrSubjectGone
			}
			return ui.user, nil
		},
		Enricher: func(ctx context.Context, claims bearerauth.AuthClaims, principal any) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				ctx = WithClaimsContext(ctx, ac)
			}
			if user, ok := principal.(*User); ok {
				ctx = WithContext(ctx, user)
			}
			return ctx
		},
	})
}

// validatorAdapter bridges TokenService to the middleware's mirrored
// interface.
type validatorAdapter struct {
	ts TokenService
}

func (v validatorAdapter) Validate(tokenString string) (bearerauth.AuthClaims, error) {
	claims, err := v.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RegisterRoutes wires the full HTTP surface: issuance, health, and the
// protected task CRUD.
func RegisterRoutes(app *fiber.App, auther *Auther, repo RepositoryManager, cfg Config, logger Logger) {
	authController := NewAuthController(auther, logger)
	todosController := NewTodosController(repo.Todos(), logger)

	app.Get("/health", HealthCheck)

	api := app.Group("/api")

	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	protected := ProtectedRoute(auther.TokenService(), auther, cfg)

	api.Get("/auth/me", protected, authController.Me)

	api.Get("/todos", protected, todosController.Index)
	api.Post("/todos", protected, todosController.Create)
	api.Get("/todos/:id", protected, todosController.Show)
	api.Put("/todos/:id", protected, todosController.Update)
	api.Delete("/todos/:id", protected, todosController.Destroy)
}
