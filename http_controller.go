package tasktrack

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// AuthController exposes credential issuance over JSON.
type AuthController struct {
	Debug  bool
	Logger Logger
	auther Authenticator
}

func NewAuthController(auther Authenticator, logger Logger) *AuthController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthController{
		Logger: logger,
		auther: auther,
	}
}

// LoginPayload is the login request body. It is deliberately not validated
// beyond parsing: a blank or malformed email must read the same as a wrong
// password.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string        `json:"token"`
	User  PublicProfile `json:"user"`
}

// Register handles POST /api/auth/register.
func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := RegisterUserMessage{}

	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return RespondError(c, NewValidationError([]string{"Request body is invalid"}))
	}

	token, identity, err := a.auther.Register(c.UserContext(), payload)
	if err != nil {
		a.Logger.Debug("register failed", "error", err)
		return RespondError(c, err)
	}

	res := sessionResponse{
		Token: token,
		User:  PublicProfile{ID: identity.ID(), Email: identity.Email()},
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(res))
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := LoginPayload{}

	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return RespondError(c, ErrInvalidCredentials)
	}

	token, identity, err := a.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Debug("login failed", "error", err)
		return RespondError(c, err)
	}

	return c.JSON(sessionResponse{
		Token: token,
		User:  PublicProfile{ID: identity.ID(), Email: identity.Email()},
	})
}

// Me handles GET /api/auth/me for the bound identity.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	return c.JSON(fiber.Map{"user": user.Profile()})
}
