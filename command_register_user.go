package tasktrack

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// RegisterUserMessage carries a registration request. The confirmation
// field is compared byte for byte against the password.
type RegisterUserMessage struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	// UseHashid derives a deterministic id from the email. Used by the
	// seeder so demo fixtures keep stable ids across runs.
	UseHashid  bool          `json:"-"`
	OnResponse func(u *User) `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate enumerates every input defect so the client can correct the
// whole form in one pass.
func (e RegisterUserMessage) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Email,
			validation.Required.Error("can't be blank"),
			is.Email.Error("is invalid"),
		),
		validation.Field(&e.Password,
			validation.Required.Error("can't be blank"),
			validation.Length(6, 100).Error("is too short (minimum is 6 characters)"),
		),
		validation.Field(&e.PasswordConfirmation,
			validation.By(ValidateStringEquals(e.Password, "doesn't match Password")),
		),
	)

	if err == nil {
		return nil
	}

	return NewValidationError(registrationReasons(err))
}

// ValidateStringEquals will check that both values match.
func ValidateStringEquals(str, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New(message)
		}
		return nil
	}
}

// registrationReasons flattens ozzo field errors into Rails-style reasons
// with a stable field order.
func registrationReasons(err error) []string {
	var fieldErrors validation.Errors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	labels := []struct {
		key   string
		label string
	}{
		{"email", "Email"},
		{"password", "Password"},
		{"password_confirmation", "Password confirmation"},
	}

	var reasons []string
	for _, l := range labels {
		if ferr, ok := fieldErrors[l.key]; ok && ferr != nil {
			reasons = append(reasons, l.label+" "+ferr.Error())
		}
	}

	return reasons
}

// RegisterUserHandler creates the principal inside a transaction.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	if err := event.Validate(); err != nil {
		return err
	}

	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Users().GetByEmailTx(ctx, tx, event.Email); err == nil {
			return emailTakenError()
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email uniqueness")
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.Email = event.Email
		user.PasswordHash = hash
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			// The unique index is the real arbiter; a concurrent duplicate
			// that slips past the pre-check lands here.
			if isUniqueViolation(err) {
				return emailTakenError()
			}
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(user)
	}

	return nil
}

func emailTakenError() error {
	return NewValidationError([]string{"Email has already been taken"})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
