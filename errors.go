package tasktrack

import "github.com/goliatone/go-errors"

// Text codes identify failure kinds internally. They are never written to a
// response body; RespondError maps them to the generic external messages.
const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeTokenMissing       = "auth_token_missing"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeTokenSignature     = "auth_token_signature"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeSubjectGone        = "auth_subject_gone"
	TextCodeLoginLocked        = "auth_login_locked"
	TextCodeValidation         = "validation_failed"
)

// ErrInvalidCredentials is returned for unknown email and wrong password
// alike, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissing is returned when a request carries no authorization header.
var ErrTokenMissing = errors.New("authorization header is missing", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when the token cannot be parsed.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignature is returned when the MAC does not verify or the token
// declares an unexpected signing algorithm.
var ErrTokenSignature = errors.New("token signature mismatch", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the token is past its expiry instant.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrSubjectGone is returned when a valid token references a principal that
// no longer exists.
var ErrSubjectGone = errors.New("token subject not found", errors.CategoryAuth).
	WithTextCode(TextCodeSubjectGone).
	WithCode(errors.CodeUnauthorized)

// ErrLoginLocked is returned when an account is cooling down after too many
// failed attempts. Externally it is indistinguishable from bad credentials.
var ErrLoginLocked = errors.New("too many login attempts", errors.CategoryAuth).
	WithTextCode(TextCodeLoginLocked).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// NewValidationError wraps a list of human-readable reasons. Reasons are
// surfaced verbatim in the 422 body to aid form correction.
func NewValidationError(reasons []string) *errors.Error {
	return errors.New("validation failed", errors.CategoryValidation).
		WithTextCode(TextCodeValidation).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"reasons": reasons})
}

// ValidationReasons extracts the reason list from a validation error. The
// second return is false when err is not a validation failure.
func ValidationReasons(err error) ([]string, bool) {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return nil, false
	}
	if richErr.TextCode != TextCodeValidation {
		return nil, false
	}
	if reasons, ok := richErr.Metadata["reasons"].([]string); ok {
		return reasons, true
	}
	return nil, true
}

// IsTokenInvalid reports whether err is one of the token failure kinds that
// collapse to the generic invalid-token response.
func IsTokenInvalid(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	switch richErr.TextCode {
	case TextCodeTokenMalformed, TextCodeTokenSignature, TextCodeTokenExpired, TextCodeSubjectGone:
		return true
	}
	return false
}
