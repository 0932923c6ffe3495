package tasktrack

import "github.com/goliatone/go-errors"

// DefaultTokenExpiration is the validity window, in hours, applied when the
// configuration does not set one.
const DefaultTokenExpiration = 24

// AuthConfig is a plain-value Config implementation. The signing key has no
// fallback default: Validate fails when it is unset and the server refuses
// to start.
type AuthConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	AuthScheme      string
	ContextKey      string
}

var _ Config = (*AuthConfig)(nil)

func (c *AuthConfig) GetSigningKey() string { return c.SigningKey }

func (c *AuthConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}

func (c *AuthConfig) GetIssuer() string { return c.Issuer }

func (c *AuthConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c *AuthConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

// Validate enforces the fail-fast contract on the signing secret.
func (c *AuthConfig) Validate() error {
	if c.SigningKey == "" {
		return errors.New("signing key is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return nil
}
