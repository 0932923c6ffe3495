package tasktrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chun-mura/tasktrack"
)

func TestAuthConfig_Validate(t *testing.T) {
	cfg := &tasktrack.AuthConfig{}
	require.Error(t, cfg.Validate())

	cfg.SigningKey = "secret"
	require.NoError(t, cfg.Validate())
}

func TestAuthConfig_Defaults(t *testing.T) {
	cfg := &tasktrack.AuthConfig{SigningKey: "secret"}

	assert.Equal(t, tasktrack.DefaultTokenExpiration, cfg.GetTokenExpiration())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Equal(t, "user", cfg.GetContextKey())

	cfg.TokenExpiration = 48
	cfg.AuthScheme = "Token"
	assert.Equal(t, 48, cfg.GetTokenExpiration())
	assert.Equal(t, "Token", cfg.GetAuthScheme())
}
