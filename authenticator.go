package tasktrack

import (
	"context"
)

// Auther orchestrates registration and login. It is stateless: the only
// process-wide inputs are the immutable signing key and the store.
type Auther struct {
	provider     IdentityProvider
	repo         RepositoryManager
	logger       Logger
	tokenService TokenService
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(provider IdentityProvider, repo RepositoryManager, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		repo:         repo,
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	if ts, ok := s.tokenService.(*TokenServiceImpl); ok {
		ts.WithLogger(logger)
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator.
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies credentials and mints a token. Every failure a caller can
// trigger maps to the same generic invalid-credentials error.
func (s *Auther) Login(ctx context.Context, email, password string) (string, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Debug("Login verify identity failed", "error", err)
		return "", nil, err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation failed", "error", err)
		return "", nil, err
	}

	return token, identity, nil
}

// Register creates the principal and mints a token for it, so a fresh
// account is signed in immediately.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (string, Identity, error) {
	var created *User
	msg.OnResponse = func(u *User) { created = u }

	handler := NewRegisterUserHandler(s.repo)
	if err := handler.Execute(ctx, msg); err != nil {
		return "", nil, err
	}

	identity := created.Identity()
	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Register token generation failed", "error", err)
		return "", nil, err
	}

	return token, identity, nil
}

// IdentityFromClaims resolves a verified assertion back to a live
// principal. The echoed claim attributes are never trusted for this.
func (s *Auther) IdentityFromClaims(ctx context.Context, claims AuthClaims) (Identity, error) {
	identity, err := s.provider.FindIdentityByID(ctx, claims.UserID())
	if err != nil {
		s.logger.Debug("IdentityFromClaims resolve failed", "error", err)
		return nil, err
	}

	return identity, nil
}
