package tasktrack_test

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"

	"github.com/chun-mura/tasktrack"
)

// TestIdentity implements tasktrack.Identity
type TestIdentity struct {
	id    string
	email string
}

func (t TestIdentity) ID() string    { return t.id }
func (t TestIdentity) Email() string { return t.email }

// recordLogger implements tasktrack.Logger and keeps what it was told.
type recordLogger struct {
	errors []string
}

func (r *recordLogger) Debug(msg string, args ...any) {}
func (r *recordLogger) Info(msg string, args ...any)  {}
func (r *recordLogger) Error(msg string, args ...any) {
	r.errors = append(r.errors, msg)
}

// MockIdentityProvider implements tasktrack.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (tasktrack.Identity, error) {
	args := m.Called(ctx, email, password)
	if identity := args.Get(0); identity != nil {
		return identity.(tasktrack.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id string) (tasktrack.Identity, error) {
	args := m.Called(ctx, id)
	if identity := args.Get(0); identity != nil {
		return identity.(tasktrack.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserTracker implements tasktrack.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByEmail(ctx context.Context, email string) (*tasktrack.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*tasktrack.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*tasktrack.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*tasktrack.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *tasktrack.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *tasktrack.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
