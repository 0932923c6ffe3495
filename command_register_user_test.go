package tasktrack_test

import (
	"context"
	"testing"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chun-mura/tasktrack"
)

func TestRegisterUserMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     tasktrack.RegisterUserMessage
		reasons []string
	}{
		{
			name: "valid",
			msg: tasktrack.RegisterUserMessage{
				Email:                "user@example.com",
				Password:             "password123",
				PasswordConfirmation: "password123",
			},
		},
		{
			name: "blank email",
			msg: tasktrack.RegisterUserMessage{
				Password:             "password123",
				PasswordConfirmation: "password123",
			},
			reasons: []string{"Email can't be blank"},
		},
		{
			name: "malformed email",
			msg: tasktrack.RegisterUserMessage{
				Email:                "not-an-email",
				Password:             "password123",
				PasswordConfirmation: "password123",
			},
			reasons: []string{"Email is invalid"},
		},
		{
			name: "short password",
			msg: tasktrack.RegisterUserMessage{
				Email:                "user@example.com",
				Password:             "short",
				PasswordConfirmation: "short",
			},
			reasons: []string{"Password is too short (minimum is 6 characters)"},
		},
		{
			name: "confirmation mismatch",
			msg: tasktrack.RegisterUserMessage{
				Email:                "user@example.com",
				Password:             "password123",
				PasswordConfirmation: "different123",
			},
			reasons: []string{"Password confirmation doesn't match Password"},
		},
		{
			name: "everything blank",
			msg:  tasktrack.RegisterUserMessage{},
			reasons: []string{
				"Email can't be blank",
				"Password can't be blank",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.reasons == nil {
				require.NoError(t, err)
				return
			}

			reasons, ok := tasktrack.ValidationReasons(err)
			require.True(t, ok)
			assert.Equal(t, tc.reasons, reasons)
		})
	}
}

func TestRegisterUserHandler_Execute(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestDB(t)

	handler := tasktrack.NewRegisterUserHandler(repo)

	t.Run("creates the user", func(t *testing.T) {
		var created *tasktrack.User
		err := handler.Execute(ctx, tasktrack.RegisterUserMessage{
			Email:                "user@example.com",
			Password:             "password123",
			PasswordConfirmation: "password123",
			OnResponse:           func(u *tasktrack.User) { created = u },
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "user@example.com", created.Email)
		assert.NotEmpty(t, created.ID)
		assert.NotEqual(t, "password123", created.PasswordHash)

		stored, err := repo.Users().GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.NoError(t, tasktrack.ComparePasswordAndHash("password123", stored.PasswordHash))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		err := handler.Execute(ctx, tasktrack.RegisterUserMessage{
			Email:                "user@example.com",
			Password:             "password456",
			PasswordConfirmation: "password456",
		})
		require.Error(t, err)

		reasons, ok := tasktrack.ValidationReasons(err)
		require.True(t, ok)
		assert.Equal(t, []string{"Email has already been taken"}, reasons)
	})

	t.Run("derives a stable id with hashid", func(t *testing.T) {
		var created *tasktrack.User
		err := handler.Execute(ctx, tasktrack.RegisterUserMessage{
			Email:                "stable@example.com",
			Password:             "password123",
			PasswordConfirmation: "password123",
			UseHashid:            true,
			OnResponse:           func(u *tasktrack.User) { created = u },
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		expected, err := hashid.NewUUID("stable@example.com")
		require.NoError(t, err)
		assert.Equal(t, expected, created.ID)
	})

	t.Run("does not persist on validation failure", func(t *testing.T) {
		err := handler.Execute(ctx, tasktrack.RegisterUserMessage{
			Email:                "broken@example.com",
			Password:             "short",
			PasswordConfirmation: "short",
		})
		require.Error(t, err)

		_, err = repo.Users().GetByEmail(ctx, "broken@example.com")
		require.Error(t, err)
	})
}
