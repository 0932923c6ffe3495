package tasktrack

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// SeedEmail and SeedPassword are the credentials created by Seed.
const (
	SeedEmail    = "test@example.com"
	SeedPassword = "password123"
)

// Seed ensures a demo account exists and resets its todo list to a known
// set of fixtures. Safe to run repeatedly.
func Seed(ctx context.Context, repo RepositoryManager, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	return repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := repo.Users().GetByEmailTx(ctx, tx, SeedEmail)
		if err != nil {
			if !repository.IsRecordNotFound(err) {
				return err
			}

			hash, err := HashPassword(SeedPassword)
			if err != nil {
				return err
			}

			id, err := hashid.NewUUID(SeedEmail)
			if err != nil {
				return err
			}

			user = &User{
				ID:           id,
				Email:        SeedEmail,
				PasswordHash: hash,
			}
			if user, err = repo.Users().RegisterTx(ctx, tx, user); err != nil {
				return err
			}
			logger.Info("seed: created demo user", "email", user.Email, "id", user.ID)
		}

		if _, err := tx.NewDelete().
			Model((*Todo)(nil)).
			Where("?TableAlias.user_id = ?", user.ID).
			Exec(ctx); err != nil {
			return err
		}

		fixtures := []*Todo{
			{Title: "Buy groceries", Description: "Pick up vegetables and milk", Completed: false},
			{Title: "Study React", Description: "Work through the hooks guide", Completed: true},
			{Title: "Sketch project architecture", Description: "Draft the module layout for the new project", Completed: false},
		}

		for _, todo := range fixtures {
			todo.UserID = user.ID
			prepareTodoDefaults(todo)
			if _, err := tx.NewInsert().Model(todo).Exec(ctx); err != nil {
				return err
			}
			logger.Debug("seed: created todo", "title", todo.Title)
		}

		logger.Info("seed: done", "email", SeedEmail, "todos", len(fixtures))

		return nil
	})
}
