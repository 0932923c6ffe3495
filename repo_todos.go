package tasktrack

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Todos is the owned-resource store. Every read and mutation carries the
// owner id as a filter; a record owned by another user yields the same
// not-found as a record that does not exist.
type Todos interface {
	repository.Repository[*Todo]

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Todo, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Todo, error)
	CreateOwned(ctx context.Context, ownerID uuid.UUID, todo *Todo) (*Todo, error)
	UpdateOwned(ctx context.Context, ownerID uuid.UUID, todo *Todo) (*Todo, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
}

type todos struct {
	repository.Repository[*Todo]
	db *bun.DB
}

var _ Todos = (*todos)(nil)

func NewTodosRepository(db *bun.DB) Todos {
	repo := repository.NewRepository[*Todo](db, repository.ModelHandlers[*Todo]{
		NewRecord: func() *Todo { return &Todo{} },
		GetID: func(t *Todo) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Todo, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &todos{
		Repository: repo,
		db:         db,
	}
}

func (a *todos) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Todo, error) {
	var records []*Todo
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *todos) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Todo, error) {
	record := &Todo{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, notFoundTodo(ownerID, id)
		}
		return nil, err
	}

	return record, nil
}

func (a *todos) CreateOwned(ctx context.Context, ownerID uuid.UUID, todo *Todo) (*Todo, error) {
	prepareTodoDefaults(todo)
	todo.UserID = ownerID

	_, err := a.db.NewInsert().
		Model(todo).
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	return a.GetOwned(ctx, ownerID, todo.ID)
}

// UpdateOwned writes title, description, and completed through the scoped
// lookup. Column list is explicit so completed can be set back to false.
func (a *todos) UpdateOwned(ctx context.Context, ownerID uuid.UUID, todo *Todo) (*Todo, error) {
	now := time.Now()
	todo.UpdatedAt = &now

	res, err := a.db.NewUpdate().
		Model(todo).
		Column("title", "description", "completed", "updated_at").
		Where("?TableAlias.id = ?", todo.ID).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, notFoundTodo(ownerID, todo.ID)
	}

	return a.GetOwned(ctx, ownerID, todo.ID)
}

func (a *todos) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*Todo)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return notFoundTodo(ownerID, id)
	}

	return nil
}

// prepareTodoDefaults assigns the id and timestamps in application code so
// created_at carries sub-second precision for the newest-first ordering.
func prepareTodoDefaults(record *Todo) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	if record.CreatedAt == nil {
		record.CreatedAt = &now
	}
	if record.UpdatedAt == nil {
		record.UpdatedAt = &now
	}
}

func notFoundTodo(ownerID, id uuid.UUID) error {
	return repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"id":    id.String(),
			"owner": ownerID.String(),
		})
}
