package tasktrack

import (
	"github.com/gofiber/fiber/v2"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// TodosController is the task CRUD collaborator. It never touches the
// store without the authenticated owner's id.
type TodosController struct {
	Logger Logger
	todos  Todos
}

func NewTodosController(todos Todos, logger Logger) *TodosController {
	if logger == nil {
		logger = defLogger{}
	}
	return &TodosController{
		Logger: logger,
		todos:  todos,
	}
}

// TodoPayload is the create/update body. Pointer fields distinguish
// "absent" from zero values so updates can be partial.
type TodoPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Index handles GET /api/todos, newest first.
func (t *TodosController) Index(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	records, err := t.todos.ListByOwner(c.UserContext(), user.ID)
	if err != nil {
		t.Logger.Error("todos list", "error", err)
		return RespondError(c, err)
	}

	if records == nil {
		records = []*Todo{}
	}

	return c.JSON(fiber.Map{"todos": records})
}

// Create handles POST /api/todos.
func (t *TodosController) Create(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	payload := TodoPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return RespondError(c, NewValidationError([]string{"Request body is invalid"}))
	}

	if payload.Title == nil || *payload.Title == "" {
		return RespondError(c, NewValidationError([]string{"Title can't be blank"}))
	}

	record := &Todo{Title: *payload.Title}
	if payload.Description != nil {
		record.Description = *payload.Description
	}
	if payload.Completed != nil {
		record.Completed = *payload.Completed
	}

	record, err := t.todos.CreateOwned(c.UserContext(), user.ID, record)
	if err != nil {
		t.Logger.Error("todo create", "error", err)
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"todo": record})
}

// Show handles GET /api/todos/:id.
func (t *TodosController) Show(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	id, err := parseResourceID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}

	record, err := t.todos.GetOwned(c.UserContext(), user.ID, id)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(record)
}

// Update handles PUT /api/todos/:id. Absent fields keep their stored
// values.
func (t *TodosController) Update(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	id, err := parseResourceID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}

	payload := TodoPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return RespondError(c, NewValidationError([]string{"Request body is invalid"}))
	}

	if payload.Title != nil && *payload.Title == "" {
		return RespondError(c, NewValidationError([]string{"Title can't be blank"}))
	}

	record, err := t.todos.GetOwned(c.UserContext(), user.ID, id)
	if err != nil {
		return RespondError(c, err)
	}

	if payload.Title != nil {
		record.Title = *payload.Title
	}
	if payload.Description != nil {
		record.Description = *payload.Description
	}
	if payload.Completed != nil {
		record.Completed = *payload.Completed
	}

	record, err = t.todos.UpdateOwned(c.UserContext(), user.ID, record)
	if err != nil {
		t.Logger.Error("todo update", "error", err)
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"todo": record})
}

// Destroy handles DELETE /api/todos/:id.
func (t *TodosController) Destroy(c *fiber.Ctx) error {
	user, ok := FromContext(c.UserContext())
	if !ok {
		return RespondError(c, ErrTokenMissing)
	}

	id, err := parseResourceID(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}

	if err := t.todos.DeleteOwned(c.UserContext(), user.ID, id); err != nil {
		return RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parseResourceID maps a non-id path segment to the same not-found a
// missing record produces, so probing with junk ids reveals nothing.
func parseResourceID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, repository.NewRecordNotFound()
	}
	return id, nil
}
