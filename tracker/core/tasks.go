package core

import (
	"context"
	"strings"
)

// Tasks is the ownership-scoped task repository.
type Tasks struct {
	db TaskDB
}

func NewTasks(db TaskDB) *Tasks {
	return &Tasks{db: db}
}

func (s *Tasks) List(ctx context.Context, userID int64) ([]Task, error) {
	if userID <= 0 {
		return nil, ErrInvalidArgs
	}
	return s.db.ListTasks(ctx, userID)
}

func (s *Tasks) Create(ctx context.Context, userID int64, name string) (Task, error) {
	name = strings.TrimSpace(name)
	if userID <= 0 || name == "" {
		return Task{}, ErrInvalidArgs
	}
	return s.db.CreateTask(ctx, userID, name)
}

// Update changes only the fields set in p. Tasks owned by someone else are
// reported exactly like missing ones.
func (s *Tasks) Update(ctx context.Context, taskID, userID int64, p TaskPatch) (Task, error) {
	if userID <= 0 {
		return Task{}, ErrInvalidArgs
	}
	if taskID <= 0 {
		return Task{}, ErrTaskNotFound
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return Task{}, ErrInvalidArgs
		}
		p.Name = &name
	}

	return s.db.UpdateTask(ctx, taskID, userID, p)
}

func (s *Tasks) Delete(ctx context.Context, taskID, userID int64) error {
	if userID <= 0 {
		return ErrInvalidArgs
	}
	if taskID <= 0 {
		return ErrTaskNotFound
	}
	return s.db.DeleteTask(ctx, taskID, userID)
}
