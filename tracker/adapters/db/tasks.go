package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"task-tracker/tracker/core"
)

func (db *DB) ListTasks(ctx context.Context, userID int64) ([]core.Task, error) {
	const q = `SELECT id, name, completed, user_id FROM tasks WHERE user_id = ? ORDER BY id`

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, db.conn.Rebind(q), userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) CreateTask(ctx context.Context, userID int64, name string) (core.Task, error) {
	const q = `INSERT INTO tasks(name, completed, user_id) VALUES (?, ?, ?)`

	id, err := db.insertID(ctx, q, name, false, userID)
	if err != nil {
		if v, _ := classify(err); v == foreignKeyViolation {
			return core.Task{}, core.ErrUserNotFound
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return core.Task{ID: id, Name: name, UserID: userID}, nil
}

func (db *DB) UpdateTask(ctx context.Context, taskID, userID int64, p core.TaskPatch) (out core.Task, err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin update task: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	q := `SELECT id, name, completed, user_id FROM tasks WHERE id = ? AND user_id = ?` + db.forUpdate()

	var t core.Task
	if err := tx.GetContext(ctx, &t, tx.Rebind(q), taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}

	if !p.Empty() {
		if p.Name != nil {
			t.Name = *p.Name
		}
		if p.Completed != nil {
			t.Completed = *p.Completed
		}

		const upd = `UPDATE tasks SET name = ?, completed = ? WHERE id = ? AND user_id = ?`
		if _, err := tx.ExecContext(ctx, tx.Rebind(upd), t.Name, t.Completed, taskID, userID); err != nil {
			return core.Task{}, fmt.Errorf("update task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit update task: %w", err)
	}
	return t, nil
}

func (db *DB) DeleteTask(ctx context.Context, taskID, userID int64) error {
	const q = `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	res, err := db.conn.ExecContext(ctx, db.conn.Rebind(q), taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}
