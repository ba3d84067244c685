package core_test

import (
	"context"
	"errors"
	"testing"

	"task-tracker/tracker/core"
)

func newTasksWithFakeDB(t *testing.T) (*fakeDB, *core.Tasks, core.User, core.User) {
	t.Helper()

	db := newFakeDB()
	alice, err := db.CreateUser(context.Background(), "alice", "a@x.com", []byte("h"))
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	bob, err := db.CreateUser(context.Background(), "bob", "b@x.com", []byte("h"))
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	return db, core.NewTasks(db), alice, bob
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestTasksCreate_DefaultsToNotCompleted(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "  buy milk ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Name != "buy milk" {
		t.Fatalf("expected trimmed name, got %q", task.Name)
	}
	if task.Completed {
		t.Fatalf("expected new task to be not completed")
	}
	if task.UserID != alice.ID {
		t.Fatalf("expected owner %d, got %d", alice.ID, task.UserID)
	}
}

func TestTasksCreate_EmptyName(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	_, err := svc.Create(context.Background(), alice.ID, "   ")
	if !errors.Is(err, core.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs, got %v", err)
	}
}

func TestTasksList_OnlyOwnTasks(t *testing.T) {
	t.Parallel()

	_, svc, alice, bob := newTasksWithFakeDB(t)

	for _, name := range []string{"one", "two"} {
		if _, err := svc.Create(context.Background(), alice.ID, name); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), bob.ID, "bob's"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	tasks, err := svc.List(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "one" || tasks[1].Name != "two" {
		t.Fatalf("expected insertion order, got %+v", tasks)
	}
}

func TestTasksUpdate_PartialPatch(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "old name")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(context.Background(), task.ID, alice.ID, core.TaskPatch{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("expected completed=true")
	}
	if updated.Name != "old name" {
		t.Fatalf("expected name to stay %q, got %q", "old name", updated.Name)
	}

	updated, err = svc.Update(context.Background(), task.ID, alice.ID, core.TaskPatch{Name: strPtr("new name")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "new name" || !updated.Completed {
		t.Fatalf("unexpected task after name update: %+v", updated)
	}
}

func TestTasksUpdate_EmptyPatchLeavesTaskUnchanged(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "task")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(context.Background(), task.ID, alice.ID, core.TaskPatch{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated != task {
		t.Fatalf("expected %+v, got %+v", task, updated)
	}
}

func TestTasksUpdate_BlankName(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "task")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = svc.Update(context.Background(), task.ID, alice.ID, core.TaskPatch{Name: strPtr(" ")})
	if !errors.Is(err, core.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs, got %v", err)
	}
}

func TestTasksForeignTaskLooksMissing(t *testing.T) {
	t.Parallel()

	_, svc, alice, bob := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "secret")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, foreignUpdate := svc.Update(context.Background(), task.ID, bob.ID, core.TaskPatch{Completed: boolPtr(true)})
	_, missingUpdate := svc.Update(context.Background(), 999, bob.ID, core.TaskPatch{Completed: boolPtr(true)})
	foreignDelete := svc.Delete(context.Background(), task.ID, bob.ID)
	missingDelete := svc.Delete(context.Background(), 999, bob.ID)

	for name, err := range map[string]error{
		"foreign update": foreignUpdate,
		"missing update": missingUpdate,
		"foreign delete": foreignDelete,
		"missing delete": missingDelete,
	} {
		if !errors.Is(err, core.ErrTaskNotFound) {
			t.Fatalf("%s: expected ErrTaskNotFound, got %v", name, err)
		}
	}

	tasks, err := svc.List(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Completed {
		t.Fatalf("foreign user changed the task: %+v", tasks)
	}
}

func TestTasksDelete(t *testing.T) {
	t.Parallel()

	_, svc, alice, _ := newTasksWithFakeDB(t)

	task, err := svc.Create(context.Background(), alice.ID, "task")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), task.ID, alice.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), task.ID, alice.ID); !errors.Is(err, core.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}
