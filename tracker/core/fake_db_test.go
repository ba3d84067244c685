package core_test

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"task-tracker/tracker/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextUserID int64
	nextTaskID int64

	users map[int64]core.User
	tasks map[int64]core.Task
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextUserID: 1,
		nextTaskID: 1,
		users:      make(map[int64]core.User),
		tasks:      make(map[int64]core.Task),
	}
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) CreateUser(_ context.Context, username, email string, passwordHash []byte) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return core.User{}, core.ErrDuplicateUsername
		}
		if u.Email == email {
			return core.User{}, core.ErrDuplicateEmail
		}
	}

	id := db.nextUserID
	db.nextUserID++

	u := core.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: bytes.Clone(passwordHash),
	}
	db.users[id] = u
	return u, nil
}

func (db *fakeDB) GetUserByUsername(_ context.Context, username string) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (db *fakeDB) userCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.users)
}

func (db *fakeDB) ListTasks(_ context.Context, userID int64) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (db *fakeDB) CreateTask(_ context.Context, userID int64, name string) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[userID]; !ok {
		return core.Task{}, core.ErrUserNotFound
	}

	id := db.nextTaskID
	db.nextTaskID++

	task := core.Task{ID: id, Name: name, UserID: userID}
	db.tasks[id] = task
	return task, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, taskID, userID int64, p core.TaskPatch) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	task, ok := db.tasks[taskID]
	if !ok || task.UserID != userID {
		return core.Task{}, core.ErrTaskNotFound
	}

	if p.Name != nil {
		task.Name = *p.Name
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	db.tasks[taskID] = task
	return task, nil
}

func (db *fakeDB) DeleteTask(_ context.Context, taskID, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	task, ok := db.tasks[taskID]
	if !ok || task.UserID != userID {
		return core.ErrTaskNotFound
	}

	delete(db.tasks, taskID)
	return nil
}

// plainHasher stands in for bcrypt so tests stay fast.
type plainHasher struct {
	mu       sync.Mutex
	compares int
}

func (h *plainHasher) Hash(password string) ([]byte, error) {
	return []byte("hashed:" + password), nil
}

func (h *plainHasher) Compare(hash []byte, password string) error {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()

	if !bytes.Equal(hash, []byte("hashed:"+password)) {
		return errors.New("mismatch")
	}
	return nil
}

func (h *plainHasher) compareCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.compares
}

// staticTokens accepts only tokens of the form "tok:<username>".
type staticTokens struct{}

func (staticTokens) Issue(username string, _ time.Duration) (string, error) {
	return "tok:" + username, nil
}

func (staticTokens) Validate(token string) (string, error) {
	if len(token) <= 4 || token[:4] != "tok:" {
		return "", core.ErrInvalidToken
	}
	return token[4:], nil
}
