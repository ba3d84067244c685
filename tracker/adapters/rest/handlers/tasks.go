package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"task-tracker/tracker/adapters/rest"
	"task-tracker/tracker/core"
	"task-tracker/tracker/pkg/res"
)

// caller resolves the session username to the stored user.
func caller(ctx context.Context, accounts *core.Accounts) (core.User, error) {
	username, ok := rest.UsernameFrom(ctx)
	if !ok {
		return core.User{}, core.ErrUnauthenticated
	}
	return accounts.Lookup(ctx, username)
}

func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func NewListTasksHandler(log *slog.Logger, accounts *core.Accounts, svc *core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		user, err := caller(ctx, accounts)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		items, err := svc.List(ctx, user.ID)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TasksFromCore(items), http.StatusOK)
	}
}

func NewCreateTaskHandler(log *slog.Logger, accounts *core.Accounts, svc *core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rest.ParseForm(w, r); err != nil {
			res.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		name, ok := rest.FormValue(r, "taskname")
		if !ok {
			res.Error(w, "taskname is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		user, err := caller(ctx, accounts)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		t, err := svc.Create(ctx, user.ID, name)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TaskMutationOut{Message: "Task added", Task: rest.TaskFromCore(t)}, http.StatusOK)
	}
}

func NewUpdateTaskHandler(log *slog.Logger, accounts *core.Accounts, svc *core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseTaskID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := rest.ParseForm(w, r); err != nil {
			res.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		var p core.TaskPatch
		if v, ok := rest.FormValue(r, "taskname"); ok {
			p.Name = &v
		}
		if v, ok := rest.FormValue(r, "completed"); ok {
			b, err := rest.ParseFormBool(v)
			if err != nil {
				res.Error(w, "invalid completed", http.StatusBadRequest)
				return
			}
			p.Completed = &b
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		user, err := caller(ctx, accounts)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		t, err := svc.Update(ctx, id, user.ID, p)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TaskMutationOut{Message: "Task updated", Task: rest.TaskFromCore(t)}, http.StatusOK)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, accounts *core.Accounts, svc *core.Tasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseTaskID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		user, err := caller(ctx, accounts)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		if err := svc.Delete(ctx, id, user.ID); err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.MessageOut{Message: "Task deleted"}, http.StatusOK)
	}
}
