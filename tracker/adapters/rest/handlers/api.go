package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"task-tracker/tracker/adapters/rest"
	"task-tracker/tracker/core"
)

type Options struct {
	Timeout      time.Duration
	TokenTTL     time.Duration
	CookieSecure bool
}

// Register wires every route. Browser pages redirect to the login page on a
// missing session, the JSON task API answers 401.
func Register(mux *http.ServeMux, log *slog.Logger, deps core.Deps, opts Options) {
	pages := mustParsePages()

	browser := func(h http.Handler) http.Handler {
		return rest.RequireSession(deps.Sessions, rest.PolicyRedirect, h)
	}
	api := func(h http.Handler) http.Handler {
		return rest.RequireSession(deps.Sessions, rest.PolicyReject, h)
	}

	// ping
	mux.Handle("GET /api/ping", NewPingHandler(log, deps.Pingers, opts.Timeout))

	// accounts
	mux.Handle("GET /{$}", NewRegisterFormHandler(log, pages))
	mux.Handle("POST /register", NewRegisterHandler(log, pages, deps.Accounts, opts.Timeout))
	mux.Handle("GET /login", NewLoginFormHandler(log, pages))
	mux.Handle("POST /login", NewLoginHandler(log, pages, deps.Accounts, deps.Tokens, opts))
	mux.Handle("GET /logout", NewLogoutHandler(opts.CookieSecure))
	mux.Handle("GET /dashboard", browser(NewDashboardHandler(log, pages)))

	// tasks
	mux.Handle("GET /tasks", api(NewListTasksHandler(log, deps.Accounts, deps.Tasks, opts.Timeout)))
	mux.Handle("POST /tasks", api(NewCreateTaskHandler(log, deps.Accounts, deps.Tasks, opts.Timeout)))
	mux.Handle("PUT /tasks/{id}", api(NewUpdateTaskHandler(log, deps.Accounts, deps.Tasks, opts.Timeout)))
	mux.Handle("DELETE /tasks/{id}", api(NewDeleteTaskHandler(log, deps.Accounts, deps.Tasks, opts.Timeout)))
}
