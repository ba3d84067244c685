package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"task-tracker/tracker/adapters/rest"
	"task-tracker/tracker/core"
	"task-tracker/tracker/pkg/res"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	registerPage  = "register.html"
	loginPage     = "login.html"
	dashboardPage = "dashboard.html"
)

func mustParsePages() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

func render(w http.ResponseWriter, log *slog.Logger, pages *template.Template, name string, data any, code int) {
	if err := res.HTML(w, pages, name, data, code); err != nil {
		log.Error("render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func NewRegisterFormHandler(log *slog.Logger, pages *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		render(w, log, pages, registerPage, rest.FormPage{}, http.StatusOK)
	}
}

func NewRegisterHandler(log *slog.Logger, pages *template.Template, accounts *core.Accounts, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rest.ParseForm(w, r); err != nil {
			render(w, log, pages, registerPage, rest.FormPage{Error: "Invalid form"}, http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		email := r.PostFormValue("email")
		page := rest.FormPage{Username: username, Email: email}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		_, err := accounts.Register(ctx, username, email, r.PostFormValue("password"))
		switch {
		case err == nil:
			log.Info("user registered", "username", username)
			res.Redirect(w, r, rest.LoginPath)
		case errors.Is(err, core.ErrDuplicateUsername):
			page.Error = "Username already exists"
			render(w, log, pages, registerPage, page, http.StatusOK)
		case errors.Is(err, core.ErrDuplicateEmail):
			page.Error = "Email already registered"
			render(w, log, pages, registerPage, page, http.StatusOK)
		case errors.Is(err, core.ErrInvalidArgs):
			page.Error = "Invalid username, email or password"
			render(w, log, pages, registerPage, page, http.StatusBadRequest)
		default:
			log.Error("register failed", "error", err)
			page.Error = "Registration failed, try again later"
			render(w, log, pages, registerPage, page, http.StatusInternalServerError)
		}
	}
}

func NewLoginFormHandler(log *slog.Logger, pages *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		render(w, log, pages, loginPage, rest.FormPage{}, http.StatusOK)
	}
}

func NewLoginHandler(log *slog.Logger, pages *template.Template, accounts *core.Accounts, tokens core.TokenIssuer, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rest.ParseForm(w, r); err != nil {
			render(w, log, pages, loginPage, rest.FormPage{Error: "Invalid form"}, http.StatusBadRequest)
			return
		}

		username := r.PostFormValue("username")
		page := rest.FormPage{Username: username}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		user, err := accounts.Verify(ctx, username, r.PostFormValue("password"))
		if err != nil {
			if errors.Is(err, core.ErrInvalidCredentials) {
				page.Error = "Invalid credentials"
				render(w, log, pages, loginPage, page, http.StatusOK)
				return
			}
			log.Error("login failed", "error", err)
			page.Error = "Login failed, try again later"
			render(w, log, pages, loginPage, page, http.StatusInternalServerError)
			return
		}

		token, err := tokens.Issue(user.Username, opts.TokenTTL)
		if err != nil {
			log.Error("issue token", "error", err)
			page.Error = "Login failed, try again later"
			render(w, log, pages, loginPage, page, http.StatusInternalServerError)
			return
		}

		rest.SetSessionCookie(w, token, opts.TokenTTL, opts.CookieSecure)
		res.Redirect(w, r, "/dashboard")
	}
}

func NewLogoutHandler(cookieSecure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest.ClearSessionCookie(w, cookieSecure)
		res.Redirect(w, r, rest.LoginPath)
	}
}

// NewDashboardHandler trusts the token alone: the user record is not
// reloaded.
func NewDashboardHandler(log *slog.Logger, pages *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _ := rest.UsernameFrom(r.Context())
		render(w, log, pages, dashboardPage, rest.DashboardPage{Username: username}, http.StatusOK)
	}
}
