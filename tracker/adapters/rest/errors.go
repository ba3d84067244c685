package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"task-tracker/tracker/core"
	"task-tracker/tracker/pkg/res"
)

func WriteErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrUnauthenticated), errors.Is(err, core.ErrUserNotFound):
		res.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, "Task not found", http.StatusNotFound)
	case errors.Is(err, core.ErrDuplicateUsername), errors.Is(err, core.ErrDuplicateEmail):
		res.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, core.ErrUnavailable):
		res.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.Error("internal error", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
