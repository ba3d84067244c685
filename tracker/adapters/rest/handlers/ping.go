package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-tracker/tracker/core"
	"task-tracker/tracker/pkg/res"
)

type pingStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
}

// NewPingHandler reports each dependency as "ok" or "down"; one failing
// dependency turns the whole answer into 503.
func NewPingHandler(log *slog.Logger, pingers map[string]core.Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := make(map[string]pingStatus, len(pingers))
		code := http.StatusOK

		for name, p := range pingers {
			start := time.Now()
			err := p.Ping(ctx)
			st := pingStatus{Status: "ok", Latency: time.Since(start).String()}
			if err != nil {
				log.Warn("ping failed", "service", name, "error", err)
				st.Status = "down"
				code = http.StatusServiceUnavailable
			}
			out[name] = st
		}

		res.Json(w, map[string]any{"services": out}, code)
	}
}
