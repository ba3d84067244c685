package grpc

import (
	"context"
	"log/slog"
	"sort"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"task-tracker/tracker/core"
)

// Server answers grpc.health.v1 checks by pinging the tracker's dependencies.
// The empty service name stands for all of them.
type Server struct {
	healthpb.UnimplementedHealthServer

	log     *slog.Logger
	pingers map[string]core.Pinger
}

func NewServer(log *slog.Logger, pingers map[string]core.Pinger) *Server {
	return &Server{log: log, pingers: pingers}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	name := req.GetService()
	if name == "" {
		return s.checkAll(ctx), nil
	}

	p, ok := s.pingers[name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}
	return response(s.ping(ctx, name, p)), nil
}

func (s *Server) checkAll(ctx context.Context) *healthpb.HealthCheckResponse {
	names := make([]string, 0, len(s.pingers))
	for name := range s.pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	serving := true
	for _, name := range names {
		if !s.ping(ctx, name, s.pingers[name]) {
			serving = false
		}
	}
	return response(serving)
}

func (s *Server) ping(ctx context.Context, name string, p core.Pinger) bool {
	if err := p.Ping(ctx); err != nil {
		s.log.Error("health check failed", "service", name, "error", err)
		return false
	}
	return true
}

func response(serving bool) *healthpb.HealthCheckResponse {
	if serving {
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}
}
