package health

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"task-tracker/tracker/core"
)

// Client probes a running tracker through its gRPC health endpoint.
type Client struct {
	log     *slog.Logger
	conn    *grpc.ClientConn
	service string

	health healthpb.HealthClient
}

// NewClient does not dial; the connection is established on the first Ping.
// An empty service checks every dependency at once.
func NewClient(address, service string, log *slog.Logger, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("new grpc client for %s: %w", address, err)
	}

	return &Client{
		log:     log,
		conn:    conn,
		service: service,
		health:  healthpb.NewHealthClient(conn),
	}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: c.service})
	if err != nil {
		return mapGRPCErr(err)
	}
	if st := resp.GetStatus(); st != healthpb.HealthCheckResponse_SERVING {
		c.log.Debug("service not serving", "service", c.service, "status", st.String())
		return fmt.Errorf("%w: %s", core.ErrUnavailable, st)
	}
	return nil
}

func mapGRPCErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return core.ErrInvalidArgs
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.NotFound:
		return fmt.Errorf("%w: %v", core.ErrUnavailable, err)
	default:
		return err
	}
}
