package health

import (
	"context"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	grpcstatus "google.golang.org/grpc/status"
)

// Server implements grpc.health.v1.Health on top of the database check.
// The empty service name and the configured service name are known; any
// other name is NOT_FOUND.
type Server struct {
	healthpb.UnimplementedHealthServer
	checker *Checker
}

func NewServer(checker *Checker) *Server {
	return &Server{checker: checker}
}

func (s *Server) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != s.checker.service {
		return nil, grpcstatus.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := s.checker.Check(ctx); err != nil {
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// NewGRPCServer builds the gRPC server with tracing, logging and metrics
// interceptors, the health service and reflection.
func NewGRPCServer(checker *Checker, interceptors *Interceptors) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.Logging,
			interceptors.Metrics,
		),
	)

	healthpb.RegisterHealthServer(server, NewServer(checker))

	// for grpcurl and similar tools
	reflection.Register(server)

	return server
}
