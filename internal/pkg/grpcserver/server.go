package grpcserver

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type Server struct {
	addr   string
	Server *grpc.Server
	Health *health.Server
}

func New(addr string, log zerolog.Logger, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(log))}, opts...)
	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return &Server{
		addr:   addr,
		Server: s,
		Health: hs,
	}
}

// Start listens on addr and blocks until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.Server.Serve(lis)
}

// SetServing flips the health status of service ("" is the whole server).
func (s *Server) SetServing(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.Health.SetServingStatus(service, st)
}

// Stop drains in-flight RPCs; GracefulStop also closes the listeners.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.Server.GracefulStop()
}
