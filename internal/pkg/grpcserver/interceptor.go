package grpcserver

import (
	"context"
	"time"

	"github.com/cp25sy5-modjot/subscription-parser/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const RequestIDHeader = "x-request-id"

// LoggingInterceptor attaches a request-scoped logger to the context and
// logs each call's outcome.
func LoggingInterceptor(base zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reqLog := base.With().
			Str("request_id", requestID(ctx)).
			Str("rpc", info.FullMethod).
			Logger()

		resp, err := handler(logger.WithContext(ctx, reqLog), req)

		code := status.Code(err)
		ev := reqLog.Info()
		if err != nil {
			ev = reqLog.Warn().Err(err)
		}
		ev.Str("code", code.String()).Dur("duration", time.Since(start)).Msg("rpc finished")
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(RequestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
