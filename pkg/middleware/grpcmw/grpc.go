// Package grpcmw records one spool line per unary RPC.
package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/hyp3rd/spoollog"
	"github.com/hyp3rd/spoollog/internal/constants"
)

const defaultTag = "GRPC"

func actualOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.tag == "" {
		cfg.tag = defaultTag
	}

	if cfg.requestKey == "" {
		cfg.requestKey = constants.RequestMetadataKey
	}

	return cfg
}

// UnaryServerInterceptor logs the method, status code, duration and request id of
// every unary call once the handler returns.
func UnaryServerInterceptor(logger spoollog.Logger, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		code := status.Code(err)

		logger.Log(levelFor(code), cfg.tag, "grpcmw", "UnaryServerInterceptor", 0,
			"%s %s %s rid=%s",
			info.FullMethod, code, time.Since(start).Round(time.Microsecond), requestID(ctx, cfg.requestKey))

		return resp, err
	}
}

func requestID(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}

	return ""
}

//nolint:exhaustive // every other code is a server-side failure.
func levelFor(code codes.Code) spoollog.Level {
	switch code {
	case codes.OK:
		return spoollog.InfoLevel
	case codes.Canceled, codes.InvalidArgument, codes.NotFound, codes.AlreadyExists,
		codes.PermissionDenied, codes.Unauthenticated, codes.FailedPrecondition, codes.OutOfRange:
		return spoollog.WarnLevel
	default:
		return spoollog.ErrorLevel
	}
}
