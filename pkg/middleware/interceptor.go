package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/commstack/org-access/pkg/requestid"
)

// RequestID attaches a request id to every unary call, honoring a
// caller-supplied x-request-id.
func RequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = requestid.NewContext(ctx, requestid.FromIncomingMetadata(ctx))
		return handler(ctx, req)
	}
}

// StreamRequestID is the streaming counterpart of RequestID.
func StreamRequestID() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := requestid.NewContext(ss.Context(), requestid.FromIncomingMetadata(ss.Context()))
		return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
	}
}

// Logger logs call start and end with the request id and resulting status.
func Logger() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		logStart(ctx, info.FullMethod, start)

		resp, err := handler(ctx, req)

		logEnd(ctx, info.FullMethod, err, start)
		return resp, err
	}
}

// StreamLogger is the streaming counterpart of Logger.
func StreamLogger() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		logStart(ss.Context(), info.FullMethod, start)

		err := handler(srv, ss)

		logEnd(ss.Context(), info.FullMethod, err, start)
		return err
	}
}

func logStart(ctx context.Context, method string, start time.Time) {
	fields := []zapcore.Field{
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("method", method),
		zap.String("time", start.Format(time.RFC3339)),
	}
	zap.S().Named("rpc").Desugar().Info("Call started", fields...)
}

func logEnd(ctx context.Context, method string, err error, start time.Time) {
	code := status.Code(err)
	fields := []zapcore.Field{
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("method", method),
		zap.String("code", code.String()),
		zap.Duration("latency", time.Since(start)),
	}

	msg := "Call completed"
	if err != nil {
		zap.S().Named("rpc").Desugar().Warn(msg, fields...)
		return
	}
	zap.S().Named("rpc").Desugar().Info(msg, fields...)
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}
