package requestid

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// MetadataKey is the incoming metadata key carrying a caller-set request id.
const MetadataKey = "x-request-id"

// Generate creates a new unique request ID.
func Generate() string {
	return uuid.New().String()
}

// NewContext stores the request ID in the context.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// FromContext returns the request ID stored in the context, if any.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// FromIncomingMetadata returns the caller-supplied request ID, or a fresh
// one when the call carries none.
func FromIncomingMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(MetadataKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return Generate()
}
