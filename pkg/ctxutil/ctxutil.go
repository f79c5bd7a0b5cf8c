// Package ctxutil carries per-request identifiers through a context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	clientIDKey   ctxKey = "client_id"
	clientSlotKey ctxKey = "client_slot"
	requestIDKey  ctxKey = "request_id"
)

// TrackClientID installs a slot that WithClientID also fills, so middleware
// running outside authentication can learn who the caller was after the
// inner handlers return. The returned func reports the recorded ID.
func TrackClientID(ctx context.Context) (context.Context, func() (uuid.UUID, bool)) {
	slot := new(uuid.UUID)
	return context.WithValue(ctx, clientSlotKey, slot), func() (uuid.UUID, bool) {
		if *slot == uuid.Nil {
			return uuid.Nil, false
		}
		return *slot, true
	}
}

// WithClientID stores the authenticated extension client in the context and
// records it in the slot installed by TrackClientID, if any.
func WithClientID(ctx context.Context, id uuid.UUID) context.Context {
	if slot, ok := ctx.Value(clientSlotKey).(*uuid.UUID); ok {
		*slot = id
	}
	return context.WithValue(ctx, clientIDKey, id)
}

// ClientIDFromCtx returns the authenticated client. Anonymous requests and
// uuid.Nil report false.
func ClientIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(clientIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
