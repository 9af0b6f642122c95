package booking

import "context"

type contextKey string

const sessionIDKey contextKey = "bookingSessionID"

func NewContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)

	return id, ok && id != ""
}
