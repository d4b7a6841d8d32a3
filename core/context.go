package core

import "context"

type ctxKey int

const (
	authTokenKey ctxKey = iota
	requestIDKey
)

// WithAuthToken returns a copy of ctx carrying the caller's Authorization header value,
// forwarded as is to the backend.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func AuthToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey).(string)
	return token, ok && token != ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
