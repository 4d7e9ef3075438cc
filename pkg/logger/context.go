package logger

import "context"

type requestIDKey struct{}

// ContextWithRequestID guarda el identificador de la solicitud HTTP en ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID devuelve el identificador guardado con ContextWithRequestID o "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
