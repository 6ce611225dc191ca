package middleware

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type contextKey int

const (
	actorKey contextKey = iota
	requestIDKey
)

// WithActor кладёт аутентифицированного пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor возвращает пользователя, установленного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok && actor.UserID != ""
}

// GetUserID ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	actor, ok := GetActor(ctx)
	return actor.UserID, ok
}

// GetRequestID ID запроса, установленный RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
