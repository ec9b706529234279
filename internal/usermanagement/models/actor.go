package models

import "context"

type actorKey struct{}

// WithActor stores the authenticated subject recorded in audit fields.
func WithActor(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, actorKey{}, subject)
}

// ActorFromContext returns the subject set by WithActor, or "" for anonymous calls.
func ActorFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(actorKey{}).(string)
	return subject
}
