package reqctx

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const keyRID ctxKey = "request_id"

// WithRID stores the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// Logger returns base tagged with the request id carried by ctx, if any.
func Logger(ctx context.Context, base zerolog.Logger) *zerolog.Logger {
	l := base
	if rid := RID(ctx); rid != "" {
		l = base.With().Str("request_id", rid).Logger()
	}
	return &l
}
