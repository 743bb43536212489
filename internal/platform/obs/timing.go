// Package obs holds small observability helpers shared by adapters.
package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

// RequestIDKey carries the request id set by the HTTP middleware.
const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in the context, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs an operation's duration and outcome when the returned func runs.
// Use it as: defer obs.Time(ctx, "ors.GetRoute")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		evt := log.Debug().Str("op", name).Dur("duration", time.Since(start))
		if reqID != "" {
			evt = evt.Str("req_id", reqID)
		}
		if errp != nil && *errp != nil {
			evt.Err(*errp).Msg("operation failed")
			return
		}
		evt.Msg("operation complete")
	}
}
