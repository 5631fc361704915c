package http

import "context"

// Limiter decides whether a client identified by key may make another
// request.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}
