package repository

import (
	"context"
	"time"
)

// CounterRepository counts events per key inside a fixed window. The first
// increment of a key opens the window; the count resets once it expires.
type CounterRepository interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
