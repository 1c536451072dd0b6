package domain

import "context"

// RateSource resolves the exchange rate for converting the reference currency
// into a target currency.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// IDGenerator mints quote identifiers. Swappable so tests can pin IDs.
type IDGenerator interface {
	NewID() string
}
