package app

import (
	"context"
	"fmt"
	"time"

	"avail_quote/internal/domain"
	"avail_quote/internal/refdata"
)

// RateService resolves exchange rates cache-aside: redis first, then the live
// FX source, then the static table. The live source and the cache are both
// optional; with neither configured this collapses to the static table, whose
// unknown-pair answer is 1.0 by contract.
type RateService struct {
	static *refdata.Table
	live   domain.RateSource // nil disables live lookups
	cache  domain.Cache      // nil disables caching
	ttl    time.Duration
}

func NewRateService(static *refdata.Table, live domain.RateSource, cache domain.Cache, ttl time.Duration) *RateService {
	return &RateService{static: static, live: live, cache: cache, ttl: ttl}
}

func (s *RateService) Rate(ctx context.Context, from, to string) (float64, error) {
	key := fmt.Sprintf("rate:%s:%s", from, to)
	if s.cache != nil {
		var r float64
		if ok, _ := s.cache.Get(ctx, key, &r); ok {
			return r, nil
		}
	}
	if s.live != nil {
		if r, err := s.live.Rate(ctx, from, to); err == nil {
			if s.cache != nil {
				_ = s.cache.Set(ctx, key, r, int(s.ttl.Seconds()))
			}
			return r, nil
		}
		// live failure falls through to the static table; pricing never
		// blocks on the FX provider being down
	}
	return s.static.Rate(from, to), nil
}
