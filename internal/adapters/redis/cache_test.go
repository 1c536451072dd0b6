package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "avail_quote/internal/adapters/redis"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var rate float64
	ok, err := c.Get(ctx, "rate:USD:EUR", &rate)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "rate:USD:EUR", 0.92, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "rate:USD:EUR", &rate)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if rate != 0.92 {
		t.Fatalf("expected 0.92, got %v", rate)
	}

	if err := c.Del(ctx, "rate:USD:EUR"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "rate:USD:EUR", &rate)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "rate:USD:GBP", 0.78, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var rate float64
	ok, _ := c.Get(ctx, "rate:USD:GBP", &rate)
	if ok {
		t.Fatalf("expected entry to expire")
	}
}
