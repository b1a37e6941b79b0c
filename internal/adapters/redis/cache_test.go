package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "worldacross/internal/adapters/redis"
	"worldacross/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	var miss []domain.Destination
	ok, err := c.Get(ctx, "catalog:destinations", &miss)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	in := []domain.Destination{{ID: 1, Name: "Goa", Categories: []string{"Beach"}, Types: []string{"Domestic"}}}
	if err := c.Set(ctx, "catalog:destinations", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.Destination
	ok, err = c.Get(ctx, "catalog:destinations", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].Name != "Goa" || out[0].Categories[0] != "Beach" {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "catalog:destinations"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "catalog:destinations", &out)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"a": 1}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var out map[string]int
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected key to expire")
	}
}

func TestCache_CorruptValueIsDropped(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := mr.Set("k", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var out map[string]int
	ok, err := c.Get(ctx, "k", &out)
	if ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
	if mr.Exists("k") {
		t.Fatalf("corrupt key should be deleted")
	}
}
