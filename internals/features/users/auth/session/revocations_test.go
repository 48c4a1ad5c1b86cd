package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisRevocations(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := NewRedisRevocations(client, "s3cret")
	r.now = func() time.Time { return now }

	revoked, err := r.IsRevoked(ctx, "tok-a")
	if err != nil || revoked {
		t.Fatalf("fresh token revoked=%v err=%v", revoked, err)
	}

	if err := r.Revoke(ctx, "tok-a", now.Add(10*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if revoked, _ := r.IsRevoked(ctx, "tok-a"); !revoked {
		t.Fatal("token should be revoked")
	}
	if revoked, _ := r.IsRevoked(ctx, "tok-b"); revoked {
		t.Fatal("other token must not be affected")
	}

	// raw token tidak pernah disimpan
	for _, k := range mr.Keys() {
		if k == "revoked:tok-a" {
			t.Fatal("raw token used as key")
		}
	}

	mr.FastForward(11 * time.Minute)
	if revoked, _ := r.IsRevoked(ctx, "tok-a"); revoked {
		t.Fatal("revocation should expire with the token")
	}
}

func TestRedisRevokeAlreadyExpiredIsNoop(t *testing.T) {
	mr, client := newRedis(t)
	now := time.Now()
	r := NewRedisRevocations(client, "s3cret")
	r.now = func() time.Time { return now }

	if err := r.Revoke(context.Background(), "old", now.Add(-time.Second)); err != nil {
		t.Fatal(err)
	}
	if n := len(mr.Keys()); n != 0 {
		t.Fatalf("expected no keys, got %d", n)
	}
}

func TestRedisRevocationsError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	r := NewRedisRevocations(client, "s3cret")
	mr.Close()

	if _, err := r.IsRevoked(context.Background(), "tok"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
