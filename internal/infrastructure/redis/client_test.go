package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, ClientConfig{URL: fmt.Sprintf("redis://%s", s.Addr())})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientAppliesOverrides(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	client, err := NewClient(context.Background(), ClientConfig{
		URL:         fmt.Sprintf("redis://%s/2", s.Addr()),
		PoolSize:    3,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	opts := client.Options()
	if opts.PoolSize != 3 || opts.DialTimeout != 2*time.Second || opts.DB != 2 {
		t.Fatalf("unexpected options: pool=%d dial=%v db=%d", opts.PoolSize, opts.DialTimeout, opts.DB)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{URL: "://bad-url"})
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close() // close before attempting to connect

	_, err := NewClient(context.Background(), ClientConfig{URL: url})
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}
