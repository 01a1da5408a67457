package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newMiniredis starts an in-process server and a client bound to it.
// Both are torn down with the test.
func newMiniredis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func newTestStateStore(t *testing.T, prefix string) (*StateStore, *miniredis.Miniredis) {
	t.Helper()

	client, mr := newMiniredis(t)
	return NewStateStore(client, prefix), mr
}
