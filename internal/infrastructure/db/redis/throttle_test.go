package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewLoginThrottle_Defaults(t *testing.T) {
	th := NewLoginThrottle(nil, 0, 0)
	if th.maxFailures != defaultMaxFailures || th.window != defaultFailureWindow {
		t.Fatalf("unexpected defaults: %d %s", th.maxFailures, th.window)
	}
}

func TestKey(t *testing.T) {
	if got := key("ana@example.com"); got != "login:fail:ana@example.com" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestLoginThrottle_UnreachableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	th := NewLoginThrottle(client, 3, time.Minute)
	if _, err := th.Allowed(context.Background(), "ana@example.com"); err == nil {
		t.Fatal("expected an error from an unreachable redis")
	}
}

func TestConnect_RequiresAddr(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
