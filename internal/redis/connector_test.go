package redis

import (
	"testing"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/alicebob/miniredis/v2"
)

func testOptions(url string) ConnectOptions {
	return ConnectOptions{
		URL:            url,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    50 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestNewClient(t *testing.T) {
	opts := testOptions("redis://:fromurl@localhost:6390/2")
	opts.Password = "override"
	opts.PoolSize = 7

	client, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	o := client.Options()
	if o.Addr != "localhost:6390" || o.DB != 2 {
		t.Errorf("unexpected addr/db %s/%d", o.Addr, o.DB)
	}
	if o.Password != "override" {
		t.Errorf("Password = %q, want override", o.Password)
	}
	if o.PoolSize != 7 {
		t.Errorf("PoolSize = %d, want 7", o.PoolSize)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	if _, err := NewClient(testOptions("http://nope")); err == nil {
		t.Error("expected an error for a non-redis URL")
	}
}

func TestWaitReady(t *testing.T) {
	s := miniredis.RunT(t)
	log := logger.Nop()

	client, err := NewClient(testOptions("redis://" + s.Addr()))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	if err := WaitReady(client, testOptions("redis://"+s.Addr()), log); err != nil {
		t.Errorf("WaitReady failed: %v", err)
	}
}

func TestWaitReadyTimeout(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	opts := testOptions("redis://" + addr)
	client, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	if err := WaitReady(client, opts, logger.Nop()); err == nil {
		t.Error("expected a timeout error")
	}
}

func TestWaitReadyRejectsInvalidOptions(t *testing.T) {
	opts := testOptions("redis://localhost:6379")
	opts.ConnectTimeout = 0

	client, _ := NewClient(opts)
	defer client.Close()

	if err := WaitReady(client, opts, logger.Nop()); err == nil {
		t.Error("expected a validation error")
	}
}
