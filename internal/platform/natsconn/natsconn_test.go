package natsconn

import (
	"testing"
	"time"
)

func TestEnvInt_Fallbacks(t *testing.T) {
	if got := envInt("NATSCONN_TEST_UNSET", 5); got != 5 {
		t.Fatalf("expected fallback 5, got %d", got)
	}
	t.Setenv("NATSCONN_TEST_INT", "12")
	if got := envInt("NATSCONN_TEST_INT", 5); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	t.Setenv("NATSCONN_TEST_INT", "-3")
	if got := envInt("NATSCONN_TEST_INT", 5); got != 5 {
		t.Fatalf("negative value should fall back, got %d", got)
	}
	t.Setenv("NATSCONN_TEST_INT", "abc")
	if got := envInt("NATSCONN_TEST_INT", 5); got != 5 {
		t.Fatalf("garbage value should fall back, got %d", got)
	}
}

func TestEnvDuration_Fallbacks(t *testing.T) {
	if got := envDuration("NATSCONN_TEST_UNSET", time.Second); got != time.Second {
		t.Fatalf("expected fallback 1s, got %s", got)
	}
	t.Setenv("NATSCONN_TEST_DUR", "250ms")
	if got := envDuration("NATSCONN_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
	t.Setenv("NATSCONN_TEST_DUR", "0s")
	if got := envDuration("NATSCONN_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("non-positive value should fall back, got %s", got)
	}
}

func TestConnect_UnreachableFailsFast(t *testing.T) {
	_, err := Connect(Options{URL: "nats://127.0.0.1:1", MaxReconnects: 1, ReconnectWait: 10 * time.Millisecond})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
