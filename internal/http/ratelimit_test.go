package http

import "testing"

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("request 61 within a minute should be blocked")
	}
	// Other clients are unaffected.
	if !rl.allow("10.0.0.2") {
		t.Fatal("a different client should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	rl.allow("10.0.0.1")
	rl.cleanupStaleEntries()
	if len(rl.clients) != 1 {
		t.Fatalf("fresh client should survive cleanup, got %d", len(rl.clients))
	}
}
