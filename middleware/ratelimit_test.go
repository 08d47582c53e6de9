package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestNewIPRateLimiter tests the creation of a new IPRateLimiter.
func TestNewIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(1, 5)
	if rl == nil {
		t.Fatalf("Expected IPRateLimiter to be created, got nil")
	}
	if rl.rate != 1 {
		t.Errorf("Expected rate limit to be 1, got %v", rl.rate)
	}
	if rl.burst != 5 {
		t.Errorf("Expected burst limit to be 5, got %v", rl.burst)
	}
	if rl.GetBurstLimit() != 5 {
		t.Errorf("Expected GetBurstLimit to return 5, got %v", rl.GetBurstLimit())
	}
}

// TestAddIP tests adding a new IP to the rate limiter.
func TestAddIP(t *testing.T) {
	rl := NewIPRateLimiter(1, 5)
	ip := "192.168.1.1"
	limiter := rl.AddIP(ip)
	if limiter == nil {
		t.Errorf("Expected limiter to be created for IP, got nil")
	}
	if _, exists := rl.ips[ip]; !exists {
		t.Errorf("Expected IP to be added to ips map, but it was not found")
	}
}

// TestGetLimiter tests retrieving the rate limiter for an IP.
func TestGetLimiter(t *testing.T) {
	rl := NewIPRateLimiter(1, 5)
	ip := "192.168.1.1"
	limiter := rl.GetLimiter(ip)
	if limiter == nil {
		t.Errorf("Expected limiter to be returned, got nil")
	}
	if _, exists := rl.ips[ip]; !exists {
		t.Errorf("Expected IP to be in ips map, but it was not found")
	}

	// Same IP should get the same limiter back
	if rl.GetLimiter(ip) != limiter {
		t.Errorf("Expected GetLimiter to return the same limiter for the same IP")
	}
}

// TestRateLimiting tests the actual rate limiting functionality.
func TestRateLimiting(t *testing.T) {
	rl := NewIPRateLimiter(rate.Limit(1), 1) // 1 req/s, burst 1
	ip := "192.168.1.1"
	limiter := rl.GetLimiter(ip)

	// Allow the first request
	if !limiter.Allow() {
		t.Errorf("Expected first request to be allowed")
	}

	// Second request should not be allowed immediately
	if limiter.Allow() {
		t.Errorf("Expected second request to be denied")
	}

	// After the refill interval, a request should be allowed again
	time.Sleep(1100 * time.Millisecond)
	if !limiter.Allow() {
		t.Errorf("Expected request to be allowed after refill")
	}
}

// TestRateLimitingPerIP tests that limits are tracked independently per IP.
func TestRateLimitingPerIP(t *testing.T) {
	rl := NewIPRateLimiter(rate.Limit(1), 1)

	first := rl.GetLimiter("10.0.0.1")
	second := rl.GetLimiter("10.0.0.2")

	if !first.Allow() {
		t.Errorf("Expected first IP's request to be allowed")
	}
	if !second.Allow() {
		t.Errorf("Expected second IP's request to be allowed independently")
	}
}
