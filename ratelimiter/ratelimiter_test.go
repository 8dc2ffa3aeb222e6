package ratelimiter

import (
	"testing"
	"time"
)

func TestRequestLimiter_Allow(t *testing.T) {
	l := New(2)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if !l.Allow() {
		t.Error("second request should be allowed")
	}
	if l.Allow() {
		t.Error("third request should be limited")
	}
}

func TestRequestLimiter_TimeUntilAvailable(t *testing.T) {
	l := New(1)

	if wait := l.TimeUntilAvailable(); wait != 0 {
		t.Errorf("expected no wait with capacity available, got %v", wait)
	}

	l.Allow()

	wait := l.TimeUntilAvailable()
	if wait <= 0 || wait > time.Minute {
		t.Errorf("expected wait in (0, 1m], got %v", wait)
	}
}

func TestRequestLimiter_Refill(t *testing.T) {
	l := NewWithInterval(1, 20*time.Millisecond)

	if !l.Allow() {
		t.Fatal("first request should be allowed")
	}
	if l.Allow() {
		t.Fatal("second request should be limited")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow() {
		t.Error("request after refill interval should be allowed")
	}
}

func TestRequestLimiter_ZeroCapacity(t *testing.T) {
	l := New(0)

	if l.Allow() {
		t.Error("zero-capacity limiter should never allow")
	}
}
