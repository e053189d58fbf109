package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	okReply  = MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down     = MockResponse{Err: &UnavailableError{Err: errors.New("down")}}
	garbled  = MockResponse{Err: &InvalidResponseError{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	cutOff   = MockResponse{Err: &TruncatedError{Content: json.RawMessage(`{`)}}
	throttle = MockResponse{Err: &RateLimitError{RetryAfter: time.Millisecond, Err: errors.New("429")}}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		replies   []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okReply}, false, 1},
		{"transient then success", []MockResponse{down, okReply}, false, 2},
		{"rate limit then success", []MockResponse{throttle, okReply}, false, 2},
		{"all attempts fail", []MockResponse{down, down, down, okReply}, true, 3},
		{"truncation not retried", []MockResponse{cutOff, okReply}, true, 1},
		{"invalid retried once", []MockResponse{garbled, garbled, okReply}, true, 2},
		{"invalid then success", []MockResponse{garbled, okReply}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.replies...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := mock.CallCount(); got != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	mock := NewMockProvider(down, down, okReply)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	for attempt, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		got := r.backoff(attempt, errors.New("x"))
		lo, hi := base*8/10, base*12/10
		if got < lo || got > hi {
			t.Errorf("backoff(%d) = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}
	if got := r.backoff(0, &RateLimitError{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("RetryAfter backoff = %v, want 7s", got)
	}
}

func TestRetry_DelegatesIdentity(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry())
	if p.ModelID() != "mock" || p.Name() != "mock" {
		t.Fatalf("identity = %s/%s", p.Name(), p.ModelID())
	}
}
