package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinDelay:    time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Retriable:   IsRetriable,
	}
}

func TestRetryPolicyAttemptCap(t *testing.T) {
	calls := 0
	want := &TransportError{Op: "GET /fapi/v1/ping", Err: errors.New("timeout")}

	err := testPolicy().Do(context.Background(), func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Do() = %v, want the transport error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicyNonRetriableImmediate(t *testing.T) {
	calls := 0
	want := &ExchangeError{Status: 400, Code: -1102, Msg: "Mandatory parameter missing"}

	err := testPolicy().Do(context.Background(), func() error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Do() = %v, want the exchange error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryPolicyRecovers(t *testing.T) {
	calls := 0
	err := testPolicy().Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return &ExchangeError{Status: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() = %v, want nil", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryPolicyStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := testPolicy()
	p.MinDelay = time.Minute // backoff should never elapse

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- p.Do(ctx, func() error {
			calls++
			cancel()
			return &TransportError{Op: "GET /fapi/v1/ping", Err: errors.New("timeout")}
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Do() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do() did not return after context cancellation")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", &TransportError{Op: "GET /", Err: errors.New("refused")}, true},
		{"server error", &ExchangeError{Status: 502}, true},
		{"client error", &ExchangeError{Status: 418}, false},
		{"bad request", &ExchangeError{Status: 400}, false},
		{"plain error", errors.New("whatever"), false},
	}
	for _, tt := range tests {
		if got := IsRetriable(tt.err); got != tt.want {
			t.Errorf("%s: IsRetriable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
