package core

import (
	"context"
	"errors"
	"testing"
)

func TestRunGridLevelPrices(t *testing.T) {
	ex := newMockExchange()
	opts, _ := NewOptions("GTC", false, "")

	results, err := RunGrid(context.Background(), ex, GridConfig{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Levels:   5,
		Lower:    100,
		Upper:    200,
		Quantity: 0.01,
		Opts:     opts,
	})
	if err != nil {
		t.Fatalf("RunGrid() = %v, want nil", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(results))
	}

	want := []string{"100", "125", "150", "175", "200"}
	for i, p := range ex.placed {
		if got := p.Get("price"); got != want[i] {
			t.Errorf("level %d price = %s, want %s", i+1, got, want[i])
		}
		if got := p.Get("type"); got != "LIMIT" {
			t.Errorf("level %d type = %s, want LIMIT", i+1, got)
		}
	}
}

func TestRunGridRejectsSingleLevel(t *testing.T) {
	ex := newMockExchange()
	opts, _ := NewOptions("GTC", false, "")

	_, err := RunGrid(context.Background(), ex, GridConfig{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Levels:   1,
		Lower:    100,
		Upper:    200,
		Quantity: 0.01,
		Opts:     opts,
	})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("RunGrid(levels=1) = %v, want ErrInvalidParameter", err)
	}
	if len(ex.placed) != 0 {
		t.Errorf("no orders may be submitted, got %d", len(ex.placed))
	}
}

func TestRunGridTwoLevelsAtBounds(t *testing.T) {
	ex := newMockExchange()
	opts, _ := NewOptions("GTC", false, "")

	results, err := RunGrid(context.Background(), ex, GridConfig{
		Symbol:   "BTCUSDT",
		Side:     "SELL",
		Levels:   2,
		Lower:    100,
		Upper:    200,
		Quantity: 0.01,
		Opts:     opts,
	})
	if err != nil {
		t.Fatalf("RunGrid() = %v, want nil", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected exactly 2 orders, got %d", len(results))
	}
	if ex.placed[0].Get("price") != "100" || ex.placed[1].Get("price") != "200" {
		t.Errorf("prices = [%s, %s], want [100, 200]",
			ex.placed[0].Get("price"), ex.placed[1].Get("price"))
	}
}

func TestRunGridKeepsEarlierLevelsOnFailure(t *testing.T) {
	ex := newMockExchange()
	ex.failCall = 3
	ex.failErr = errors.New("boom")
	opts, _ := NewOptions("GTC", false, "")

	results, err := RunGrid(context.Background(), ex, GridConfig{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Levels:   5,
		Lower:    100,
		Upper:    200,
		Quantity: 0.01,
		Opts:     opts,
	})
	if err == nil {
		t.Fatal("RunGrid() = nil, want submission error")
	}
	// Levels 1-2 placed and kept, level 3 failed, 4-5 never attempted.
	if len(results) != 2 {
		t.Errorf("expected 2 placed levels, got %d", len(results))
	}
	if len(ex.placed) != 3 {
		t.Errorf("expected 3 submission attempts, got %d", len(ex.placed))
	}
}
