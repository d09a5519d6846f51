package positions

import (
	"context"
	"sync"
	"testing"

	"github.com/drew2323/v3trading/internal/events"
)

func TestUnrealizedPnL(t *testing.T) {
	tests := []struct {
		name          string
		avg, cur, qty float64
		want          float64
	}{
		{"gain", 100, 110, 10, 100},
		{"loss", 150, 120.5, 4, -118},
		{"rounds to cents", 100, 100.123, 3, 0.37},
		{"short position", 50, 40, -2, 20},
		{"flat", 42.42, 42.42, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnrealizedPnL(tt.avg, tt.cur, tt.qty); got != tt.want {
				t.Errorf("UnrealizedPnL(%v, %v, %v) = %v, want %v", tt.avg, tt.cur, tt.qty, got, tt.want)
			}
		})
	}
}

func TestValue_UsesRawCurrentPrice(t *testing.T) {
	p := Value("id", "AAPL", 100, 10, 10.004, 5)
	if p.CurrentPrice != 10 {
		t.Errorf("CurrentPrice = %v, want 10", p.CurrentPrice)
	}
	// (10.004 - 10) * 100 = 0.4, not (10 - 10) * 100
	if p.UnrealizedPnL != 0.4 {
		t.Errorf("UnrealizedPnL = %v, want 0.4", p.UnrealizedPnL)
	}
}

func TestClose_RemovesPermanently(t *testing.T) {
	var got []events.Event
	svc := New(NewStore(
		Value("1", "AAPL", 10, 100, 110, 0),
		Value("2", "MSFT", 5, 300, 290, 12.5),
	), events.PublisherFunc(func(_ context.Context, e events.Event) { got = append(got, e) }), nil)

	p, err := svc.Close(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p.ID != "1" {
		t.Errorf("closed %+v, want id 1", p)
	}
	if _, err := svc.GetBySymbol("AAPL"); !IsNotFound(err) {
		t.Errorf("lookup after close err = %v, want not found", err)
	}
	if _, err := svc.Close(context.Background(), "AAPL"); !IsNotFound(err) {
		t.Errorf("second close err = %v, want not found", err)
	}
	if all := svc.GetAll(); len(all) != 1 || all[0].Symbol != "MSFT" {
		t.Errorf("remaining = %+v", all)
	}
	if len(got) != 1 || got[0].Type != events.PositionClosed {
		t.Errorf("events = %+v", got)
	}
}

func TestFindBySymbol_CaseSensitive(t *testing.T) {
	s := NewStore(Value("1", "ETH", 1, 3000, 3100, 0))
	if _, err := s.FindBySymbol("eth"); !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if p, err := s.FindBySymbol("ETH"); err != nil || p.UnrealizedPnL != 100 {
		t.Fatalf("got %+v, %v", p, err)
	}
}

func TestClose_ConcurrentOnlyOneWins(t *testing.T) {
	svc := New(NewStore(Value("1", "BTC", 1, 60000, 61000, 0)), nil, nil)
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Close(context.Background(), "BTC"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("wins = %d, want 1", wins)
	}
}
