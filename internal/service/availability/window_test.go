package availability

import (
	"testing"

	"fleetrent-service/internal/pkg/dates"
)

func TestNewWindow(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)

	if dates.Format(s.DateFrom) != "2026-03-15" {
		t.Errorf("DateFrom = %s, want today", dates.Format(s.DateFrom))
	}
	if dates.Format(s.DateTo) != "2026-03-29" {
		t.Errorf("DateTo = %s, want today+14", dates.Format(s.DateTo))
	}
	if !s.CanLoadMore() || !s.CanLoadPast() {
		t.Error("initial window must allow expansion both ways")
	}
}

func TestLoadMoreDaysClampsAtCap(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)

	steps := 0
	for s.CanLoadMore() {
		s = s.LoadMoreDays(today)
		steps++
		if steps > 50 {
			t.Fatal("future expansion never reached the cap")
		}
	}

	if s.FutureDaysLoaded != MaxFutureDays {
		t.Errorf("FutureDaysLoaded = %d, want %d", s.FutureDaysLoaded, MaxFutureDays)
	}
	if got := dates.Format(s.DateTo); got != dates.Format(dates.AddDays(today, MaxFutureDays)) {
		t.Errorf("DateTo = %s, want today+%d", got, MaxFutureDays)
	}

	// A further step is a no-op, never an error.
	again := s.LoadMoreDays(today)
	if again.FutureDaysLoaded != MaxFutureDays || !again.DateTo.Equal(s.DateTo) {
		t.Errorf("expansion past the cap must not move the bound: %+v", again)
	}
}

func TestLoadPastDaysClampsAtCap(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)

	for s.CanLoadPast() {
		s = s.LoadPastDays(today)
	}

	if s.PastDaysLoaded != MaxPastDays {
		t.Errorf("PastDaysLoaded = %d, want %d", s.PastDaysLoaded, MaxPastDays)
	}
	if got := dates.Format(s.DateFrom); got != dates.Format(dates.AddDays(today, -MaxPastDays)) {
		t.Errorf("DateFrom = %s, want today-%d", got, MaxPastDays)
	}
}

func TestTerminalWindow(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)
	for s.CanLoadMore() {
		s = s.LoadMoreDays(today)
	}
	for s.CanLoadPast() {
		s = s.LoadPastDays(today)
	}
	if !s.Terminal() {
		t.Error("fully expanded window must be terminal")
	}
	if got, want := s.Key(), dates.Format(dates.AddDays(today, -MaxPastDays))+":"+dates.Format(dates.AddDays(today, MaxFutureDays)); got != want {
		t.Errorf("Key() = %s, want %s", got, want)
	}
}

func TestApplyPresetResetsCounters(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)
	s = s.LoadMoreDays(today)
	s = s.LoadPastDays(today)

	tests := []struct {
		preset Preset
		from   string
		to     string
	}{
		{PresetToday, "2026-03-15", "2026-03-15"},
		{PresetWeek, "2026-03-15", "2026-03-22"},
		{PresetMonth, "2026-03-15", "2026-04-14"},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			next, err := s.ApplyPreset(tt.preset, today)
			if err != nil {
				t.Fatalf("ApplyPreset: %v", err)
			}
			if dates.Format(next.DateFrom) != tt.from || dates.Format(next.DateTo) != tt.to {
				t.Errorf("window = %s, want %s:%s", next.Key(), tt.from, tt.to)
			}
			if next.PastDaysLoaded != 0 {
				t.Errorf("preset must reset the past counter, got %d", next.PastDaysLoaded)
			}
		})
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	s := NewWindow(day("2026-03-15"))
	if _, err := s.ApplyPreset("fortnight", day("2026-03-15")); err == nil {
		t.Error("unknown preset must error")
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	today := day("2026-03-15")
	s := NewWindow(today)
	before := s
	_ = s.LoadMoreDays(today)
	_ = s.LoadPastDays(today)
	if s != before {
		t.Errorf("transition mutated the receiver: %+v vs %+v", s, before)
	}
}
