// internal/service/availability/window.go
package availability

import (
	"fmt"
	"time"

	"fleetrent-service/internal/pkg/dates"
)

// Progressive window steps and hard bounds. The dashboard starts two weeks
// out and extends on demand until it spans [today-30, today+180].
const (
	InitialFutureDays = 14
	FutureStep        = 14
	PastStep          = 7
	MaxFutureDays     = 180
	MaxPastDays       = 30
)

// WindowState is an immutable description of the requested date range plus
// the progressive-expansion counters. Transitions return a new value; the
// state itself is never mutated, so the state machine is independently
// testable.
type WindowState struct {
	DateFrom         time.Time `json:"dateFrom"`
	DateTo           time.Time `json:"dateTo"`
	PastDaysLoaded   int       `json:"pastDaysLoaded"`
	FutureDaysLoaded int       `json:"futureDaysLoaded"`
}

// Preset is a quick-filter window shape. Presets are not additive: they
// reset the bounds and counters, superseding prior progressive expansion.
type Preset string

const (
	PresetToday Preset = "today"
	PresetWeek  Preset = "week"
	PresetMonth Preset = "month"
)

// NewWindow returns the initial dashboard window: [today, today+14].
func NewWindow(today time.Time) WindowState {
	d := dates.Day(today)
	return WindowState{
		DateFrom:         d,
		DateTo:           dates.AddDays(d, InitialFutureDays),
		FutureDaysLoaded: InitialFutureDays,
	}
}

// CanLoadMore reports whether the window can still extend into the future.
func (s WindowState) CanLoadMore() bool {
	return s.FutureDaysLoaded < MaxFutureDays
}

// CanLoadPast reports whether the window can still extend into the past.
func (s WindowState) CanLoadPast() bool {
	return s.PastDaysLoaded < MaxPastDays
}

// Terminal reports whether the window has reached [today-30, today+180]
// and no further expansion is possible.
func (s WindowState) Terminal() bool {
	return !s.CanLoadMore() && !s.CanLoadPast()
}

// LoadMoreDays extends the window forward by one step, clamped at the
// future cap. At the cap the state is returned unchanged, never an error.
func (s WindowState) LoadMoreDays(today time.Time) WindowState {
	loaded := s.FutureDaysLoaded + FutureStep
	if loaded > MaxFutureDays {
		loaded = MaxFutureDays
	}
	s.FutureDaysLoaded = loaded
	s.DateTo = dates.AddDays(today, loaded)
	return s
}

// LoadPastDays extends the window backward by one step, clamped at the
// past cap.
func (s WindowState) LoadPastDays(today time.Time) WindowState {
	loaded := s.PastDaysLoaded + PastStep
	if loaded > MaxPastDays {
		loaded = MaxPastDays
	}
	s.PastDaysLoaded = loaded
	s.DateFrom = dates.AddDays(today, -loaded)
	return s
}

// ApplyPreset resets the window to a fixed shape anchored at today.
func (s WindowState) ApplyPreset(p Preset, today time.Time) (WindowState, error) {
	d := dates.Day(today)
	switch p {
	case PresetToday:
		return WindowState{DateFrom: d, DateTo: d}, nil
	case PresetWeek:
		return WindowState{DateFrom: d, DateTo: dates.AddDays(d, 7), FutureDaysLoaded: 7}, nil
	case PresetMonth:
		return WindowState{DateFrom: d, DateTo: dates.AddDays(d, 30), FutureDaysLoaded: 30}, nil
	default:
		return s, fmt.Errorf("unknown window preset %q", p)
	}
}

// Key identifies the window for caching: "<from>:<to>".
func (s WindowState) Key() string {
	return dates.Format(s.DateFrom) + ":" + dates.Format(s.DateTo)
}
