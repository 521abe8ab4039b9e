package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/rental"
	xerrors "fleetrent-service/internal/pkg/errors"

	"go.uber.org/zap"
)

func testService() *Service {
	cache := NewGridCache(unreachableRedis(), nil, NewBuilder(zap.NewNop()), zap.NewNop(), time.Minute, time.Second)
	source := &fakeSource{snap: Snapshot{
		Vehicles: testFleet(),
		Rentals: []rental.Rental{{
			ID: 10, VehicleID: 1, CustomerName: "Jane Smith",
			StartDate: day("2026-03-02"), EndDate: day("2026-03-04"),
			Status: rental.StatusActive,
		}},
	}}
	return NewService(source, cache, zap.NewNop())
}

func TestServiceCalendar(t *testing.T) {
	s := testService()

	grid, err := s.Calendar(context.Background(), day("2026-03-01"), day("2026-03-05"), false)
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if len(grid.Calendar) != 5 {
		t.Fatalf("got %d days, want 5", len(grid.Calendar))
	}
	if got := grid.Index()["2026-03-03"][1]; got.Status != domain.StatusRented || got.RentalID != 10 {
		t.Errorf("rented cell = %+v", got)
	}
}

func TestServiceCalendarInvalidRange(t *testing.T) {
	s := testService()
	_, err := s.Calendar(context.Background(), day("2026-03-05"), day("2026-03-01"), false)
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("reversed range: got %v, want ErrInvalidInput", err)
	}
}

func TestServiceSummaries(t *testing.T) {
	s := testService()

	summaries, err := s.Summaries(context.Background(), day("2026-03-01"), day("2026-03-05"), domain.FilterSet{Brands: []string{"Toyota"}}, false)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if got := summaries[0]; got.AvailableDays != 2 || got.TotalDays != 5 {
		t.Errorf("summary = %d/%d, want 2/5", got.AvailableDays, got.TotalDays)
	}

	if _, err := s.Summaries(context.Background(), day("2026-03-05"), day("2026-03-01"), domain.FilterSet{}, false); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Errorf("reversed range: got %v, want ErrInvalidInput", err)
	}
}
