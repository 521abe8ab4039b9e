package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestFetchCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/availability/calendar" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("startDate"); got != "2026-03-01" {
			t.Errorf("startDate = %s", got)
		}
		if got := r.URL.Query().Get("endDate"); got != "2026-03-03" {
			t.Errorf("endDate = %s", got)
		}
		json.NewEncoder(w).Encode(domain.CalendarGrid{
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Calendar: []domain.CalendarDay{
				{Date: "2026-03-01", Vehicles: []domain.VehicleDayStatus{
					{VehicleID: 1, DayStatus: domain.DayStatus{Status: domain.StatusRented, RentalID: 10, CustomerName: "Jane Smith"}},
				}},
				{Date: "2026-03-02"},
				{Date: "2026-03-03"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	grid, err := c.FetchCalendar(context.Background(), day(t, "2026-03-01"), day(t, "2026-03-03"))
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if len(grid.Calendar) != 3 {
		t.Fatalf("got %d days, want 3", len(grid.Calendar))
	}
	cell := grid.Calendar[0].Vehicles[0]
	if cell.Status != domain.StatusRented || cell.RentalID != 10 || cell.CustomerName != "Jane Smith" {
		t.Errorf("cell = %+v", cell)
	}
}

func TestFetchCalendarBackfillsBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"calendar": []domain.CalendarDay{{Date: "2026-03-01"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	grid, err := c.FetchCalendar(context.Background(), day(t, "2026-03-01"), day(t, "2026-03-03"))
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if grid.StartDate != "2026-03-01" || grid.EndDate != "2026-03-03" {
		t.Errorf("bounds = %s..%s", grid.StartDate, grid.EndDate)
	}
}

func TestFetchCalendarErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance page</html>"))
		}},
		{"missing calendar field", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"startDate":"2026-03-01","endDate":"2026-03-03"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(srv.URL, time.Second)
			if _, err := c.FetchCalendar(context.Background(), day(t, "2026-03-01"), day(t, "2026-03-03")); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFetchCalendarTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond)
	if _, err := c.FetchCalendar(context.Background(), day(t, "2026-03-01"), day(t, "2026-03-03")); err == nil {
		t.Error("expected timeout error")
	}
}
