package unavailability

import (
	"testing"
	"time"

	"fleetrent-service/internal/pkg/dates"
)

func day(s string) time.Time {
	t, err := dates.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func validWindow() Window {
	return Window{
		VehicleID: 1,
		StartDate: day("2026-03-10"),
		EndDate:   day("2026-03-15"),
		Type:      TypeMaintenance,
		Reason:    "brake pads",
		Priority:  PriorityNormal,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Window)
		wantErr bool
	}{
		{"valid", func(w *Window) {}, false},
		{"single day", func(w *Window) { w.EndDate = w.StartDate }, false},
		{"private rental", func(w *Window) { w.Type = TypePrivateRental }, false},
		{"missing vehicle", func(w *Window) { w.VehicleID = 0 }, true},
		{"zero start", func(w *Window) { w.StartDate = time.Time{} }, true},
		{"reversed range", func(w *Window) { w.StartDate, w.EndDate = w.EndDate.AddDate(0, 0, 5), w.StartDate }, true},
		{"unknown type", func(w *Window) { w.Type = "vacation" }, true},
		{"priority too low", func(w *Window) { w.Priority = 0 }, true},
		{"priority too high", func(w *Window) { w.Priority = PriorityLow + 1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWindow()
			tt.mutate(&w)
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []Type{TypeMaintenance, TypeService, TypeRepair, TypeBlocked, TypeCleaning, TypeInspection, TypePrivateRental} {
		if !ValidType(typ) {
			t.Errorf("ValidType(%s) = false", typ)
		}
	}
	if ValidType("holiday") {
		t.Error("unknown type must be invalid")
	}
}
