// internal/client/calendar/client.go
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"
)

// Client fetches precomputed calendar grids from the upstream availability
// endpoint. A request that times out or returns a non-2xx status is an
// error; callers fall back to local computation.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchCalendar requests GET {base}/availability/calendar for the window.
// Dates are inclusive, yyyy-mm-dd.
func (c *Client) FetchCalendar(ctx context.Context, from, to time.Time) (*domain.CalendarGrid, error) {
	q := url.Values{}
	q.Set("startDate", dates.Format(from))
	q.Set("endDate", dates.Format(to))

	endpoint := c.baseURL + "/availability/calendar?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("calendar endpoint returned %d: %s", resp.StatusCode, body)
	}

	var grid domain.CalendarGrid
	if err := json.NewDecoder(resp.Body).Decode(&grid); err != nil {
		return nil, fmt.Errorf("failed to decode calendar payload: %w", err)
	}
	if grid.Calendar == nil {
		return nil, fmt.Errorf("calendar payload missing calendar field")
	}

	if grid.StartDate == "" {
		grid.StartDate = dates.Format(dates.Day(from))
	}
	if grid.EndDate == "" {
		grid.EndDate = dates.Format(dates.Day(to))
	}
	return &grid, nil
}
