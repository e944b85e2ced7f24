// Package analytics computes the organizer dashboard figures from
// point-in-time snapshots. Every function is deterministic for a given
// (snapshot, now) pair and leaves its inputs untouched; results are
// recomputed on each load, never cached.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/cimillas/eventdesk/internal/domain"
)

// Snapshot is a point-in-time read of the entity collections. Staleness
// across concurrent clients is expected.
type Snapshot struct {
	Events     []domain.Event
	Locations  []domain.Location
	Categories []domain.Category
}

// SummaryStats are the headline dashboard counters.
type SummaryStats struct {
	TotalEvents      int
	ActiveEvents     int
	UpcomingEvents   int
	OngoingEvents    int
	CompletedEvents  int
	DraftEvents      int
	TotalLocations   int
	TotalCategories  int
	TotalCapacity    int
	TotalBookings    int
	RevenueThisMonth float64
	AvgEventDuration int
}

// GrowthAnalytics compares the current calendar month against the
// previous one and names the most used category and venue.
type GrowthAnalytics struct {
	EventsThisMonth  int
	EventsLastMonth  int
	GrowthPercentage int
	PopularCategory  string
	PopularLocation  string
	AvgTicketPrice   float64
}

// CategorySlice is one entry of the category distribution chart.
type CategorySlice struct {
	Name       string
	Count      int
	Percentage int
	Color      string
}

// MonthPoint is one month of the trailing series.
type MonthPoint struct {
	Month   string
	Year    int
	Events  int
	Revenue float64
}

// chartColors is the fixed palette cycled across distribution slices.
var chartColors = []string{"#6366f1", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4"}

const missingName = "N/A"

// Summarize derives the headline counters from the snapshot at now.
func Summarize(s Snapshot, now time.Time) SummaryStats {
	stats := SummaryStats{
		TotalEvents:     len(s.Events),
		TotalLocations:  len(s.Locations),
		TotalCategories: len(s.Categories),
	}

	for _, l := range s.Locations {
		stats.TotalCapacity += l.Capacity
	}

	var totalDays float64
	for _, e := range s.Events {
		stats.TotalBookings += e.BookedCapacity
		totalDays += e.EndDate.Sub(e.StartDate).Hours() / 24

		if e.IsActive {
			stats.ActiveEvents++
		}
		switch domain.ResolveStatus(e, now) {
		case domain.StatusDraft:
			stats.DraftEvents++
		case domain.StatusUpcoming:
			stats.UpcomingEvents++
		case domain.StatusOngoing:
			stats.OngoingEvents++
		case domain.StatusCompleted:
			stats.CompletedEvents++
		}

		if e.IsPrice && sameMonth(e.StartDate, now) {
			stats.RevenueThisMonth += e.Price * float64(e.BookedCapacity)
		}
	}

	if len(s.Events) > 0 {
		stats.AvgEventDuration = int(math.Round(totalDays / float64(len(s.Events))))
	}
	return stats
}

// Growth derives month-over-month movement and popularity rankings.
func Growth(s Snapshot, now time.Time) GrowthAnalytics {
	g := GrowthAnalytics{
		PopularCategory: missingName,
		PopularLocation: missingName,
	}

	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	for _, e := range s.Events {
		if sameMonth(e.StartDate, now) {
			g.EventsThisMonth++
		}
		if sameMonth(e.StartDate, lastMonth) {
			g.EventsLastMonth++
		}
	}

	// The zero-division branch: a month growing from nothing is 100%.
	switch {
	case g.EventsLastMonth > 0:
		diff := float64(g.EventsThisMonth-g.EventsLastMonth) / float64(g.EventsLastMonth)
		g.GrowthPercentage = int(math.Round(diff * 100))
	case g.EventsThisMonth > 0:
		g.GrowthPercentage = 100
	}

	if id, ok := mostFrequent(s.Events, func(e domain.Event) int64 { return e.CategoryID }); ok {
		for _, c := range s.Categories {
			if c.ID == id {
				g.PopularCategory = c.Name
				break
			}
		}
	}
	if id, ok := mostFrequent(s.Events, func(e domain.Event) int64 { return e.LocationID }); ok {
		for _, l := range s.Locations {
			if l.ID == id {
				g.PopularLocation = l.Name
				break
			}
		}
	}

	priced := 0
	for _, e := range s.Events {
		if e.IsPrice {
			priced++
			g.AvgTicketPrice += e.Price
		}
	}
	if priced > 0 {
		g.AvgTicketPrice /= float64(priced)
	}
	return g
}

// CategoryDistribution buckets events by category, largest bucket first.
// Only categories with at least one event appear; colors cycle through
// the fixed palette in sorted order.
func CategoryDistribution(s Snapshot) []CategorySlice {
	if len(s.Events) == 0 {
		return nil
	}

	counts := make(map[int64]int)
	var order []int64
	for _, e := range s.Events {
		if counts[e.CategoryID] == 0 {
			order = append(order, e.CategoryID)
		}
		counts[e.CategoryID]++
	}

	names := make(map[int64]string, len(s.Categories))
	for _, c := range s.Categories {
		names[c.ID] = c.Name
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = missingName
		}
		slices = append(slices, CategorySlice{
			Name:       name,
			Count:      counts[id],
			Percentage: int(math.Round(float64(counts[id]) / float64(len(s.Events)) * 100)),
		})
	}

	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Count > slices[j].Count })
	for i := range slices {
		slices[i].Color = chartColors[i%len(chartColors)]
	}
	return slices
}

// MonthlySeries is the dense trailing six-month window ending at the
// current month. Months without events still appear with zero values.
func MonthlySeries(s Snapshot, now time.Time) []MonthPoint {
	series := make([]MonthPoint, 0, 6)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	for i := 0; i < 6; i++ {
		month := first.AddDate(0, i, 0)
		point := MonthPoint{
			Month: month.Format("Jan"),
			Year:  month.Year(),
		}
		for _, e := range s.Events {
			if !sameMonth(e.StartDate, month) {
				continue
			}
			point.Events++
			if e.IsPrice {
				point.Revenue += e.Price * float64(e.BookedCapacity)
			}
		}
		series = append(series, point)
	}
	return series
}

// UpcomingEvents lists active events starting after now, soonest first,
// capped at limit (unbounded when limit <= 0).
func UpcomingEvents(s Snapshot, now time.Time, limit int) []domain.Event {
	var upcoming []domain.Event
	for _, e := range s.Events {
		if domain.ResolveStatus(e, now) == domain.StatusUpcoming {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// mostFrequent returns the key with the highest event count. Ties break
// toward the key encountered first in event order so results stay
// deterministic.
func mostFrequent(events []domain.Event, key func(domain.Event) int64) (int64, bool) {
	counts := make(map[int64]int)
	var order []int64
	for _, e := range events {
		k := key(e)
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	best, found := int64(0), false
	for _, k := range order {
		if !found || counts[k] > counts[best] {
			best, found = k, true
		}
	}
	return best, found
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
