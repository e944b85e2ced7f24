package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

// DashboardLoader is the minimal interface needed for the dashboard
// endpoint.
type DashboardLoader interface {
	Load(ctx context.Context) (app.Dashboard, error)
}

// HandleDashboard returns an HTTP handler serving the full analytics
// bundle in one response.
func HandleDashboard(svc DashboardLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if session.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
			return
		}

		dashboard, err := svc.Load(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := dashboardResponse{
			Stats: statsResponse{
				TotalEvents:      dashboard.Stats.TotalEvents,
				ActiveEvents:     dashboard.Stats.ActiveEvents,
				UpcomingEvents:   dashboard.Stats.UpcomingEvents,
				OngoingEvents:    dashboard.Stats.OngoingEvents,
				CompletedEvents:  dashboard.Stats.CompletedEvents,
				DraftEvents:      dashboard.Stats.DraftEvents,
				TotalLocations:   dashboard.Stats.TotalLocations,
				TotalCategories:  dashboard.Stats.TotalCategories,
				TotalCapacity:    dashboard.Stats.TotalCapacity,
				TotalBookings:    dashboard.Stats.TotalBookings,
				RevenueThisMonth: dashboard.Stats.RevenueThisMonth,
				AvgEventDuration: dashboard.Stats.AvgEventDuration,
			},
			Growth: growthResponse{
				EventsThisMonth:  dashboard.Growth.EventsThisMonth,
				EventsLastMonth:  dashboard.Growth.EventsLastMonth,
				GrowthPercentage: dashboard.Growth.GrowthPercentage,
				PopularCategory:  dashboard.Growth.PopularCategory,
				PopularLocation:  dashboard.Growth.PopularLocation,
				AvgTicketPrice:   dashboard.Growth.AvgTicketPrice,
			},
		}
		for _, slice := range dashboard.Distribution {
			resp.Distribution = append(resp.Distribution, sliceResponse{
				Name:       slice.Name,
				Count:      slice.Count,
				Percentage: slice.Percentage,
				Color:      slice.Color,
			})
		}
		for _, point := range dashboard.Monthly {
			resp.Monthly = append(resp.Monthly, monthResponse{
				Month:   point.Month,
				Year:    point.Year,
				Events:  point.Events,
				Revenue: point.Revenue,
			})
		}
		for _, event := range dashboard.Upcoming {
			resp.Upcoming = append(resp.Upcoming, toEventResponse(event))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type dashboardResponse struct {
	Stats        statsResponse   `json:"stats"`
	Growth       growthResponse  `json:"growth"`
	Distribution []sliceResponse `json:"category_distribution"`
	Monthly      []monthResponse `json:"monthly_trend"`
	Upcoming     []eventResponse `json:"upcoming_events"`
}

type statsResponse struct {
	TotalEvents      int     `json:"total_events"`
	ActiveEvents     int     `json:"active_events"`
	UpcomingEvents   int     `json:"upcoming_events"`
	OngoingEvents    int     `json:"ongoing_events"`
	CompletedEvents  int     `json:"completed_events"`
	DraftEvents      int     `json:"draft_events"`
	TotalLocations   int     `json:"total_locations"`
	TotalCategories  int     `json:"total_categories"`
	TotalCapacity    int     `json:"total_capacity"`
	TotalBookings    int     `json:"total_bookings"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	AvgEventDuration int     `json:"avg_event_duration"`
}

type growthResponse struct {
	EventsThisMonth  int     `json:"events_this_month"`
	EventsLastMonth  int     `json:"events_last_month"`
	GrowthPercentage int     `json:"growth_percentage"`
	PopularCategory  string  `json:"popular_category"`
	PopularLocation  string  `json:"popular_location"`
	AvgTicketPrice   float64 `json:"avg_ticket_price"`
}

type sliceResponse struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

type monthResponse struct {
	Month   string  `json:"month"`
	Year    int     `json:"year"`
	Events  int     `json:"events"`
	Revenue float64 `json:"revenue"`
}
