package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

// EventService is the minimal interface needed for event endpoints.
type EventService interface {
	Create(ctx context.Context, session domain.Session, in app.EventInput) (domain.Event, error)
	Update(ctx context.Context, session domain.Session, eventID int64, in app.EventInput) (domain.Event, error)
	Delete(ctx context.Context, session domain.Session, eventID int64) error
	Get(ctx context.Context, eventID int64) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListOwned(ctx context.Context, session domain.Session) ([]domain.Event, error)
	Availability(ctx context.Context, eventID int64) (app.Availability, error)
}

// HandleEvents returns an HTTP handler for the event collection:
// listing the catalogue and creating events.
func HandleEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			var (
				events []domain.Event
				err    error
			)
			if r.URL.Query().Get("mine") == "1" {
				session, ok := requireSession(w, r)
				if !ok {
					return
				}
				events, err = svc.ListOwned(r.Context(), session)
			} else {
				events, err = svc.List(r.Context())
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]eventResponse, 0, len(events))
			for _, event := range events {
				resp = append(resp, toEventResponse(event))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			session, ok := requireSession(w, r)
			if !ok {
				return
			}
			in, ok := decodeEventInput(w, r)
			if !ok {
				return
			}

			event, err := svc.Create(r.Context(), session, in)
			if err != nil {
				writeEventError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toEventResponse(event))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleEventTree routes everything under /events/{id}: the event
// itself, its availability, and its feedback endpoints.
func HandleEventTree(events EventService, feedback FeedbackService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, tail, ok := parseEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		switch tail {
		case "":
			handleEventByID(w, r, events, eventID)
		case "availability":
			handleEventAvailability(w, r, events, eventID)
		case "feedback":
			handleEventFeedback(w, r, feedback, eventID)
		case "feedback/eligibility":
			handleFeedbackEligibility(w, r, feedback, eventID)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleEventByID(w http.ResponseWriter, r *http.Request, svc EventService, eventID int64) {
	switch r.Method {
	case http.MethodGet:
		event, err := svc.Get(r.Context(), eventID)
		if err != nil {
			writeEventError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	case http.MethodPut:
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		in, ok := decodeEventInput(w, r)
		if !ok {
			return
		}
		event, err := svc.Update(r.Context(), session, eventID, in)
		if err != nil {
			writeEventError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	case http.MethodDelete:
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), session, eventID); err != nil {
			writeEventError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleEventAvailability(w http.ResponseWriter, r *http.Request, svc EventService, eventID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	avail, err := svc.Availability(r.Context(), eventID)
	if err != nil {
		writeEventError(w, err)
		return
	}

	resp := availabilityResponse{
		EventID:        avail.EventID,
		Status:         string(avail.Status),
		Capacity:       avail.Capacity,
		BookedCapacity: avail.BookedCapacity,
		AvailableSpots: avail.AvailableSpots,
		BookingRate:    avail.BookingRate,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func decodeEventInput(w http.ResponseWriter, r *http.Request) (app.EventInput, bool) {
	var req eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.EventInput{}, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeEventNameRequired, domain.ErrEventNameRequired.Error())
		return app.EventInput{}, false
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEventDates, "invalid start_date format")
		return app.EventInput{}, false
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEventDates, "invalid end_date format")
		return app.EventInput{}, false
	}

	return app.EventInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
		StartDate:   startDate,
		EndDate:     endDate,
		IsActive:    req.IsActive,
		IsPrice:     req.IsPrice,
		Price:       req.Price,
	}, true
}

func writeEventError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNameRequired:
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case domain.ErrInvalidEventDates:
		writeError(w, http.StatusBadRequest, codeInvalidEventDates, err.Error())
	case domain.ErrInvalidPrice:
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrLocationNotFound:
		writeError(w, http.StatusNotFound, codeLocationNotFound, err.Error())
	case domain.ErrCategoryNotFound:
		writeError(w, http.StatusNotFound, codeCategoryNotFound, err.Error())
	case domain.ErrEventHasBookings:
		writeError(w, http.StatusConflict, codeEventHasBookings, err.Error())
	case domain.ErrUnauthorized:
		writeError(w, http.StatusForbidden, codeUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type eventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	CategoryID  int64   `json:"category_id"`
	LocationID  int64   `json:"location_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsActive    bool    `json:"is_active"`
	IsPrice     bool    `json:"is_price"`
	Price       float64 `json:"price"`
}

type eventResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CategoryID     int64     `json:"category_id"`
	LocationID     int64     `json:"location_id"`
	UserID         int64     `json:"user_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `json:"is_active"`
	IsPrice        bool      `json:"is_price"`
	Price          float64   `json:"price"`
	BookedCapacity int       `json:"booked_capacity"`
}

func toEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:             event.ID,
		Name:           event.Name,
		Description:    event.Description,
		CategoryID:     event.CategoryID,
		LocationID:     event.LocationID,
		UserID:         event.UserID,
		StartDate:      event.StartDate,
		EndDate:        event.EndDate,
		IsActive:       event.IsActive,
		IsPrice:        event.IsPrice,
		Price:          event.Price,
		BookedCapacity: event.BookedCapacity,
	}
}

type availabilityResponse struct {
	EventID        int64  `json:"event_id"`
	Status         string `json:"status"`
	Capacity       int    `json:"capacity"`
	BookedCapacity int    `json:"booked_capacity"`
	AvailableSpots int    `json:"available_spots"`
	BookingRate    int    `json:"booking_rate"`
}

func parseEventPath(path string) (int64, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "events" || parts[1] == "" {
		return 0, "", false
	}
	eventID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || eventID <= 0 {
		return 0, "", false
	}
	return eventID, strings.Join(parts[2:], "/"), true
}
