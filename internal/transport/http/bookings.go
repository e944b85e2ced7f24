package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

// BookingService is the minimal interface needed for booking endpoints.
type BookingService interface {
	Book(ctx context.Context, session domain.Session, in app.BookInput) (domain.Ticket, error)
	Cancel(ctx context.Context, session domain.Session, in app.CancelInput) (domain.Ticket, error)
	ListMine(ctx context.Context, session domain.Session) ([]domain.Ticket, error)
}

// HandleBookings returns an HTTP handler for the booking endpoints:
// GET /bookings lists the caller's tickets, POST /bookings books seats,
// POST /bookings/cancel releases them.
func HandleBookings(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		switch strings.Trim(r.URL.Path, "/") {
		case "bookings":
			switch r.Method {
			case http.MethodGet:
				listBookings(w, r, svc, session)
				return
			case http.MethodPost:
			default:
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}

			var req bookRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.EventID <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}

			ticket, err := svc.Book(r.Context(), session, app.BookInput{
				EventID:     req.EventID,
				TicketCount: req.TicketCount,
			})
			if err != nil {
				writeBookingError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toTicketResponse(ticket))
		case "bookings/cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}

			var req cancelRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.EventID <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}

			ticket, err := svc.Cancel(r.Context(), session, app.CancelInput{EventID: req.EventID})
			if err != nil {
				writeBookingError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toTicketResponse(ticket))
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func listBookings(w http.ResponseWriter, r *http.Request, svc BookingService, session domain.Session) {
	tickets, err := svc.ListMine(r.Context(), session)
	if err != nil {
		writeBookingError(w, err)
		return
	}

	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrLocationNotFound:
		writeError(w, http.StatusNotFound, codeLocationNotFound, err.Error())
	case domain.ErrTicketNotFound:
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case domain.ErrInvalidSeats:
		writeError(w, http.StatusBadRequest, codeInvalidSeats, err.Error())
	case domain.ErrEventClosed:
		writeError(w, http.StatusConflict, codeEventClosed, err.Error())
	case domain.ErrInsufficientCapacity:
		writeError(w, http.StatusConflict, codeInsufficientCapacity, err.Error())
	case domain.ErrAlreadyCancelled:
		writeError(w, http.StatusConflict, codeAlreadyCancelled, err.Error())
	case domain.ErrPaymentDeclined:
		writeError(w, http.StatusPaymentRequired, codePaymentDeclined, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type bookRequest struct {
	EventID     int64 `json:"event_id"`
	TicketCount int   `json:"ticket_count"`
}

type cancelRequest struct {
	EventID int64 `json:"event_id"`
}

type ticketResponse struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	UserID      int64     `json:"user_id"`
	TicketCount int       `json:"ticket_count"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"booking_date"`
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:          t.ID,
		EventID:     t.EventID,
		UserID:      t.UserID,
		TicketCount: t.TicketCount,
		Status:      string(t.Status),
		BookingDate: t.BookingDate,
	}
}
