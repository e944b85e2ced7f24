package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidID            = "invalid_id"
	codeEventNameRequired    = "event_name_required"
	codeInvalidEventDates    = "invalid_event_dates"
	codeInvalidPrice         = "invalid_price"
	codeEventNotFound        = "event_not_found"
	codeLocationNotFound     = "location_not_found"
	codeLocationNameRequired = "location_name_required"
	codeInvalidCapacity      = "invalid_capacity"
	codeCategoryNotFound     = "category_not_found"
	codeCategoryNameRequired = "category_name_required"
	codeCategoryExists       = "category_exists"
	codeTicketNotFound       = "ticket_not_found"
	codeEventClosed          = "event_closed"
	codeInsufficientCapacity = "insufficient_capacity"
	codeInvalidSeats         = "invalid_seats"
	codeAlreadyCancelled     = "already_cancelled"
	codeEventHasBookings     = "event_has_bookings"
	codeNotEligible          = "not_eligible"
	codeInvalidRating        = "invalid_rating"
	codeEmptyComment         = "empty_comment"
	codeFeedbackExists       = "feedback_exists"
	codePaymentDeclined      = "payment_declined"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
