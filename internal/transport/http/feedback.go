package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

// FeedbackService is the minimal interface needed for feedback endpoints.
type FeedbackService interface {
	CheckEligibility(ctx context.Context, session domain.Session, eventID int64) (domain.Eligibility, error)
	Submit(ctx context.Context, session domain.Session, in app.SubmitFeedbackInput) (domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error)
}

func handleEventFeedback(w http.ResponseWriter, r *http.Request, svc FeedbackService, eventID int64) {
	switch r.Method {
	case http.MethodGet:
		feedbacks, err := svc.ListByEvent(r.Context(), eventID)
		if err != nil {
			writeFeedbackError(w, err)
			return
		}
		resp := feedbackListResponse{
			AverageRating: domain.AverageRating(feedbacks),
			Feedback:      make([]feedbackResponse, 0, len(feedbacks)),
		}
		for _, f := range feedbacks {
			resp.Feedback = append(resp.Feedback, toFeedbackResponse(f))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case http.MethodPost:
		session, ok := requireSession(w, r)
		if !ok {
			return
		}

		var req submitFeedbackRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		feedback, err := svc.Submit(r.Context(), session, app.SubmitFeedbackInput{
			EventID:  eventID,
			Rating:   req.Rating,
			Comments: req.Comments,
		})
		if err != nil {
			writeFeedbackError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toFeedbackResponse(feedback))
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleFeedbackEligibility(w http.ResponseWriter, r *http.Request, svc FeedbackService, eventID int64) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	eligibility, err := svc.CheckEligibility(r.Context(), session, eventID)
	if err != nil {
		writeFeedbackError(w, err)
		return
	}

	resp := eligibilityResponse{
		HasGivenFeedback: eligibility.HasGivenFeedback,
		CanGiveFeedback:  eligibility.CanGiveFeedback,
		Reason:           eligibility.Reason,
	}
	if eligibility.TicketID != 0 {
		resp.TicketID = &eligibility.TicketID
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeFeedbackError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidRating:
		writeError(w, http.StatusBadRequest, codeInvalidRating, err.Error())
	case domain.ErrEmptyComment:
		writeError(w, http.StatusBadRequest, codeEmptyComment, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrNotEligible:
		writeError(w, http.StatusForbidden, codeNotEligible, err.Error())
	case domain.ErrFeedbackExists:
		writeError(w, http.StatusConflict, codeFeedbackExists, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type submitFeedbackRequest struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

type feedbackResponse struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	UserID      int64     `json:"user_id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func toFeedbackResponse(f domain.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:          f.ID,
		EventID:     f.EventID,
		UserID:      f.UserID,
		Rating:      f.Rating,
		Comments:    f.Comments,
		SubmittedAt: f.SubmittedAt,
	}
}

type feedbackListResponse struct {
	AverageRating float64            `json:"average_rating"`
	Feedback      []feedbackResponse `json:"feedback"`
}

type eligibilityResponse struct {
	HasGivenFeedback bool   `json:"has_given_feedback"`
	CanGiveFeedback  bool   `json:"can_give_feedback"`
	TicketID         *int64 `json:"ticket_id,omitempty"`
	Reason           string `json:"reason,omitempty"`
}
