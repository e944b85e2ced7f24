package domain

import (
	"math"
	"strings"
	"time"
)

// Feedback is immutable once created; at most one exists per (user, event).
type Feedback struct {
	ID          int64
	EventID     int64
	UserID      int64
	TicketID    int64
	Rating      int
	Comments    string
	SubmittedAt time.Time
}

// ValidateFeedback checks the submission invariants: rating in [1,5] and
// a non-blank comment.
func ValidateFeedback(rating int, comments string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(comments) == "" {
		return ErrEmptyComment
	}
	return nil
}

// AverageRating is the mean rating rounded to one decimal, 0 with no
// feedback.
func AverageRating(feedbacks []Feedback) float64 {
	if len(feedbacks) == 0 {
		return 0
	}
	sum := 0
	for _, f := range feedbacks {
		sum += f.Rating
	}
	return math.Round(float64(sum)/float64(len(feedbacks))*10) / 10
}
