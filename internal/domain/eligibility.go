package domain

import "time"

// Eligibility reasons surfaced to the caller. Machine-readable, never
// user-facing copy.
const (
	ReasonNotBooked         = "not booked"
	ReasonEventNotCompleted = "event not yet completed"
	ReasonAlreadySubmitted  = "already submitted"
)

// Eligibility is the computed right of one user to review one event.
type Eligibility struct {
	HasGivenFeedback bool
	CanGiveFeedback  bool
	TicketID         int64
	Reason           string
}

// CheckEligibility decides whether userID may submit feedback for the
// event: a ticket must exist for the pair (any status counts as
// ever-booked), the event must be Completed at now, and no feedback may
// exist yet. Pure; repeated calls with the same inputs agree.
func CheckEligibility(userID int64, e Event, ticket *Ticket, feedbacks []Feedback, now time.Time) Eligibility {
	var result Eligibility

	for _, f := range feedbacks {
		if f.UserID == userID && f.EventID == e.ID {
			result.HasGivenFeedback = true
			break
		}
	}

	if ticket == nil {
		result.Reason = ReasonNotBooked
		return result
	}
	result.TicketID = ticket.ID

	if result.HasGivenFeedback {
		result.Reason = ReasonAlreadySubmitted
		return result
	}
	if ResolveStatus(e, now) != StatusCompleted {
		result.Reason = ReasonEventNotCompleted
		return result
	}

	result.CanGiveFeedback = true
	return result
}
