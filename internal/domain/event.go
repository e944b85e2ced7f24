package domain

import "time"

// Status is an event's lifecycle state, always derived from the event's
// time bounds and a caller-supplied instant. It is never stored.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusUpcoming  Status = "Upcoming"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

// Event is a ticketed happening at a location. BookedCapacity is the
// ledger of consumed seats and stays within the location's capacity.
type Event struct {
	ID             int64
	Name           string
	Description    string
	CategoryID     int64
	LocationID     int64
	UserID         int64
	StartDate      time.Time
	EndDate        time.Time
	IsActive       bool
	IsPrice        bool
	Price          float64
	BookedCapacity int
}

// ResolveStatus maps an event's active flag and time bounds to its
// lifecycle state at the given instant. Exactly one state holds for any
// input; inactive events are Draft regardless of dates.
func ResolveStatus(e Event, now time.Time) Status {
	if !e.IsActive {
		return StatusDraft
	}
	if now.Before(e.StartDate) {
		return StatusUpcoming
	}
	if now.After(e.EndDate) {
		return StatusCompleted
	}
	return StatusOngoing
}

// ValidateEvent checks the creation/update invariants: a name, end after
// start, and a non-negative price when the event is priced.
func ValidateEvent(e Event) error {
	if e.Name == "" {
		return ErrEventNameRequired
	}
	if !e.EndDate.After(e.StartDate) {
		return ErrInvalidEventDates
	}
	if e.IsPrice && e.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
