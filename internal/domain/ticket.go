package domain

import "time"

type TicketStatus string

const (
	TicketStatusConfirmed TicketStatus = "Confirmed"
	TicketStatusCancelled TicketStatus = "Cancelled"
)

// Ticket is one (user, event) booking record. A pair keeps a single
// ticket row across booking/cancel cycles; re-booking flips the row back
// to Confirmed rather than creating a second one.
type Ticket struct {
	ID          int64
	UserID      int64
	EventID     int64
	TicketCount int
	Status      TicketStatus
	BookingDate time.Time
}
