package domain

import (
	"math"
	"time"
)

// AvailableSpots is the location capacity minus the event's booked seats,
// clamped at zero so bad data never yields a negative count.
func AvailableSpots(e Event, l Location) int {
	if spots := l.Capacity - e.BookedCapacity; spots > 0 {
		return spots
	}
	return 0
}

// BookingRate is the booked share of the location capacity as a rounded
// percentage, 0 when the capacity is not positive.
func BookingRate(e Event, l Location) int {
	if l.Capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(e.BookedCapacity) / float64(l.Capacity) * 100))
}

// CanReserve reports whether seats can be booked against the event at the
// given instant: the event is not Completed, the request is positive, and
// enough spots remain.
func CanReserve(e Event, l Location, seats int, now time.Time) bool {
	return Reserve(&e, l, seats, now) == nil
}

// Reserve consumes seats from the event's ledger. The event is mutated
// only on success; on error it is left untouched. The invariant
// 0 <= BookedCapacity <= l.Capacity holds afterwards.
func Reserve(e *Event, l Location, seats int, now time.Time) error {
	if ResolveStatus(*e, now) == StatusCompleted {
		return ErrEventClosed
	}
	if seats <= 0 {
		return ErrInvalidSeats
	}
	if seats > AvailableSpots(*e, l) {
		return ErrInsufficientCapacity
	}
	e.BookedCapacity += seats
	return nil
}

// Release returns seats to the event's ledger. Releasing more than is
// booked fails with ErrOverRelease and leaves the event untouched.
func Release(e *Event, seats int) error {
	if seats <= 0 {
		return ErrInvalidSeats
	}
	if seats > e.BookedCapacity {
		return ErrOverRelease
	}
	e.BookedCapacity -= seats
	return nil
}
