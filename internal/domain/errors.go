package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrEventClosed          = errors.New("event already completed")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrOverRelease          = errors.New("releasing more seats than booked")
	ErrInvalidSeats         = errors.New("invalid seat count")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrNotEligible          = errors.New("not eligible for feedback")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrEmptyComment         = errors.New("comments must not be blank")
	ErrFeedbackExists       = errors.New("feedback already submitted")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEventNameRequired    = errors.New("event name required")
	ErrInvalidEventDates    = errors.New("event end date must be after start date")
	ErrInvalidPrice         = errors.New("price must not be negative")
	ErrInvalidCapacity      = errors.New("capacity must be positive")
	ErrLocationNameRequired = errors.New("location name required")
	ErrCategoryNameRequired = errors.New("category name required")
	ErrCategoryExists       = errors.New("category already exists")
	ErrEventHasBookings     = errors.New("event still has bookings")
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrInvalidID            = errors.New("invalid id")
)
