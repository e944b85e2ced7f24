package app

import (
	"context"
	"errors"
	"math"

	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/domain"
)

// BookingRepository is the storage contract for the booking workflow.
// GetEventForUpdate must lock the event row for the duration of the
// surrounding transaction so concurrent reservations against the same
// event serialize instead of both passing the capacity check.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	GetLocation(ctx context.Context, locationID int64) (domain.Location, error)
	FindTicket(ctx context.Context, userID, eventID int64) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, ticket domain.Ticket) (int64, error)
	UpdateTicket(ctx context.Context, ticket domain.Ticket) error
	UpdateBookedCapacity(ctx context.Context, eventID int64, booked int) error
	ListTicketsByUser(ctx context.Context, userID int64) ([]domain.Ticket, error)
}

// PaymentConfirmer is the opaque payment collaborator. Confirm either
// accepts the charge or fails; the ledger is only touched afterwards.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, amountCents int64) error
}

// BookingService coordinates booking and cancellation: capacity check,
// payment confirmation, then a transactional ledger update. A failure at
// any step leaves the ledger unmodified.
type BookingService struct {
	repo     BookingRepository
	payments PaymentConfirmer
	clock    clock.Clock
}

func NewBookingService(repo BookingRepository, payments PaymentConfirmer, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:     repo,
		payments: payments,
		clock:    clk,
	}
}

type BookInput struct {
	EventID     int64
	TicketCount int
}

// Book reserves seats for the session's user. The pre-check runs against
// a snapshot; the authoritative check repeats under the event row lock,
// so payment latency never holds the lock and a sold-out race surfaces as
// ErrInsufficientCapacity after the fact.
func (s *BookingService) Book(ctx context.Context, session domain.Session, in BookInput) (domain.Ticket, error) {
	now := s.clock.Now()

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return domain.Ticket{}, err
	}
	location, err := s.repo.GetLocation(ctx, event.LocationID)
	if err != nil {
		return domain.Ticket{}, err
	}

	check := event
	if err := domain.Reserve(&check, location, in.TicketCount, now); err != nil {
		return domain.Ticket{}, err
	}

	if event.IsPrice {
		amount := int64(math.Round(event.Price * 100 * float64(in.TicketCount)))
		if err := s.payments.Confirm(ctx, amount); err != nil {
			if errors.Is(err, domain.ErrPaymentDeclined) {
				return domain.Ticket{}, domain.ErrPaymentDeclined
			}
			return domain.Ticket{}, err
		}
	}

	var result domain.Ticket
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		locked, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		// The venue may have changed since the snapshot; the ceiling for
		// the authoritative check comes from inside the transaction.
		venue, err := s.repo.GetLocation(txCtx, locked.LocationID)
		if err != nil {
			return err
		}
		if err := domain.Reserve(&locked, venue, in.TicketCount, now); err != nil {
			return err
		}

		ticket, err := s.repo.FindTicket(txCtx, session.UserID, in.EventID)
		if err != nil {
			return err
		}
		if ticket == nil {
			fresh := domain.Ticket{
				UserID:      session.UserID,
				EventID:     in.EventID,
				TicketCount: in.TicketCount,
				Status:      domain.TicketStatusConfirmed,
				BookingDate: now,
			}
			id, err := s.repo.CreateTicket(txCtx, fresh)
			if err != nil {
				return err
			}
			fresh.ID = id
			result = fresh
		} else {
			// One ticket row per (user, event): a confirmed booking
			// accrues seats, a cancelled one is revived with the new
			// count.
			if ticket.Status == domain.TicketStatusConfirmed {
				ticket.TicketCount += in.TicketCount
			} else {
				ticket.TicketCount = in.TicketCount
				ticket.Status = domain.TicketStatusConfirmed
			}
			ticket.BookingDate = now
			if err := s.repo.UpdateTicket(txCtx, *ticket); err != nil {
				return err
			}
			result = *ticket
		}

		return s.repo.UpdateBookedCapacity(txCtx, in.EventID, locked.BookedCapacity)
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return result, nil
}

// ListMine returns the session user's tickets across all events,
// cancelled ones included.
func (s *BookingService) ListMine(ctx context.Context, session domain.Session) ([]domain.Ticket, error) {
	return s.repo.ListTicketsByUser(ctx, session.UserID)
}

type CancelInput struct {
	EventID int64
}

// Cancel releases the session user's confirmed booking: the event must
// not have ended, the ticket flips to Cancelled, and its seats return to
// the ledger in the same transaction.
func (s *BookingService) Cancel(ctx context.Context, session domain.Session, in CancelInput) (domain.Ticket, error) {
	now := s.clock.Now()

	var result domain.Ticket
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if domain.ResolveStatus(event, now) == domain.StatusCompleted {
			return domain.ErrEventClosed
		}

		ticket, err := s.repo.FindTicket(txCtx, session.UserID, in.EventID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return domain.ErrTicketNotFound
		}
		if ticket.Status == domain.TicketStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		if err := domain.Release(&event, ticket.TicketCount); err != nil {
			return err
		}

		ticket.Status = domain.TicketStatusCancelled
		if err := s.repo.UpdateTicket(txCtx, *ticket); err != nil {
			return err
		}
		if err := s.repo.UpdateBookedCapacity(txCtx, in.EventID, event.BookedCapacity); err != nil {
			return err
		}

		result = *ticket
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return result, nil
}
