package app

import (
	"context"
	"time"

	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/domain"
)

type EventRepository interface {
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListEventsByOrganizer(ctx context.Context, userID int64) ([]domain.Event, error)
	GetLocation(ctx context.Context, locationID int64) (domain.Location, error)
	GetCategory(ctx context.Context, categoryID int64) (domain.Category, error)
	CreateEvent(ctx context.Context, event domain.Event) (int64, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, eventID int64) error
}

// EventService owns organizer-facing event management. Mutations are
// restricted to the organizer whose id matches the event's UserID.
type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{repo: repo, clock: clk}
}

type EventInput struct {
	Name        string
	Description string
	CategoryID  int64
	LocationID  int64
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	IsPrice     bool
	Price       float64
}

func (s *EventService) Create(ctx context.Context, session domain.Session, in EventInput) (domain.Event, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Event{}, domain.ErrUnauthorized
	}

	event, err := s.buildEvent(ctx, session.UserID, in)
	if err != nil {
		return domain.Event{}, err
	}
	event.BookedCapacity = 0

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}
	event.ID = id
	return event, nil
}

func (s *EventService) Update(ctx context.Context, session domain.Session, eventID int64, in EventInput) (domain.Event, error) {
	existing, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if existing.UserID != session.UserID {
		return domain.Event{}, domain.ErrUnauthorized
	}

	event, err := s.buildEvent(ctx, existing.UserID, in)
	if err != nil {
		return domain.Event{}, err
	}
	event.ID = existing.ID
	// Edits never touch the ledger.
	event.BookedCapacity = existing.BookedCapacity

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// Delete removes an owned event, refusing while any seats remain booked.
func (s *EventService) Delete(ctx context.Context, session domain.Session, eventID int64) error {
	existing, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if existing.UserID != session.UserID {
		return domain.ErrUnauthorized
	}
	if existing.BookedCapacity > 0 {
		return domain.ErrEventHasBookings
	}
	return s.repo.DeleteEvent(ctx, eventID)
}

func (s *EventService) Get(ctx context.Context, eventID int64) (domain.Event, error) {
	return s.repo.GetEvent(ctx, eventID)
}

// Availability is the live booking picture for one event.
type Availability struct {
	EventID        int64
	Status         domain.Status
	Capacity       int
	BookedCapacity int
	AvailableSpots int
	BookingRate    int
}

func (s *EventService) Availability(ctx context.Context, eventID int64) (Availability, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return Availability{}, err
	}
	location, err := s.repo.GetLocation(ctx, event.LocationID)
	if err != nil {
		return Availability{}, err
	}
	return Availability{
		EventID:        event.ID,
		Status:         domain.ResolveStatus(event, s.clock.Now()),
		Capacity:       location.Capacity,
		BookedCapacity: event.BookedCapacity,
		AvailableSpots: domain.AvailableSpots(event, location),
		BookingRate:    domain.BookingRate(event, location),
	}, nil
}

// List returns every event for attendees browsing the catalogue.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

// ListOwned returns the session organizer's events only.
func (s *EventService) ListOwned(ctx context.Context, session domain.Session) ([]domain.Event, error) {
	return s.repo.ListEventsByOrganizer(ctx, session.UserID)
}

func (s *EventService) buildEvent(ctx context.Context, userID int64, in EventInput) (domain.Event, error) {
	event := domain.Event{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		UserID:      userID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    in.IsActive,
		IsPrice:     in.IsPrice,
		Price:       in.Price,
	}
	if !event.IsPrice {
		event.Price = 0
	}
	if err := domain.ValidateEvent(event); err != nil {
		return domain.Event{}, err
	}

	if _, err := s.repo.GetCategory(ctx, event.CategoryID); err != nil {
		return domain.Event{}, err
	}
	if _, err := s.repo.GetLocation(ctx, event.LocationID); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}
