package app

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/domain"
)

func TestEventService_Create(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	organizer := domain.Session{UserID: 7, Role: domain.RoleAdmin}
	attendee := domain.Session{UserID: 8, Role: domain.RoleUser}

	valid := EventInput{
		Name:       "Summer Gala",
		CategoryID: 1,
		LocationID: 1,
		StartDate:  start,
		EndDate:    start.Add(4 * time.Hour),
		IsActive:   true,
		IsPrice:    true,
		Price:      25,
	}

	makeSvc := func() (*EventService, *fakeEventRepo) {
		repo := newFakeEventRepo(
			nil,
			[]domain.Location{{ID: 1, Name: "Town Hall", Capacity: 100}},
			[]domain.Category{{ID: 1, Name: "Music"}},
		)
		return NewEventService(repo, clock.NewFixed(start.Add(-time.Hour))), repo
	}

	t.Run("organizer creates an event with an empty ledger", func(t *testing.T) {
		svc, repo := makeSvc()
		event, err := svc.Create(context.Background(), organizer, valid)
		if err != nil {
			t.Fatalf("expected create to succeed, got %v", err)
		}
		if event.ID == 0 {
			t.Fatalf("expected assigned id")
		}
		if event.UserID != organizer.UserID {
			t.Fatalf("expected owner %d, got %d", organizer.UserID, event.UserID)
		}
		if event.BookedCapacity != 0 {
			t.Fatalf("expected empty ledger, got %d", event.BookedCapacity)
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected 1 stored event, got %d", len(repo.events))
		}
	})

	t.Run("attendees cannot create events", func(t *testing.T) {
		svc, _ := makeSvc()
		if _, err := svc.Create(context.Background(), attendee, valid); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		svc, _ := makeSvc()
		bad := valid
		bad.EndDate = start.Add(-time.Hour)
		if _, err := svc.Create(context.Background(), organizer, bad); err != domain.ErrInvalidEventDates {
			t.Fatalf("expected ErrInvalidEventDates, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, _ := makeSvc()
		bad := valid
		bad.CategoryID = 99
		if _, err := svc.Create(context.Background(), organizer, bad); err != domain.ErrCategoryNotFound {
			t.Fatalf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		svc, _ := makeSvc()
		bad := valid
		bad.LocationID = 99
		if _, err := svc.Create(context.Background(), organizer, bad); err != domain.ErrLocationNotFound {
			t.Fatalf("expected ErrLocationNotFound, got %v", err)
		}
	})

	t.Run("free events store a zero price", func(t *testing.T) {
		svc, _ := makeSvc()
		free := valid
		free.IsPrice = false
		free.Price = 99
		event, err := svc.Create(context.Background(), organizer, free)
		if err != nil {
			t.Fatalf("expected create to succeed, got %v", err)
		}
		if event.Price != 0 {
			t.Fatalf("expected zero price, got %v", event.Price)
		}
	})
}

func TestEventService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	owner := domain.Session{UserID: 7, Role: domain.RoleAdmin}
	stranger := domain.Session{UserID: 8, Role: domain.RoleAdmin}

	stored := domain.Event{
		ID:             1,
		Name:           "Summer Gala",
		CategoryID:     1,
		LocationID:     1,
		UserID:         7,
		StartDate:      start,
		EndDate:        start.Add(4 * time.Hour),
		IsActive:       true,
		BookedCapacity: 12,
	}
	input := EventInput{
		Name:       "Summer Gala (rescheduled)",
		CategoryID: 1,
		LocationID: 1,
		StartDate:  start.Add(24 * time.Hour),
		EndDate:    start.Add(28 * time.Hour),
		IsActive:   true,
	}

	makeSvc := func(events ...domain.Event) (*EventService, *fakeEventRepo) {
		repo := newFakeEventRepo(
			events,
			[]domain.Location{{ID: 1, Name: "Town Hall", Capacity: 100}},
			[]domain.Category{{ID: 1, Name: "Music"}},
		)
		return NewEventService(repo, clock.NewFixed(start.Add(-time.Hour))), repo
	}

	t.Run("owner updates without touching the ledger", func(t *testing.T) {
		svc, repo := makeSvc(stored)
		event, err := svc.Update(context.Background(), owner, 1, input)
		if err != nil {
			t.Fatalf("expected update to succeed, got %v", err)
		}
		if event.Name != input.Name {
			t.Fatalf("expected renamed event, got %q", event.Name)
		}
		if event.BookedCapacity != 12 {
			t.Fatalf("expected ledger preserved, got %d", event.BookedCapacity)
		}
		if repo.events[1].Name != input.Name {
			t.Fatalf("expected stored event renamed")
		}
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		svc, _ := makeSvc(stored)
		if _, err := svc.Update(context.Background(), stranger, 1, input); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		svc, _ := makeSvc(stored)
		if err := svc.Delete(context.Background(), stranger, 1); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("delete refuses while bookings exist", func(t *testing.T) {
		svc, repo := makeSvc(stored)
		if err := svc.Delete(context.Background(), owner, 1); err != domain.ErrEventHasBookings {
			t.Fatalf("expected ErrEventHasBookings, got %v", err)
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected event kept")
		}
	})

	t.Run("delete succeeds with an empty ledger", func(t *testing.T) {
		empty := stored
		empty.BookedCapacity = 0
		svc, repo := makeSvc(empty)
		if err := svc.Delete(context.Background(), owner, 1); err != nil {
			t.Fatalf("expected delete to succeed, got %v", err)
		}
		if len(repo.events) != 0 {
			t.Fatalf("expected event removed")
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := makeSvc()
		if _, err := svc.Update(context.Background(), owner, 99, input); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

func TestEventService_ListOwned(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	events := []domain.Event{
		{ID: 1, UserID: 7, Name: "A", StartDate: start, EndDate: start.Add(time.Hour)},
		{ID: 2, UserID: 8, Name: "B", StartDate: start, EndDate: start.Add(time.Hour)},
		{ID: 3, UserID: 7, Name: "C", StartDate: start, EndDate: start.Add(time.Hour)},
	}
	repo := newFakeEventRepo(events, nil, nil)
	svc := NewEventService(repo, clock.NewFixed(start))

	owned, err := svc.ListOwned(context.Background(), domain.Session{UserID: 7, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(owned) != 2 {
		t.Fatalf("expected 2 owned events, got %d", len(owned))
	}

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
}

func TestEventService_Availability(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	event := domain.Event{
		ID:             1,
		Name:           "Summer Gala",
		LocationID:     1,
		UserID:         7,
		StartDate:      start,
		EndDate:        start.Add(4 * time.Hour),
		IsActive:       true,
		BookedCapacity: 25,
	}
	repo := newFakeEventRepo(
		[]domain.Event{event},
		[]domain.Location{{ID: 1, Name: "Town Hall", Capacity: 100}},
		nil,
	)
	svc := NewEventService(repo, clock.NewFixed(start.Add(time.Hour)))

	avail, err := svc.Availability(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected availability to succeed, got %v", err)
	}
	if avail.Status != domain.StatusOngoing {
		t.Fatalf("expected Ongoing, got %v", avail.Status)
	}
	if avail.AvailableSpots != 75 {
		t.Fatalf("expected 75 spots, got %d", avail.AvailableSpots)
	}
	if avail.BookingRate != 25 {
		t.Fatalf("expected 25%% rate, got %d", avail.BookingRate)
	}
	if avail.Capacity != 100 || avail.BookedCapacity != 25 {
		t.Fatalf("unexpected availability: %+v", avail)
	}

	if _, err := svc.Availability(context.Background(), 99); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

type fakeEventRepo struct {
	events     map[int64]domain.Event
	locations  map[int64]domain.Location
	categories map[int64]domain.Category
	nextID     int64
}

func newFakeEventRepo(events []domain.Event, locations []domain.Location, categories []domain.Category) *fakeEventRepo {
	repo := &fakeEventRepo{
		events:     make(map[int64]domain.Event),
		locations:  make(map[int64]domain.Location),
		categories: make(map[int64]domain.Category),
		nextID:     100,
	}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	for _, l := range locations {
		repo.locations[l.ID] = l
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (f *fakeEventRepo) GetEvent(_ context.Context, eventID int64) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) ListEvents(_ context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListEventsByOrganizer(_ context.Context, userID int64) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetLocation(_ context.Context, locationID int64) (domain.Location, error) {
	l, ok := f.locations[locationID]
	if !ok {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return l, nil
}

func (f *fakeEventRepo) GetCategory(_ context.Context, categoryID int64) (domain.Category, error) {
	c, ok := f.categories[categoryID]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event domain.Event) (int64, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event
	return event.ID, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, eventID int64) error {
	if _, ok := f.events[eventID]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.events, eventID)
	return nil
}
