package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cimillas/eventdesk/internal/domain"
	"github.com/cimillas/eventdesk/internal/testutil"
)

func TestFeedbackRepository_CreateAndList(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewFeedbackRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	event := seedEvent(t, ctx, pool, "Concert", 0)
	firstTicket := testutil.InsertTicket(t, ctx, pool, domain.Ticket{
		UserID: 1, EventID: event.ID, TicketCount: 2,
		Status:      domain.TicketStatusConfirmed,
		BookingDate: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	secondTicket := testutil.InsertTicket(t, ctx, pool, domain.Ticket{
		UserID: 2, EventID: event.ID, TicketCount: 1,
		Status:      domain.TicketStatusConfirmed,
		BookingDate: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
	})

	second := domain.Feedback{
		EventID: event.ID, UserID: 2, TicketID: secondTicket,
		Rating: 5, Comments: "Loved it",
		SubmittedAt: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
	}
	first := domain.Feedback{
		EventID: event.ID, UserID: 1, TicketID: firstTicket,
		Rating: 4, Comments: "Great show",
		SubmittedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	if _, err := repo.CreateFeedback(ctx, second); err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	if _, err := repo.CreateFeedback(ctx, first); err != nil {
		t.Fatalf("create feedback: %v", err)
	}

	feedbacks, err := repo.ListFeedbackByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(feedbacks) != 2 {
		t.Fatalf("expected 2 feedback rows, got %d", len(feedbacks))
	}
	if feedbacks[0].UserID != 1 || feedbacks[1].UserID != 2 {
		t.Fatalf("expected submission order, got %+v", feedbacks)
	}
	if feedbacks[0].Rating != 4 || feedbacks[0].Comments != "Great show" {
		t.Fatalf("unexpected feedback: %+v", feedbacks[0])
	}
}

func TestFeedbackRepository_DuplicateSubmission(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewFeedbackRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	event := seedEvent(t, ctx, pool, "Concert", 0)
	ticketID := testutil.InsertTicket(t, ctx, pool, domain.Ticket{
		UserID: 1, EventID: event.ID, TicketCount: 2,
		Status:      domain.TicketStatusConfirmed,
		BookingDate: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	feedback := domain.Feedback{
		EventID: event.ID, UserID: 1, TicketID: ticketID,
		Rating: 4, Comments: "Great show",
		SubmittedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	if _, err := repo.CreateFeedback(ctx, feedback); err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	if _, err := repo.CreateFeedback(ctx, feedback); !errors.Is(err, domain.ErrFeedbackExists) {
		t.Fatalf("expected ErrFeedbackExists, got %v", err)
	}
}

func TestFeedbackRepository_CreateFeedback_UnknownEvent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewFeedbackRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	feedback := domain.Feedback{
		EventID: 999, UserID: 1, TicketID: 1,
		Rating: 4, Comments: "Great show",
		SubmittedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	if _, err := repo.CreateFeedback(ctx, feedback); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestFeedbackRepository_FindTicket(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewFeedbackRepository(pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	event := seedEvent(t, ctx, pool, "Concert", 0)
	ticketID := testutil.InsertTicket(t, ctx, pool, domain.Ticket{
		UserID: 1, EventID: event.ID, TicketCount: 2,
		Status:      domain.TicketStatusConfirmed,
		BookingDate: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	ticket, err := repo.FindTicket(ctx, 1, event.ID)
	if err != nil {
		t.Fatalf("find ticket: %v", err)
	}
	if ticket == nil || ticket.ID != ticketID {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}

	missing, err := repo.FindTicket(ctx, 2, event.ID)
	if err != nil {
		t.Fatalf("find ticket: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil ticket, got %+v", missing)
	}
}
