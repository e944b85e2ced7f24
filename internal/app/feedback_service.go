package app

import (
	"context"

	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/domain"
)

type FeedbackRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	FindTicket(ctx context.Context, userID, eventID int64) (*domain.Ticket, error)
	ListFeedbackByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error)
	CreateFeedback(ctx context.Context, feedback domain.Feedback) (int64, error)
}

// FeedbackService runs the eligibility gate and persists submissions.
type FeedbackService struct {
	repo  FeedbackRepository
	clock clock.Clock
}

func NewFeedbackService(repo FeedbackRepository, clk clock.Clock) *FeedbackService {
	return &FeedbackService{
		repo:  repo,
		clock: clk,
	}
}

// CheckEligibility reports whether the session user may review the event.
func (s *FeedbackService) CheckEligibility(ctx context.Context, session domain.Session, eventID int64) (domain.Eligibility, error) {
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Eligibility{}, err
	}
	ticket, err := s.repo.FindTicket(ctx, session.UserID, eventID)
	if err != nil {
		return domain.Eligibility{}, err
	}
	feedbacks, err := s.repo.ListFeedbackByEvent(ctx, eventID)
	if err != nil {
		return domain.Eligibility{}, err
	}
	return domain.CheckEligibility(session.UserID, event, ticket, feedbacks, s.clock.Now()), nil
}

type SubmitFeedbackInput struct {
	EventID  int64
	Rating   int
	Comments string
}

// Submit validates and stores feedback. Eligibility is re-checked inside
// the write transaction rather than trusted from an earlier read.
func (s *FeedbackService) Submit(ctx context.Context, session domain.Session, in SubmitFeedbackInput) (domain.Feedback, error) {
	if err := domain.ValidateFeedback(in.Rating, in.Comments); err != nil {
		return domain.Feedback{}, err
	}

	now := s.clock.Now()
	var result domain.Feedback

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}
		ticket, err := s.repo.FindTicket(txCtx, session.UserID, in.EventID)
		if err != nil {
			return err
		}
		feedbacks, err := s.repo.ListFeedbackByEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}

		eligibility := domain.CheckEligibility(session.UserID, event, ticket, feedbacks, now)
		if !eligibility.CanGiveFeedback {
			return domain.ErrNotEligible
		}

		feedback := domain.Feedback{
			EventID:     in.EventID,
			UserID:      session.UserID,
			TicketID:    eligibility.TicketID,
			Rating:      in.Rating,
			Comments:    in.Comments,
			SubmittedAt: now,
		}
		id, err := s.repo.CreateFeedback(txCtx, feedback)
		if err != nil {
			return err
		}
		feedback.ID = id
		result = feedback
		return nil
	})
	if err != nil {
		return domain.Feedback{}, err
	}
	return result, nil
}

// ListByEvent returns an event's feedback for display alongside its
// average rating.
func (s *FeedbackService) ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListFeedbackByEvent(ctx, eventID)
}
