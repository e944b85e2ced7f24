package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventdesk/internal/domain"
)

// FeedbackRepository backs the eligibility gate and feedback writes.
type FeedbackRepository struct {
	*EventRepository
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		EventRepository: NewEventRepository(pool),
		pool:            pool,
	}
}

func (r *FeedbackRepository) FindTicket(ctx context.Context, userID, eventID int64) (*domain.Ticket, error) {
	return findTicket(ctx, r.pool, userID, eventID)
}

func (r *FeedbackRepository) ListFeedbackByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error) {
	const sql = `
SELECT id, event_id, user_id, ticket_id, rating, comments, submitted_at
FROM feedback
WHERE event_id = $1
ORDER BY submitted_at, id`

	rows, err := query(ctx, r.pool, sql, eventID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.EventID, &f.UserID, &f.TicketID, &f.Rating, &f.Comments, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback domain.Feedback) (int64, error) {
	const sql = `
INSERT INTO feedback (event_id, user_id, ticket_id, rating, comments, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	var id int64
	err := queryRow(ctx, r.pool, sql,
		feedback.EventID, feedback.UserID, feedback.TicketID,
		feedback.Rating, feedback.Comments, feedback.SubmittedAt,
	).Scan(&id)
	if err != nil {
		// The (user_id, event_id) unique index backs up the gate when
		// two submissions race.
		if isUniqueViolation(err) {
			return 0, domain.ErrFeedbackExists
		}
		if isForeignKeyViolation(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("create feedback: %w", err)
	}
	return id, nil
}
