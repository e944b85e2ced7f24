package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventdesk/internal/domain"
)

// BookingRepository backs the booking workflow: event rows plus the
// per-(user, event) ticket ledger.
type BookingRepository struct {
	*EventRepository
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{
		EventRepository: NewEventRepository(pool),
		pool:            pool,
	}
}

func (r *BookingRepository) FindTicket(ctx context.Context, userID, eventID int64) (*domain.Ticket, error) {
	return findTicket(ctx, r.pool, userID, eventID)
}

func (r *BookingRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) (int64, error) {
	const sql = `
INSERT INTO tickets (user_id, event_id, ticket_count, status, booking_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	var id int64
	err := queryRow(ctx, r.pool, sql,
		ticket.UserID, ticket.EventID, ticket.TicketCount, ticket.Status, ticket.BookingDate,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("create ticket: %w", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateTicket(ctx context.Context, ticket domain.Ticket) error {
	const sql = `
UPDATE tickets
SET ticket_count = $2, status = $3, booking_date = $4
WHERE id = $1`

	tag, err := exec(ctx, r.pool, sql, ticket.ID, ticket.TicketCount, ticket.Status, ticket.BookingDate)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *BookingRepository) ListTicketsByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	const sql = `
SELECT id, user_id, event_id, ticket_count, status, booking_date
FROM tickets
WHERE user_id = $1
ORDER BY booking_date, id`

	rows, err := query(ctx, r.pool, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets by user: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.UserID, &t.EventID, &t.TicketCount, &t.Status, &t.BookingDate); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets by user: %w", err)
	}
	return tickets, nil
}

func findTicket(ctx context.Context, pool *pgxpool.Pool, userID, eventID int64) (*domain.Ticket, error) {
	const sql = `
SELECT id, user_id, event_id, ticket_count, status, booking_date
FROM tickets
WHERE user_id = $1 AND event_id = $2`

	var t domain.Ticket
	err := queryRow(ctx, pool, sql, userID, eventID).
		Scan(&t.ID, &t.UserID, &t.EventID, &t.TicketCount, &t.Status, &t.BookingDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}
