package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventdesk/internal/domain"
)

const eventColumns = `id, name, description, category_id, location_id, user_id,
start_date, end_date, is_active, is_price, price, booked_capacity`

// EventRepository stores events and the reference data they point at.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return r.getEvent(ctx, eventID, false)
}

// GetEventForUpdate locks the event row until the surrounding
// transaction ends, serializing capacity mutations per event id.
func (r *EventRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
	return r.getEvent(ctx, eventID, true)
}

func (r *EventRepository) getEvent(ctx context.Context, eventID int64, forUpdate bool) (domain.Event, error) {
	sql := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	e, err := scanEvent(queryRow(ctx, r.pool, sql, eventID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const sql = `SELECT ` + eventColumns + ` FROM events ORDER BY start_date, id`
	return r.listEvents(ctx, sql)
}

func (r *EventRepository) ListEventsByOrganizer(ctx context.Context, userID int64) ([]domain.Event, error) {
	const sql = `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1 ORDER BY start_date, id`
	return r.listEvents(ctx, sql, userID)
}

func (r *EventRepository) listEvents(ctx context.Context, sql string, args ...any) ([]domain.Event, error) {
	rows, err := query(ctx, r.pool, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) GetLocation(ctx context.Context, locationID int64) (domain.Location, error) {
	const sql = `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	var l domain.Location
	err := queryRow(ctx, r.pool, sql, locationID).Scan(
		&l.ID, &l.Name, &l.Capacity, &l.Address, &l.City, &l.State,
		&l.Country, &l.PostalCode, &l.PrimaryContact, &l.SecondaryContact,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Location{}, domain.ErrLocationNotFound
		}
		return domain.Location{}, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *EventRepository) GetCategory(ctx context.Context, categoryID int64) (domain.Category, error) {
	const sql = `SELECT id, name FROM categories WHERE id = $1`

	var c domain.Category
	if err := queryRow(ctx, r.pool, sql, categoryID).Scan(&c.ID, &c.Name); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (int64, error) {
	const sql = `
INSERT INTO events (name, description, category_id, location_id, user_id,
	start_date, end_date, is_active, is_price, price, booked_capacity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

	var id int64
	err := queryRow(ctx, r.pool, sql,
		event.Name, event.Description, event.CategoryID, event.LocationID, event.UserID,
		event.StartDate, event.EndDate, event.IsActive, event.IsPrice, event.Price, event.BookedCapacity,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const sql = `
UPDATE events
SET name = $2, description = $3, category_id = $4, location_id = $5,
	start_date = $6, end_date = $7, is_active = $8, is_price = $9, price = $10
WHERE id = $1`

	tag, err := exec(ctx, r.pool, sql,
		event.ID, event.Name, event.Description, event.CategoryID, event.LocationID,
		event.StartDate, event.EndDate, event.IsActive, event.IsPrice, event.Price,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// UpdateBookedCapacity persists a ledger value computed under the event
// row lock.
func (r *EventRepository) UpdateBookedCapacity(ctx context.Context, eventID int64, booked int) error {
	const sql = `UPDATE events SET booked_capacity = $2 WHERE id = $1`

	tag, err := exec(ctx, r.pool, sql, eventID, booked)
	if err != nil {
		return fmt.Errorf("update booked capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, eventID int64) error {
	const sql = `DELETE FROM events WHERE id = $1`

	tag, err := exec(ctx, r.pool, sql, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.CategoryID, &e.LocationID, &e.UserID,
		&e.StartDate, &e.EndDate, &e.IsActive, &e.IsPrice, &e.Price, &e.BookedCapacity,
	)
	return e, err
}
