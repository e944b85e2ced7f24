package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/eventdesk/internal/domain"
)

const locationColumns = `id, name, capacity, address, city, state, country, postal_code, primary_contact, secondary_contact`

func (r *EventRepository) CreateLocation(ctx context.Context, location domain.Location) (int64, error) {
	const sql = `
INSERT INTO locations (name, capacity, address, city, state, country, postal_code, primary_contact, secondary_contact)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	var id int64
	err := queryRow(ctx, r.pool, sql,
		location.Name, location.Capacity, location.Address, location.City, location.State,
		location.Country, location.PostalCode, location.PrimaryContact, location.SecondaryContact,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create location: %w", err)
	}
	return id, nil
}

func (r *EventRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	const sql = `
UPDATE locations
SET name = $2, capacity = $3, address = $4, city = $5, state = $6,
	country = $7, postal_code = $8, primary_contact = $9, secondary_contact = $10
WHERE id = $1`

	tag, err := exec(ctx, r.pool, sql,
		location.ID, location.Name, location.Capacity, location.Address, location.City,
		location.State, location.Country, location.PostalCode, location.PrimaryContact, location.SecondaryContact,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

func (r *EventRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	const sql = `SELECT ` + locationColumns + ` FROM locations ORDER BY id`

	rows, err := query(ctx, r.pool, sql)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Capacity, &l.Address, &l.City, &l.State,
			&l.Country, &l.PostalCode, &l.PrimaryContact, &l.SecondaryContact,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *EventRepository) CreateCategory(ctx context.Context, category domain.Category) (int64, error) {
	const sql = `INSERT INTO categories (name) VALUES ($1) RETURNING id`

	var id int64
	if err := queryRow(ctx, r.pool, sql, category.Name).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrCategoryExists
		}
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

func (r *EventRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const sql = `SELECT id, name FROM categories ORDER BY id`

	rows, err := query(ctx, r.pool, sql)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
