package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventdesk/internal/analytics"
)

// SnapshotRepository reads the point-in-time collections the analytics
// aggregator derives from. No locking: staleness is acceptable.
type SnapshotRepository struct {
	events *EventRepository
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{events: NewEventRepository(pool)}
}

func (r *SnapshotRepository) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	events, err := r.events.ListEvents(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	locations, err := r.events.ListLocations(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	categories, err := r.events.ListCategories(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	return analytics.Snapshot{
		Events:     events,
		Locations:  locations,
		Categories: categories,
	}, nil
}
