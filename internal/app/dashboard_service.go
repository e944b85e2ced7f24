package app

import (
	"context"

	"github.com/cimillas/eventdesk/internal/analytics"
	"github.com/cimillas/eventdesk/internal/clock"
	"github.com/cimillas/eventdesk/internal/domain"
)

type SnapshotRepository interface {
	Snapshot(ctx context.Context) (analytics.Snapshot, error)
}

const upcomingListLimit = 5

// Dashboard is the full analytics bundle handed to presentation.
type Dashboard struct {
	Stats        analytics.SummaryStats
	Growth       analytics.GrowthAnalytics
	Distribution []analytics.CategorySlice
	Monthly      []analytics.MonthPoint
	Upcoming     []domain.Event
}

// DashboardService fetches one snapshot per load and derives everything
// from it with the injected clock.
type DashboardService struct {
	repo  SnapshotRepository
	clock clock.Clock
}

func NewDashboardService(repo SnapshotRepository, clk clock.Clock) *DashboardService {
	return &DashboardService{
		repo:  repo,
		clock: clk,
	}
}

func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.clock.Now()
	return Dashboard{
		Stats:        analytics.Summarize(snapshot, now),
		Growth:       analytics.Growth(snapshot, now),
		Distribution: analytics.CategoryDistribution(snapshot),
		Monthly:      analytics.MonthlySeries(snapshot, now),
		Upcoming:     analytics.UpcomingEvents(snapshot, now, upcomingListLimit),
	}, nil
}
