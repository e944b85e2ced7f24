package app

import (
	"context"

	"github.com/cimillas/eventdesk/internal/domain"
)

type CatalogRepository interface {
	GetLocation(ctx context.Context, locationID int64) (domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, location domain.Location) (int64, error)
	UpdateLocation(ctx context.Context, location domain.Location) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (int64, error)
}

// CatalogService manages the reference data events point at: venues and
// categories. Reads are open to everyone; mutations are admin-only.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

type LocationInput struct {
	Name             string
	Capacity         int
	Address          string
	City             string
	State            string
	Country          string
	PostalCode       string
	PrimaryContact   string
	SecondaryContact string
}

func (s *CatalogService) CreateLocation(ctx context.Context, session domain.Session, in LocationInput) (domain.Location, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Location{}, domain.ErrUnauthorized
	}

	location := buildLocation(in)
	if err := domain.ValidateLocation(location); err != nil {
		return domain.Location{}, err
	}

	id, err := s.repo.CreateLocation(ctx, location)
	if err != nil {
		return domain.Location{}, err
	}
	location.ID = id
	return location, nil
}

func (s *CatalogService) UpdateLocation(ctx context.Context, session domain.Session, locationID int64, in LocationInput) (domain.Location, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Location{}, domain.ErrUnauthorized
	}
	if _, err := s.repo.GetLocation(ctx, locationID); err != nil {
		return domain.Location{}, err
	}

	location := buildLocation(in)
	location.ID = locationID
	if err := domain.ValidateLocation(location); err != nil {
		return domain.Location{}, err
	}

	if err := s.repo.UpdateLocation(ctx, location); err != nil {
		return domain.Location{}, err
	}
	return location, nil
}

func (s *CatalogService) GetLocation(ctx context.Context, locationID int64) (domain.Location, error) {
	return s.repo.GetLocation(ctx, locationID)
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, session domain.Session, name string) (domain.Category, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Category{}, domain.ErrUnauthorized
	}

	category := domain.Category{Name: name}
	if err := domain.ValidateCategory(category); err != nil {
		return domain.Category{}, err
	}

	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	category.ID = id
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func buildLocation(in LocationInput) domain.Location {
	return domain.Location{
		Name:             in.Name,
		Capacity:         in.Capacity,
		Address:          in.Address,
		City:             in.City,
		State:            in.State,
		Country:          in.Country,
		PostalCode:       in.PostalCode,
		PrimaryContact:   in.PrimaryContact,
		SecondaryContact: in.SecondaryContact,
	}
}
