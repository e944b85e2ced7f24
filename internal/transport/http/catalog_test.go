package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

type stubCatalogService struct {
	locations  map[int64]domain.Location
	categories []domain.Category

	createLocationErr error
	updateLocationErr error
	createCategoryErr error
}

func (s *stubCatalogService) CreateLocation(_ context.Context, session domain.Session, in app.LocationInput) (domain.Location, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Location{}, domain.ErrUnauthorized
	}
	if s.createLocationErr != nil {
		return domain.Location{}, s.createLocationErr
	}
	return domain.Location{ID: 1, Name: in.Name, Capacity: in.Capacity, City: in.City}, nil
}

func (s *stubCatalogService) UpdateLocation(_ context.Context, session domain.Session, locationID int64, in app.LocationInput) (domain.Location, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Location{}, domain.ErrUnauthorized
	}
	if s.updateLocationErr != nil {
		return domain.Location{}, s.updateLocationErr
	}
	return domain.Location{ID: locationID, Name: in.Name, Capacity: in.Capacity}, nil
}

func (s *stubCatalogService) GetLocation(_ context.Context, locationID int64) (domain.Location, error) {
	l, ok := s.locations[locationID]
	if !ok {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return l, nil
}

func (s *stubCatalogService) ListLocations(_ context.Context) ([]domain.Location, error) {
	var out []domain.Location
	for id := int64(1); id <= 100; id++ {
		if l, ok := s.locations[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubCatalogService) CreateCategory(_ context.Context, session domain.Session, name string) (domain.Category, error) {
	if session.Role != domain.RoleAdmin {
		return domain.Category{}, domain.ErrUnauthorized
	}
	if s.createCategoryErr != nil {
		return domain.Category{}, s.createCategoryErr
	}
	return domain.Category{ID: 1, Name: name}, nil
}

func (s *stubCatalogService) ListCategories(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func TestHandleLocations_List(t *testing.T) {
	t.Parallel()

	svc := &stubCatalogService{locations: map[int64]domain.Location{
		1: {ID: 1, Name: "Main Hall", Capacity: 200},
		2: {ID: 2, Name: "Annex", Capacity: 80},
	}}
	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rec := httptest.NewRecorder()

	HandleLocations(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []locationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Main Hall", got[0].Name)
	assert.Equal(t, 80, got[1].Capacity)
}

func TestHandleLocations_Create(t *testing.T) {
	t.Parallel()

	svc := &stubCatalogService{}
	body := `{"name":"Main Hall","capacity":200,"city":"Lisbon"}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/locations", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	HandleLocations(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got locationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Main Hall", got.Name)
	assert.Equal(t, "Lisbon", got.City)
}

func TestHandleLocations_CreateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		admin      bool
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"attendees cannot create", `{"name":"Main Hall","capacity":200}`, false, nil, http.StatusForbidden, codeUnauthorized},
		{"malformed body", `{"name":`, true, nil, http.StatusBadRequest, codeInvalidRequestBody},
		{"unknown field", `{"name":"Main Hall","seats":10}`, true, nil, http.StatusBadRequest, codeInvalidRequestBody},
		{"missing name", `{"capacity":200}`, true, domain.ErrLocationNameRequired, http.StatusBadRequest, codeLocationNameRequired},
		{"zero capacity", `{"name":"Main Hall","capacity":0}`, true, domain.ErrInvalidCapacity, http.StatusBadRequest, codeInvalidCapacity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCatalogService{createLocationErr: tc.svcErr}
			req := httptest.NewRequest(http.MethodPost, "/locations", strings.NewReader(tc.body))
			if tc.admin {
				req = asAdmin(req)
			} else {
				req = asUser(req)
			}
			rec := httptest.NewRecorder()
			HandleLocations(svc).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}

func TestHandleLocationTree_Get(t *testing.T) {
	t.Parallel()

	svc := &stubCatalogService{locations: map[int64]domain.Location{
		3: {ID: 3, Name: "Annex", Capacity: 80},
	}}

	req := httptest.NewRequest(http.MethodGet, "/locations/3", nil)
	rec := httptest.NewRecorder()
	HandleLocationTree(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got locationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Annex", got.Name)

	req = httptest.NewRequest(http.MethodGet, "/locations/9", nil)
	rec = httptest.NewRecorder()
	HandleLocationTree(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/locations/abc", nil)
	rec = httptest.NewRecorder()
	HandleLocationTree(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLocationTree_Update(t *testing.T) {
	t.Parallel()

	svc := &stubCatalogService{}
	body := `{"name":"Annex","capacity":80}`
	req := asAdmin(httptest.NewRequest(http.MethodPut, "/locations/3", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	HandleLocationTree(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got locationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, 80, got.Capacity)
}

func TestHandleLocationTree_UpdateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		admin      bool
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"attendees cannot edit", false, nil, http.StatusForbidden, codeUnauthorized},
		{"unknown venue", true, domain.ErrLocationNotFound, http.StatusNotFound, codeLocationNotFound},
		{"negative capacity", true, domain.ErrInvalidCapacity, http.StatusBadRequest, codeInvalidCapacity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCatalogService{updateLocationErr: tc.svcErr}
			req := httptest.NewRequest(http.MethodPut, "/locations/3", strings.NewReader(`{"name":"Annex","capacity":80}`))
			if tc.admin {
				req = asAdmin(req)
			} else {
				req = asUser(req)
			}
			rec := httptest.NewRecorder()
			HandleLocationTree(svc).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}

func TestHandleCategories(t *testing.T) {
	t.Parallel()

	t.Run("lists categories", func(t *testing.T) {
		svc := &stubCatalogService{categories: []domain.Category{
			{ID: 1, Name: "Music"},
			{ID: 2, Name: "Sports"},
		}}
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		rec := httptest.NewRecorder()

		HandleCategories(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []categoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Music", got[0].Name)
	})

	t.Run("creates a category", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := asAdmin(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Music"}`)))
		rec := httptest.NewRecorder()

		HandleCategories(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var got categoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Music", got.Name)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := &stubCatalogService{createCategoryErr: domain.ErrCategoryExists}
		req := asAdmin(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Music"}`)))
		rec := httptest.NewRecorder()

		HandleCategories(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, codeCategoryExists, resp.Code)
	})

	t.Run("attendees cannot create", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := asUser(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Music"}`)))
		rec := httptest.NewRecorder()

		HandleCategories(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		svc := &stubCatalogService{}
		req := httptest.NewRequest(http.MethodDelete, "/categories", nil)
		rec := httptest.NewRecorder()

		HandleCategories(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
