package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cimillas/eventdesk/internal/app"
	"github.com/cimillas/eventdesk/internal/domain"
)

// CatalogService is the minimal interface needed for the venue and
// category endpoints.
type CatalogService interface {
	CreateLocation(ctx context.Context, session domain.Session, in app.LocationInput) (domain.Location, error)
	UpdateLocation(ctx context.Context, session domain.Session, locationID int64, in app.LocationInput) (domain.Location, error)
	GetLocation(ctx context.Context, locationID int64) (domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateCategory(ctx context.Context, session domain.Session, name string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// HandleLocations returns an HTTP handler for the venue collection:
// GET /locations lists every venue, POST /locations creates one.
func HandleLocations(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			locations, err := svc.ListLocations(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]locationResponse, 0, len(locations))
			for _, l := range locations {
				resp = append(resp, toLocationResponse(l))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			session, ok := requireSession(w, r)
			if !ok {
				return
			}
			in, ok := decodeLocationInput(w, r)
			if !ok {
				return
			}

			location, err := svc.CreateLocation(r.Context(), session, in)
			if err != nil {
				writeCatalogError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toLocationResponse(location))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleLocationTree routes /locations/{id}: reading and editing a
// single venue.
func HandleLocationTree(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locationID, ok := parseLocationPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		switch r.Method {
		case http.MethodGet:
			location, err := svc.GetLocation(r.Context(), locationID)
			if err != nil {
				writeCatalogError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toLocationResponse(location))
		case http.MethodPut:
			session, ok := requireSession(w, r)
			if !ok {
				return
			}
			in, ok := decodeLocationInput(w, r)
			if !ok {
				return
			}
			location, err := svc.UpdateLocation(r.Context(), session, locationID, in)
			if err != nil {
				writeCatalogError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toLocationResponse(location))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleCategories returns an HTTP handler for the category collection:
// GET /categories lists them, POST /categories creates one.
func HandleCategories(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categories, err := svc.ListCategories(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]categoryResponse, 0, len(categories))
			for _, c := range categories {
				resp = append(resp, categoryResponse{ID: c.ID, Name: c.Name})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			session, ok := requireSession(w, r)
			if !ok {
				return
			}

			var req categoryRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			category, err := svc.CreateCategory(r.Context(), session, req.Name)
			if err != nil {
				writeCatalogError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(categoryResponse{ID: category.ID, Name: category.Name})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func decodeLocationInput(w http.ResponseWriter, r *http.Request) (app.LocationInput, bool) {
	var req locationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.LocationInput{}, false
	}

	return app.LocationInput{
		Name:             req.Name,
		Capacity:         req.Capacity,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		PostalCode:       req.PostalCode,
		PrimaryContact:   req.PrimaryContact,
		SecondaryContact: req.SecondaryContact,
	}, true
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrLocationNameRequired:
		writeError(w, http.StatusBadRequest, codeLocationNameRequired, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrCategoryNameRequired:
		writeError(w, http.StatusBadRequest, codeCategoryNameRequired, err.Error())
	case domain.ErrLocationNotFound:
		writeError(w, http.StatusNotFound, codeLocationNotFound, err.Error())
	case domain.ErrCategoryExists:
		writeError(w, http.StatusConflict, codeCategoryExists, err.Error())
	case domain.ErrUnauthorized:
		writeError(w, http.StatusForbidden, codeUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type locationRequest struct {
	Name             string `json:"name"`
	Capacity         int    `json:"capacity"`
	Address          string `json:"address,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	PrimaryContact   string `json:"primary_contact,omitempty"`
	SecondaryContact string `json:"secondary_contact,omitempty"`
}

type locationResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Capacity         int    `json:"capacity"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	Country          string `json:"country"`
	PostalCode       string `json:"postal_code"`
	PrimaryContact   string `json:"primary_contact"`
	SecondaryContact string `json:"secondary_contact"`
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{
		ID:               l.ID,
		Name:             l.Name,
		Capacity:         l.Capacity,
		Address:          l.Address,
		City:             l.City,
		State:            l.State,
		Country:          l.Country,
		PostalCode:       l.PostalCode,
		PrimaryContact:   l.PrimaryContact,
		SecondaryContact: l.SecondaryContact,
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func parseLocationPath(path string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "locations" || parts[1] == "" {
		return 0, false
	}
	locationID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || locationID <= 0 {
		return 0, false
	}
	return locationID, true
}
