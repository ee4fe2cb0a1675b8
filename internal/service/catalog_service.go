package service

import (
	"context"

	"tripsync/internal/cache"
	"tripsync/internal/models"
	"tripsync/internal/repository"
)

// CatalogService provides cached reads over the places/cities reference data.
// The catalog is independent of the social graph, so cache-aside with a short
// TTL is safe here in a way it would not be for membership or friendship state.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// PlacesPage is the paginated listing envelope.
type PlacesPage struct {
	Places     []models.PlaceView `json:"places"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int64              `json:"total_pages"`
}

// ListPlaces returns a page of catalog rows for the filter.
func (s *CatalogService) ListPlaces(ctx context.Context, filter repository.PlaceFilter) (*PlacesPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 10
	}

	var page PlacesPage
	key := cache.PlacesKey(filter.Category, filter.Search, filter.Page, filter.PerPage)
	err := cache.Aside(ctx, key, &page, cache.CatalogTTL, func() error {
		places, total, err := s.catalogRepo.ListPlaces(ctx, filter)
		if err != nil {
			return err
		}
		page = PlacesPage{
			Places:     places,
			Total:      total,
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			TotalPages: (total + int64(filter.PerPage) - 1) / int64(filter.PerPage),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPlace returns one place with its city.
func (s *CatalogService) GetPlace(ctx context.Context, placeID uint) (*models.Place, error) {
	var place *models.Place
	key := cache.PlaceKey(placeID)
	err := cache.Aside(ctx, key, &place, cache.CatalogTTL, func() error {
		p, err := s.catalogRepo.GetPlace(ctx, placeID)
		if err != nil {
			return err
		}
		place = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return place, nil
}

// Categories returns the distinct non-empty place categories, ordered.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := cache.Aside(ctx, cache.CategoriesKey(), &categories, cache.CatalogTTL, func() error {
		c, err := s.catalogRepo.ListCategories(ctx)
		if err != nil {
			return err
		}
		categories = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// TopPlaces returns the first five places of each category.
func (s *CatalogService) TopPlaces(ctx context.Context) (map[string][]models.PlaceView, error) {
	var grouped map[string][]models.PlaceView
	err := cache.Aside(ctx, cache.TopPlacesKey(), &grouped, cache.CatalogTTL, func() error {
		g, err := s.catalogRepo.TopPlacesByCategory(ctx, 5)
		if err != nil {
			return err
		}
		grouped = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grouped, nil
}

// TopCities returns the first five cities, each with up to five places.
func (s *CatalogService) TopCities(ctx context.Context) (map[string][]models.PlaceView, error) {
	var result map[string][]models.PlaceView
	err := cache.Aside(ctx, cache.TopCitiesKey(), &result, cache.CatalogTTL, func() error {
		r, err := s.catalogRepo.TopCities(ctx, 5, 5)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
