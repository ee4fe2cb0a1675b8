package repository

import (
	"context"
	"errors"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// PlaceFilter narrows ListPlaces; filters apply conjunctively.
type PlaceFilter struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// CatalogRepository defines read access to the places/cities reference data.
type CatalogRepository interface {
	ListPlaces(ctx context.Context, filter PlaceFilter) ([]models.PlaceView, int64, error)
	GetPlace(ctx context.Context, placeID uint) (*models.Place, error)
	ListCategories(ctx context.Context) ([]string, error)
	TopPlacesByCategory(ctx context.Context, perCategory int) (map[string][]models.PlaceView, error)
	TopCities(ctx context.Context, cityCount, placesPerCity int) (map[string][]models.PlaceView, error)
}

// catalogRepository implements CatalogRepository
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) placesQuery(ctx context.Context, filter PlaceFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("places p").
		Joins("JOIN cities c ON p.city_id = c.id")

	if filter.Category != "" && filter.Category != "All" {
		query = query.Where("p.category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("p.name LIKE ? OR c.city_name LIKE ?", pattern, pattern)
	}
	return query
}

// ListPlaces returns a page of catalog rows ordered by place name, plus the
// total row count for the filter so callers can compute page counts.
func (r *catalogRepository) ListPlaces(ctx context.Context, filter PlaceFilter) ([]models.PlaceView, int64, error) {
	var total int64
	if err := r.placesQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	offset := (filter.Page - 1) * filter.PerPage

	var places []models.PlaceView
	if err := r.placesQuery(ctx, filter).
		Select("p.id AS place_id, p.name AS place_name, p.category, c.city_name, p.image_url, '4.5' AS rating").
		Order("p.name").
		Limit(filter.PerPage).
		Offset(offset).
		Scan(&places).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return places, total, nil
}

func (r *catalogRepository) GetPlace(ctx context.Context, placeID uint) (*models.Place, error) {
	var place models.Place
	if err := r.db.WithContext(ctx).Preload("City").First(&place, placeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", placeID)
		}
		return nil, models.NewInternalError(err)
	}
	return &place, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.Place{}).
		Distinct("category").
		Where("category IS NOT NULL AND category != ''").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// TopPlacesByCategory returns the first perCategory places of each category,
// grouped by category name.
func (r *catalogRepository) TopPlacesByCategory(ctx context.Context, perCategory int) (map[string][]models.PlaceView, error) {
	var rows []models.PlaceView
	query := `
		SELECT p.id AS place_id, p.name AS place_name, p.category, c.city_name, p.image_url
		FROM places p
		JOIN cities c ON p.city_id = c.id
		WHERE p.id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY category ORDER BY id) AS rn
				FROM places
			) ranked
			WHERE rn <= ?
		)
		ORDER BY p.category, c.city_name, p.id`

	if err := r.db.WithContext(ctx).Raw(query, perCategory).Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	grouped := make(map[string][]models.PlaceView)
	for _, row := range rows {
		grouped[row.Category] = append(grouped[row.Category], row)
	}
	return grouped, nil
}

// TopCities returns the first cityCount cities (by id), each with up to
// placesPerCity of its places, keyed by city name.
func (r *catalogRepository) TopCities(ctx context.Context, cityCount, placesPerCity int) (map[string][]models.PlaceView, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).
		Order("id").
		Limit(cityCount).
		Find(&cities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	result := make(map[string][]models.PlaceView, len(cities))
	for _, city := range cities {
		var places []models.PlaceView
		if err := r.db.WithContext(ctx).
			Table("places p").
			Select("p.id AS place_id, p.name AS place_name, p.category, c.city_name, p.image_url, '4.5' AS rating").
			Joins("JOIN cities c ON p.city_id = c.id").
			Where("p.city_id = ?", city.ID).
			Limit(placesPerCity).
			Scan(&places).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		result[city.CityName] = places
	}
	return result, nil
}
