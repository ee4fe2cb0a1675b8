package cache

import (
	"context"
	"fmt"
	"time"
)

// Catalog reads are the only cached queries; the social core always reads the
// store directly so authorization state is never served stale.
const (
	// CatalogTTL is the lifetime of cached catalog listings.
	CatalogTTL = 5 * time.Minute
)

func PlacesKey(category, search string, page, perPage int) string {
	return fmt.Sprintf("catalog:places:%s:%s:%d:%d", category, search, page, perPage)
}

func PlaceKey(placeID uint) string {
	return fmt.Sprintf("catalog:place:%d", placeID)
}

func CategoriesKey() string {
	return "catalog:categories"
}

func TopPlacesKey() string {
	return "catalog:top-places"
}

func TopCitiesKey() string {
	return "catalog:top-cities"
}

// Invalidate removes a key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	_ = client.Del(ctx, key).Err()
}
