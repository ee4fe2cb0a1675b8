package server

import (
	"strings"

	"tripsync/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetPlaces handles GET /api/places?category=&search=&page=&per_page=
func (s *Server) GetPlaces(c *fiber.Ctx) error {
	filter := repository.PlaceFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", 10),
	}

	page, err := s.catalogService.ListPlaces(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// GetPlace handles GET /api/places/:id
func (s *Server) GetPlace(c *fiber.Ctx) error {
	placeID, err := s.parseID(c, "id", "place ID")
	if err != nil {
		return nil
	}

	place, svcErr := s.catalogService.GetPlace(c.Context(), placeID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(place)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.catalogService.Categories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// GetTopPlaces handles GET /api/top-places
func (s *Server) GetTopPlaces(c *fiber.Ctx) error {
	grouped, err := s.catalogService.TopPlaces(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(grouped)
}

// GetTopCities handles GET /api/top-cities
func (s *Server) GetTopCities(c *fiber.Ctx) error {
	cities, err := s.catalogService.TopCities(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(cities)
}
