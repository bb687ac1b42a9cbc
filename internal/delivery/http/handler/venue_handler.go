package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/pkg/utils"
	"github.com/venue-compass/internal/pkg/validator"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/usecase/dto"
)

// VenueHandler - обработчик для поиска заведений
type VenueHandler struct {
	venueUC *usecase.VenueUseCase
	logger  *zap.Logger
}

// NewVenueHandler - создание нового VenueHandler
func NewVenueHandler(venueUC *usecase.VenueUseCase, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		venueUC: venueUC,
		logger:  logger,
	}
}

// SearchNearby godoc
// @Summary Поиск заведений вокруг точки
// @Description Возвращает заведения выбранных категорий в радиусе вокруг координат, отсортированные по расстоянию. Результаты кешируются на несколько минут.
// @Tags Venues
// @Accept json
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius_km query number true "Радиус поиска в километрах (0.1 - 100)"
// @Param categories query string true "Категории через запятую (bar, wine_cellar, nightclub, supermarket, restaurant, liquor_store)"
// @Param open_only query bool false "Только открытые заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.VenuesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/venues/nearby [get]
func (h *VenueHandler) SearchNearby(c *fiber.Ctx) error {
	var req dto.NearbyVenuesRequest
	req.Lat = c.QueryFloat("lat")
	req.Lon = c.QueryFloat("lon")
	req.RadiusKm = c.QueryFloat("radius_km")
	req.Categories = splitCategories(c.Query("categories"))
	req.OpenOnly = c.QueryBool("open_only")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.venueUC.SearchNearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Cached: result.Cached,
		Hint:   result.Hint,
	})
}

// SearchCity godoc
// @Summary Поиск заведений в городе
// @Description Возвращает заведения выбранных категорий в границах города. При наличии опорной точки добавляет расстояние и азимут.
// @Tags Venues
// @Accept json
// @Produce json
// @Param request body dto.CityVenuesRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.VenuesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/venues/city [post]
func (h *VenueHandler) SearchCity(c *fiber.Ctx) error {
	var req dto.CityVenuesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.venueUC.SearchCity(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  result.Total,
		Cached: result.Cached,
		Hint:   result.Hint,
	})
}

func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			categories = append(categories, v)
		}
	}
	return categories
}
