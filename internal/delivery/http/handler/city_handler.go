package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/pkg/utils"
	"github.com/venue-compass/internal/pkg/validator"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/usecase/dto"
)

// CityHandler - обработчик для подсказок городов
type CityHandler struct {
	cityUC *usecase.CityUseCase
	logger *zap.Logger
}

// NewCityHandler - создание нового CityHandler
func NewCityHandler(cityUC *usecase.CityUseCase, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		cityUC: cityUC,
		logger: logger,
	}
}

// Suggest godoc
// @Summary Подсказки городов по названию
// @Description Возвращает ранжированный список городов, подходящих под частичное название
// @Tags Cities
// @Accept json
// @Produce json
// @Param q query string true "Название города (минимум 2 символа)"
// @Param limit query int false "Максимальное количество результатов" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.SuggestCitiesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/cities/suggest [get]
func (h *CityHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestCitiesRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", 0)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.cityUC.Suggest(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
