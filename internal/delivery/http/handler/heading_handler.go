package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/pkg/utils"
	"github.com/venue-compass/internal/pkg/validator"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/usecase/dto"
)

// HeadingHandler - обработчик сессий компаса
type HeadingHandler struct {
	headingUC *usecase.HeadingUseCase
	logger    *zap.Logger
}

// NewHeadingHandler - создание нового HeadingHandler
func NewHeadingHandler(headingUC *usecase.HeadingUseCase, logger *zap.Logger) *HeadingHandler {
	return &HeadingHandler{
		headingUC: headingUC,
		logger:    logger,
	}
}

// StartSession godoc
// @Summary Открытие сессии компаса
// @Description Выбирает лучший доступный источник ориентации по заявленным возможностям устройства и открывает сессию оценки курса
// @Tags Heading
// @Accept json
// @Produce json
// @Param request body dto.StartHeadingSessionRequest true "Возможности устройства"
// @Success 200 {object} utils.SuccessResponse{data=dto.HeadingSessionResponse}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/heading/sessions [post]
func (h *HeadingHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartHeadingSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.headingUC.StartSession(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// PushSample godoc
// @Summary Обработка пакета показаний датчиков
// @Description Принимает сырые показания активного провайдера и возвращает сглаженный курс. Пакет без пригодных показаний подавляется без ошибки.
// @Tags Heading
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.PushSampleRequest true "Показания датчиков"
// @Success 200 {object} utils.SuccessResponse{data=dto.HeadingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/heading/sessions/{id}/samples [post]
func (h *HeadingHandler) PushSample(c *fiber.Ctx) error {
	var req dto.PushSampleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.headingUC.PushSample(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ReportError godoc
// @Summary Сообщение об отказе датчика
// @Description Понижает сессию до следующего источника ориентации в каскаде. Возвращает 422, когда каскад исчерпан.
// @Tags Heading
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.ReportSensorErrorRequest true "Описание отказа"
// @Success 200 {object} utils.SuccessResponse{data=dto.HeadingSessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/heading/sessions/{id}/errors [post]
func (h *HeadingHandler) ReportError(c *fiber.Ctx) error {
	var req dto.ReportSensorErrorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.headingUC.ReportError(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// StopSession godoc
// @Summary Остановка сессии компаса
// @Description Останавливает сессию и сбрасывает память сглаживания
// @Tags Heading
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/heading/sessions/{id} [delete]
func (h *HeadingHandler) StopSession(c *fiber.Ctx) error {
	if err := h.headingUC.StopSession(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"stopped": true}, nil)
}
