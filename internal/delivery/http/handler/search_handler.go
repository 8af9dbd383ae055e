package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// SearchHandler exposes one-shot nearby searches and search sessions.
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Resolve godoc
// @Summary Geocode a place query
// @Description Resolves a free-text place query to a coordinate
// @Tags Search
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Place query"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/search/resolve [post]
func (h *SearchHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Resolve(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Nearby godoc
// @Summary One-shot nearby parking search
// @Description Ranks parking lots by distance from a center within the configured radius. The center comes from lat/lon or from geocoding q; explicit coordinates win.
// @Tags Search
// @Accept json
// @Produce json
// @Param lat query number false "Center latitude"
// @Param lon query number false "Center longitude"
// @Param q query string false "Place query used when no coordinates are given"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbySearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/search/nearby [get]
func (h *SearchHandler) Nearby(c *fiber.Ctx) error {
	var req dto.NearbySearchRequest
	if c.Query("lat") != "" && c.Query("lon") != "" {
		lat := c.QueryFloat("lat")
		lon := c.QueryFloat("lon")
		req.Lat = &lat
		req.Lon = &lon
	}
	req.Query = c.Query("q")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.NearbySearch(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// CreateSession godoc
// @Summary Open a search session
// @Description Creates a stateful search session preloaded with the current lot directory
// @Tags Sessions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/search/sessions [post]
func (h *SearchHandler) CreateSession(c *fiber.Ctx) error {
	result := h.searchUC.CreateSession(c.Context())
	return utils.SendSuccess(c, result, nil)
}

// GetSession godoc
// @Summary Read a search session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search/sessions/{id} [get]
func (h *SearchHandler) GetSession(c *fiber.Ctx) error {
	result, err := h.searchUC.GetSession(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ApplyEvent godoc
// @Summary Feed an event into a search session
// @Description Applies a client event (geolocation, geolocation_failed, query, nearby, candidates) and returns the resulting session state. Query resolutions settle asynchronously.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SessionEventRequest true "Session event"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search/sessions/{id}/events [post]
func (h *SearchHandler) ApplyEvent(c *fiber.Ctx) error {
	var req dto.SessionEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.ApplyEvent(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CloseSession godoc
// @Summary Close a search session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search/sessions/{id} [delete]
func (h *SearchHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.searchUC.CloseSession(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"closed": true}, nil)
}
