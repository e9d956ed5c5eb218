package api

import (
	"errors"
	"net/http"

	resdto "campus-booking/internal/handler/dto/response"
	"campus-booking/internal/handler/httperr"
	"campus-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceUseCase usecase.ResourceUseCase
}

func NewResourceHandler(resourceUseCase usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{
		resourceUseCase: resourceUseCase,
	}
}

// @Summary Get resource
// @Description Get a bookable resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	res, err := h.resourceUseCase.GetResource(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResource(res))
}

// @Summary Get availability
// @Description Get the slot grid of a resource for one calendar day
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string false "Day to compute (YYYY-MM-DD), defaults to today"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	availabilityRM, err := h.resourceUseCase.GetAvailability(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errors.Is(err, usecase.ErrInvalidDate):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityRM(availabilityRM))
}
