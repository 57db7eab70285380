package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chairflow/chairflow/internal/api/dto"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/service"
)

type PricingHandler struct {
	service service.PricingService
	log     *logger.Logger
}

func NewPricingHandler(service service.PricingService, log *logger.Logger) *PricingHandler {
	return &PricingHandler{service: service, log: log}
}

// CalculatePrice godoc
// @Summary Calculate a job price
// @Description Prices a prospective job against the current rule tables
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body dto.CalculatePriceRequest true "Pricing request"
// @Success 200 {object} dto.PriceCalculationResponse
// @Router /pricing/calculate [post]
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CalculatePrice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewPrice godoc
// @Summary Preview a job price
// @Description Same calculation as /pricing/calculate, used by the quote screen
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body dto.CalculatePriceRequest true "Pricing request"
// @Success 200 {object} dto.PriceCalculationResponse
// @Router /pricing/preview [post]
func (h *PricingHandler) PreviewPrice(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.PreviewPrice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
