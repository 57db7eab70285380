package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chairflow/chairflow/internal/api/dto"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/service"
)

type RuleHandler struct {
	service service.RuleService
	log     *logger.Logger
}

func NewRuleHandler(service service.RuleService, log *logger.Logger) *RuleHandler {
	return &RuleHandler{service: service, log: log}
}

// CreateBulkRule godoc
// @Summary Add a bulk discount rule
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.CreateBulkDiscountRuleRequest true "Rule"
// @Success 201 {object} dto.BulkDiscountRuleResponse
// @Router /rules/bulk-discounts [post]
func (h *RuleHandler) CreateBulkRule(c *gin.Context) {
	var req dto.CreateBulkDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateBulkRule(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBulkRules godoc
// @Summary List active bulk discount rules
// @Tags rules
// @Produce json
// @Success 200 {object} dto.ListBulkDiscountRulesResponse
// @Router /rules/bulk-discounts [get]
func (h *RuleHandler) ListBulkRules(c *gin.Context) {
	resp, err := h.service.ListBulkRules(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTier godoc
// @Summary Add a pricing tier
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.CreatePricingTierRequest true "Tier"
// @Success 201 {object} dto.PricingTierResponse
// @Router /rules/tiers [post]
func (h *RuleHandler) CreateTier(c *gin.Context) {
	var req dto.CreatePricingTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTier(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTiers godoc
// @Summary List pricing tiers
// @Tags rules
// @Produce json
// @Success 200 {object} dto.ListPricingTiersResponse
// @Router /rules/tiers [get]
func (h *RuleHandler) ListTiers(c *gin.Context) {
	resp, err := h.service.ListTiers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignClientTier godoc
// @Summary Assign a client to a tier
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.AssignClientTierRequest true "Assignment"
// @Success 201 {object} dto.TierAssignmentResponse
// @Router /rules/tiers/assignments [post]
func (h *RuleHandler) AssignClientTier(c *gin.Context) {
	var req dto.AssignClientTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignClientTier(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateSeasonalWindow godoc
// @Summary Add a seasonal pricing window
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.CreateSeasonalWindowRequest true "Window"
// @Success 201 {object} dto.SeasonalWindowResponse
// @Router /rules/seasonal-windows [post]
func (h *RuleHandler) CreateSeasonalWindow(c *gin.Context) {
	var req dto.CreateSeasonalWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSeasonalWindow(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSeasonalWindows godoc
// @Summary List active seasonal windows
// @Tags rules
// @Produce json
// @Success 200 {object} dto.ListSeasonalWindowsResponse
// @Router /rules/seasonal-windows [get]
func (h *RuleHandler) ListSeasonalWindows(c *gin.Context) {
	resp, err := h.service.ListSeasonalWindows(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
