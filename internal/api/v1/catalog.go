package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chairflow/chairflow/internal/api/dto"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/service"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// CreateService godoc
// @Summary Add a service to the price catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Service"
// @Success 201 {object} dto.ServiceResponse
// @Router /catalog/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateService(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetService godoc
// @Summary Get a catalog service
// @Tags catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Router /catalog/services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	resp, err := h.service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListServices godoc
// @Summary List active catalog services
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.ListServicesResponse
// @Router /catalog/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	resp, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePart godoc
// @Summary Add a part to the price catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreatePartRequest true "Part"
// @Success 201 {object} dto.PartResponse
// @Router /catalog/parts [post]
func (h *CatalogHandler) CreatePart(c *gin.Context) {
	var req dto.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePart(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListParts godoc
// @Summary List active catalog parts
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.ListPartsResponse
// @Router /catalog/parts [get]
func (h *CatalogHandler) ListParts(c *gin.Context) {
	resp, err := h.service.ListParts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
