package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chairflow/chairflow/internal/api/dto"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/service"
)

type ClientHandler struct {
	service service.ClientService
	jobs    service.JobService
	log     *logger.Logger
}

func NewClientHandler(service service.ClientService, jobs service.JobService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{service: service, jobs: jobs, log: log}
}

// CreateClient godoc
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	resp, err := h.service.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {object} dto.ListClientsResponse
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	resp, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListClientJobs godoc
// @Summary List a client's jobs
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ListJobsResponse
// @Router /clients/{id}/jobs [get]
func (h *ClientHandler) ListClientJobs(c *gin.Context) {
	resp, err := h.jobs.ListClientJobs(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
