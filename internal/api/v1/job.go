package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chairflow/chairflow/internal/api/dto"
	ierr "github.com/chairflow/chairflow/internal/errors"
	"github.com/chairflow/chairflow/internal/logger"
	"github.com/chairflow/chairflow/internal/service"
)

type JobHandler struct {
	service service.JobService
	profit  service.ProfitService
	log     *logger.Logger
}

func NewJobHandler(service service.JobService, profit service.ProfitService, log *logger.Logger) *JobHandler {
	return &JobHandler{service: service, profit: profit, log: log}
}

// CreateJob godoc
// @Summary Create a job
// @Description Creates a job with a priced quote snapshot
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job request"
// @Success 201 {object} dto.JobResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetJob godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	resp, err := h.service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteJob godoc
// @Summary Complete a job
// @Description Marks the job completed with the technician's actual hours
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.CompleteJobRequest true "Completion data"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id}/complete [post]
func (h *JobHandler) CompleteJob(c *gin.Context) {
	var req dto.CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CompleteJob(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RepriceJob godoc
// @Summary Reprice a job
// @Description Recalculates an open job against the current rule tables
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id}/reprice [post]
func (h *JobHandler) RepriceJob(c *gin.Context) {
	resp, err := h.service.RepriceJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJobProfit godoc
// @Summary Analyze job profitability
// @Description Returns the completed job's margin breakdown
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.ProfitAnalysisResponse
// @Router /jobs/{id}/profit [get]
func (h *JobHandler) GetJobProfit(c *gin.Context) {
	resp, err := h.profit.AnalyzeJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
