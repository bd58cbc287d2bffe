package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/lumina-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Get statistics about background jobs (active, completed, failed, queue length, last run)
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	if h.jobService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "background jobs are disabled"})
		return
	}
	status := h.jobService.GetStatus()
	c.JSON(http.StatusOK, status)
}

// Run queues a known job immediately
// @Summary Run a background job now
// @Description Queues backup_snapshot or overdue_invoice_scan outside its schedule
// @Tags Jobs
// @Produce json
// @Param name path string true "Job name"
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /jobs/{name}/run [post]
func (h *JobHandler) Run(c *gin.Context) {
	if h.jobService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "background jobs are disabled"})
		return
	}
	name := c.Param("name")
	if !h.jobService.RunNow(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job " + name})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "job queued", "job": name})
}
