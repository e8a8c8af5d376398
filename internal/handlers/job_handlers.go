package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockconsole/internal/common"
	"stockconsole/internal/jobs/background"
)

// JobRunner is the scheduler surface exposed over HTTP.
type JobRunner interface {
	GetJobStatus() []background.JobStatus
	RunNow(name string) error
}

type JobHandlers struct {
	runner JobRunner
}

func NewJobHandlers(runner JobRunner) *JobHandlers {
	return &JobHandlers{runner: runner}
}

// ListJobs reports each background job with its next and last run
func (h *JobHandlers) ListJobs(c echo.Context) error {
	status := h.runner.GetJobStatus()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"jobs":  status,
		"total": len(status),
	})
}

// RunJob triggers a background job immediately
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.runner.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return common.SendNotFoundError(c, "Job")
		}
		log.Printf("WARN: failed to trigger job %s: %v", name, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to trigger job")
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Job triggered",
		"job":     name,
	})
}
