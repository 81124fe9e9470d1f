package httpx

import (
	"context"
	"net/http"

	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// JobServiceInterface defines the job operations handlers need.
type JobServiceInterface interface {
	List(ctx context.Context) ([]model.Job, error)
	Submit(ctx context.Context, req *model.CreateJobRequest) (*model.Job, bool, error)
}

// JobHandlers serves the public job listing and the scraper submission endpoint.
type JobHandlers struct {
	Svc JobServiceInterface
}

// List handles GET /api/jobs.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// duplicateJobResponse is returned when a submitted apply link is already known.
type duplicateJobResponse struct {
	Message string     `json:"message"`
	Job     *model.Job `json:"job"`
}

// Submit handles POST /api/jobs. A new posting gets a 201 with the stored job;
// a duplicate apply link gets a 200 with the existing job so scrapers can
// resubmit their whole batch idempotently.
func (h *JobHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, created, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if created {
		WriteJSON(w, http.StatusCreated, job)
		return
	}
	WriteJSON(w, http.StatusOK, duplicateJobResponse{Message: "Job already exists", Job: job})
}
