package httpx

import (
	"context"
	"net/http"

	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// AnalysisServiceInterface defines the resume-analysis operation handlers need.
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req *model.AnalyzeResumeRequest) (*model.ResumeAnalysis, error)
}

// AnalysisHandlers proxies resume analysis to the external scoring service.
// Only registered when an analysis backend is configured.
type AnalysisHandlers struct {
	Svc AnalysisServiceInterface
}

// Analyze handles POST /api/ats/analyze.
func (h *AnalysisHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req model.AnalyzeResumeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	analysis, err := h.Svc.Analyze(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}
