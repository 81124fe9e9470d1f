package service

import (
	"context"
	"errors"

	"github.com/jobradar/jobradar-api/internal/domain/model"
	apperrors "github.com/jobradar/jobradar-api/internal/errors"
)

// ResumeAnalyzer is the outbound port to the external resume-analysis service.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, req *model.AnalyzeResumeRequest) (*model.ResumeAnalysis, error)
}

// AnalysisServiceOptions groups dependencies for AnalysisService.
type AnalysisServiceOptions struct {
	Analyzer ResumeAnalyzer
}

// AnalysisService validates analysis requests and proxies them to the
// configured analyzer.
type AnalysisService struct {
	analyzer ResumeAnalyzer
}

// NewAnalysisService constructs a new AnalysisService.
func NewAnalysisService(opts AnalysisServiceOptions) (*AnalysisService, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("ResumeAnalyzer is required")
	}
	return &AnalysisService{analyzer: opts.Analyzer}, nil
}

// Analyze scores a resume against a job description via the external service.
func (s *AnalysisService) Analyze(ctx context.Context, req *model.AnalyzeResumeRequest) (*model.ResumeAnalysis, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.analyzer.Analyze(ctx, req)
}
