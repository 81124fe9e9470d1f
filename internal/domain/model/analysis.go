//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxJobDescriptionLen = 50_000

// AnalyzeResumeRequest represents parameters for a resume/job-description match analysis.
type AnalyzeResumeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// Validate validates AnalyzeResumeRequest.
func (r *AnalyzeResumeRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return errors.New("resumeText is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.ResumeText) > maxResumeLen {
		return errors.New("resumeText cannot exceed 100000 characters")
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return errors.New("jobDescription is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.JobDescription) > maxJobDescriptionLen {
		return errors.New("jobDescription cannot exceed 50000 characters")
	}
	return nil
}

// ResumeAnalysis is the normalized result of a resume/job-description match analysis.
type ResumeAnalysis struct {
	ShortlistProbability *float64 `json:"shortlistProbability,omitempty"`
	ATSScore             *float64 `json:"atsScore,omitempty"`
	MissingKeywords      []string `json:"missingKeywords"`
	Suggestions          []string `json:"suggestions"`
}
