// Package ats provides a client for the external resume-analysis service.
// The upstream response shape is not under our control, so result fields are
// pulled out with configurable JMESPath expressions instead of a fixed struct.
package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	apperrors "github.com/jobradar/jobradar-api/internal/errors"
)

// JMESPathEvaluator validates and evaluates JMESPath expressions against
// decoded JSON data.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator is the default evaluator backed by the jmespath library.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ClientConfig holds configuration for the analysis client.
type ClientConfig struct {
	// BaseURL is the root URL of the analysis service.
	BaseURL string
	// AnalyzePath is joined to BaseURL to form the analysis endpoint.
	AnalyzePath string
	// Timeout bounds the whole upstream round-trip. Defaults to 10s.
	Timeout time.Duration

	// JMESPath expressions applied to the upstream JSON response. An empty
	// expression skips that field.
	ProbabilityExpr     string
	ScoreExpr           string
	MissingKeywordsExpr string
	SuggestionsExpr     string

	HTTPClient *http.Client      // Optional, defaults to a client with Timeout
	Evaluator  JMESPathEvaluator // Optional, defaults to the jmespath library
}

// Client calls the analysis service and normalizes its response.
type Client struct {
	analyzeURL string
	httpClient *http.Client
	evaluator  JMESPathEvaluator

	probabilityExpr     string
	scoreExpr           string
	missingKeywordsExpr string
	suggestionsExpr     string
}

// NewClient creates an analysis client. All configured extraction
// expressions are compiled up front so misconfiguration fails at startup
// rather than on the first request.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	analyzePath := config.AnalyzePath
	if analyzePath == "" {
		analyzePath = "/predict"
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	evaluator := config.Evaluator
	if evaluator == nil {
		evaluator = jmespathLibEvaluator{}
	}

	for name, expr := range map[string]string{
		"probability":      config.ProbabilityExpr,
		"score":            config.ScoreExpr,
		"missing keywords": config.MissingKeywordsExpr,
		"suggestions":      config.SuggestionsExpr,
	} {
		if err := evaluator.Validate(expr); err != nil {
			return nil, fmt.Errorf("invalid %s expression %q: %w", name, expr, err)
		}
	}

	return &Client{
		analyzeURL:          strings.TrimSuffix(config.BaseURL, "/") + analyzePath,
		httpClient:          httpClient,
		evaluator:           evaluator,
		probabilityExpr:     config.ProbabilityExpr,
		scoreExpr:           config.ScoreExpr,
		missingKeywordsExpr: config.MissingKeywordsExpr,
		suggestionsExpr:     config.SuggestionsExpr,
	}, nil
}

// analyzePayload is the wire request of the upstream prediction service.
type analyzePayload struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// Analyze sends resume text and a job description to the analysis service
// and extracts the configured result fields. Upstream failures come back as
// external errors; they never take the API down with them.
func (c *Client) Analyze(ctx context.Context, req *model.AnalyzeResumeRequest) (*model.ResumeAnalysis, error) {
	body, err := json.Marshal(analyzePayload{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternal, "analysis service unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.External(fmt.Sprintf("analysis service returned status %d", resp.StatusCode))
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternal, "analysis service returned malformed JSON")
	}

	return c.extract(decoded), nil
}

// extract applies the configured expressions to the decoded response. Fields
// the response doesn't carry (or carries with an unexpected type) are left
// unset rather than failing the whole analysis.
func (c *Client) extract(decoded any) *model.ResumeAnalysis {
	analysis := &model.ResumeAnalysis{
		MissingKeywords: []string{},
		Suggestions:     []string{},
	}

	if v, ok := c.extractFloat(c.probabilityExpr, decoded); ok {
		analysis.ShortlistProbability = &v
	}
	if v, ok := c.extractFloat(c.scoreExpr, decoded); ok {
		analysis.ATSScore = &v
	}
	if v := c.extractStrings(c.missingKeywordsExpr, decoded); v != nil {
		analysis.MissingKeywords = v
	}
	if v := c.extractStrings(c.suggestionsExpr, decoded); v != nil {
		analysis.Suggestions = v
	}
	return analysis
}

func (c *Client) extractFloat(expr string, data any) (float64, bool) {
	if strings.TrimSpace(expr) == "" {
		return 0, false
	}
	result, err := c.evaluator.Evaluate(expr, data)
	if err != nil {
		return 0, false
	}
	switch v := result.(type) {
	case float64:
		return v, true
	case json.Number:
		f, convErr := v.Float64()
		return f, convErr == nil
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func (c *Client) extractStrings(expr string, data any) []string {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	result, err := c.evaluator.Evaluate(expr, data)
	if err != nil {
		return nil
	}
	items, ok := result.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
