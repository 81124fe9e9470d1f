package config

import "time"

// ATSConfig contains configuration for the external resume-analysis service.
//
// The extraction expressions are JMESPath queries applied to the provider's
// JSON response. Defaults match the reference prediction service; deployments
// pointing at a provider with a different response shape override them
// instead of forking the client.
type ATSConfig struct {
	// BaseURL is the root URL of the analysis service. Empty disables the
	// /api/ats/analyze endpoint.
	BaseURL string `env:"BASE_URL" envDefault:""`

	// AnalyzePath is the path of the analysis endpoint, joined to BaseURL.
	AnalyzePath string `env:"ANALYZE_PATH" envDefault:"/predict"`

	// Timeout bounds the whole upstream round-trip.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// ProbabilityExpr extracts the shortlist probability (0..1).
	ProbabilityExpr string `env:"PROBABILITY_EXPR" envDefault:"shortlist_probability"`

	// ScoreExpr extracts the resume/keyword match score (0..100).
	ScoreExpr string `env:"SCORE_EXPR" envDefault:"ats_score"`

	// MissingKeywordsExpr extracts the list of missing keywords.
	MissingKeywordsExpr string `env:"MISSING_KEYWORDS_EXPR" envDefault:"missing_keywords"`

	// SuggestionsExpr extracts the list of improvement suggestions.
	SuggestionsExpr string `env:"SUGGESTIONS_EXPR" envDefault:"suggestions"`
}

// Enabled reports whether an analysis service has been configured.
func (a *ATSConfig) Enabled() bool {
	return a.BaseURL != ""
}

// Sanitize applies guardrails to ATS configuration values.
func (a *ATSConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
	if a.AnalyzePath == "" {
		a.AnalyzePath = "/predict"
	}
}
