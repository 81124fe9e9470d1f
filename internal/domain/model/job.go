//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen   = 255
	maxJobCompanyLen = 255
	maxJobTagLen     = 64
	maxJobTags       = 25
)

// Job represents a scraped or manually submitted job posting.
// ApplyLink is the canonical identity of a posting: two submissions with the
// same apply link describe the same job regardless of other fields.
type Job struct {
	ID          string     `json:"id"                    db:"id"`
	Title       string     `json:"title"                 db:"title"`
	Company     string     `json:"company"               db:"company"`
	Location    *string    `json:"location,omitempty"    db:"location"`
	Description *string    `json:"description,omitempty" db:"description"`
	ApplyLink   string     `json:"applyLink"             db:"apply_link"`
	Source      *string    `json:"source,omitempty"      db:"source"`
	PostedDate  *time.Time `json:"postedDate,omitempty"  db:"posted_date"`
	ScrapedAt   time.Time  `json:"scrapedAt"             db:"scraped_at"`
	Tags        []string   `json:"tags"                  db:"tags"`
	CreatedAt   time.Time  `json:"createdAt"             db:"created_at"`
}

// CreateJobRequest represents parameters to submit a job posting.
// Typically sent by the scraper worker; may also come from manual curation.
type CreateJobRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	Description *string    `json:"description,omitempty"`
	ApplyLink   string     `json:"applyLink"`
	Source      *string    `json:"source,omitempty"`
	PostedDate  *time.Time `json:"postedDate,omitempty"`
	ScrapedAt   *time.Time `json:"scrapedAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Validate validates CreateJobRequest and normalizes its fields in place.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}

	r.Company = strings.TrimSpace(r.Company)
	if r.Company == "" {
		return errors.New("company is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Company) > maxJobCompanyLen {
		return errors.New("company cannot exceed 255 characters")
	}

	r.ApplyLink = strings.TrimSpace(r.ApplyLink)
	if r.ApplyLink == "" {
		return errors.New("applyLink is required and cannot be empty")
	}
	u, err := url.Parse(r.ApplyLink)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("applyLink must be an absolute http(s) URL")
	}

	if len(r.Tags) > maxJobTags {
		return errors.New("too many tags")
	}
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > maxJobTagLen {
			return errors.New("tag cannot exceed 64 characters")
		}
		tags = append(tags, tag)
	}
	r.Tags = tags

	return nil
}
