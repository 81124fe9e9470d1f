// Package testutil provides testing utilities and helpers for the jobradar API.
package testutil

import (
	"fmt"
	"time"

	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:     "Backend Engineer",
			Company:   "Example Corp",
			ApplyLink: "https://jobs.example.com/backend-engineer",
		},
	}
}

// WithTitle sets the posting title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithCompany sets the posting company.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithApplyLink sets the apply link.
func (b *JobRequestBuilder) WithApplyLink(applyLink string) *JobRequestBuilder {
	b.req.ApplyLink = applyLink
	return b
}

// WithUniqueApplyLink sets an apply link derived from the given suffix,
// useful for inserting multiple distinct postings.
func (b *JobRequestBuilder) WithUniqueApplyLink(suffix string) *JobRequestBuilder {
	b.req.ApplyLink = fmt.Sprintf("https://jobs.example.com/posting/%s", suffix)
	return b
}

// WithLocation sets the posting location.
func (b *JobRequestBuilder) WithLocation(location string) *JobRequestBuilder {
	b.req.Location = &location
	return b
}

// WithDescription sets the posting description.
func (b *JobRequestBuilder) WithDescription(description string) *JobRequestBuilder {
	b.req.Description = &description
	return b
}

// WithSource sets the posting source.
func (b *JobRequestBuilder) WithSource(source string) *JobRequestBuilder {
	b.req.Source = &source
	return b
}

// WithPostedDate sets the posted date.
func (b *JobRequestBuilder) WithPostedDate(postedDate time.Time) *JobRequestBuilder {
	b.req.PostedDate = &postedDate
	return b
}

// WithScrapedAt sets the scraped time.
func (b *JobRequestBuilder) WithScrapedAt(scrapedAt time.Time) *JobRequestBuilder {
	b.req.ScrapedAt = &scrapedAt
	return b
}

// WithTags sets the posting tags.
func (b *JobRequestBuilder) WithTags(tags ...string) *JobRequestBuilder {
	b.req.Tags = tags
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// ApplicationRequestBuilder provides a fluent interface for building CreateApplicationRequest objects for testing.
type ApplicationRequestBuilder struct {
	req *model.CreateApplicationRequest
}

// NewApplicationRequest creates a new ApplicationRequestBuilder with sensible defaults.
func NewApplicationRequest() *ApplicationRequestBuilder {
	return &ApplicationRequestBuilder{
		req: &model.CreateApplicationRequest{
			Company: "Example Corp",
			Role:    "Backend Engineer",
		},
	}
}

// WithCompany sets the application company.
func (b *ApplicationRequestBuilder) WithCompany(company string) *ApplicationRequestBuilder {
	b.req.Company = company
	return b
}

// WithRole sets the application role.
func (b *ApplicationRequestBuilder) WithRole(role string) *ApplicationRequestBuilder {
	b.req.Role = role
	return b
}

// WithJobID links the application to a tracked posting.
func (b *ApplicationRequestBuilder) WithJobID(jobID string) *ApplicationRequestBuilder {
	b.req.JobID = &jobID
	return b
}

// WithStatus sets the pipeline status.
func (b *ApplicationRequestBuilder) WithStatus(status model.ApplicationStatus) *ApplicationRequestBuilder {
	b.req.Status = status
	return b
}

// WithNotes sets the application notes.
func (b *ApplicationRequestBuilder) WithNotes(notes string) *ApplicationRequestBuilder {
	b.req.Notes = &notes
	return b
}

// Build returns the constructed CreateApplicationRequest.
func (b *ApplicationRequestBuilder) Build() *model.CreateApplicationRequest {
	return b.req
}
