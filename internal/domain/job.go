package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// EmploymentType is the closed set of job employment types.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

// JobStatus is the job lifecycle state. OPEN is the only state any operation
// produces; no endpoint transitions a job, so CLOSED exists for the search
// filter and the apply-time check only.
type JobStatus string

const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
)

// ParseJobStatus maps a transmitted status name onto the closed set.
func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobOpen, JobClosed:
		return JobStatus(s), nil
	default:
		return "", fmt.Errorf("unknown job status %q", s)
	}
}

type Job struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Location        string         `json:"location"`
	EmploymentType  EmploymentType `json:"employmentType"`
	RequiredSkills  []string       `json:"requiredSkills"`
	ExperienceLevel string         `json:"experienceLevel"`
	Status          JobStatus      `json:"status"`
	PostedByID      int64          `json:"postedById"`
	CreatedAt       time.Time      `json:"createdAt"`

	// Joined data for responses
	PostedByName string `json:"postedBy,omitempty"`
}

// JobInput carries the descriptive fields a create or update may set.
// Status and ownership are never caller-controlled.
type JobInput struct {
	Title           string
	Description     string
	Location        string
	EmploymentType  EmploymentType
	RequiredSkills  []string
	ExperienceLevel string
}

// PageQuery is the pagination and sorting contract shared by list endpoints.
// Pages are zero-based; sortBy defaults to createdAt, sortDir to DESC.
type PageQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (q PageQuery) Normalized() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size < 1 {
		q.Size = 10
	}
	if q.Size > 100 {
		q.Size = 100
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortDir != "ASC" && q.SortDir != "asc" {
		q.SortDir = "DESC"
	}
	return q
}

func (q PageQuery) Offset() int { return q.Page * q.Size }

// SearchFilter narrows the job list. Zero values mean "no constraint".
type SearchFilter struct {
	Skill    string    // exact member of requiredSkills
	Location string    // case-insensitive substring
	Status   JobStatus // exact match
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, q PageQuery) ([]Job, int64, error)
	Search(ctx context.Context, f SearchFilter, q PageQuery) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, q PageQuery) ([]Job, int64, error)
	SearchJobs(ctx context.Context, f SearchFilter, q PageQuery) ([]Job, int64, error)
	UpdateJob(ctx context.Context, id int64, in JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
}
