package domain

import (
	"context"
	"fmt"
	"time"
)

// ApplicationStatus is the closed set of application states. APPLIED is the
// only state the system itself produces; the job owner or an admin may
// overwrite it with any member. There is deliberately no transition graph.
type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "APPLIED"
	ApplicationReviewed ApplicationStatus = "REVIEWED"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus maps a transmitted status name onto the closed set.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationApplied, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return ApplicationStatus(s), nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// Application is a candidate's application to a job. At most one exists per
// (candidate, job) pair, enforced by the store.
type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"jobId"`
	CandidateID int64             `json:"candidateId"`
	Status      ApplicationStatus `json:"status"`
	ResumeLink  string            `json:"resumeLink"`
	AppliedAt   time.Time         `json:"appliedAt"`

	// Joined data for responses
	CandidateName  string `json:"candidateName,omitempty"`
	CandidateEmail string `json:"candidateEmail,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	FetchByJobID(ctx context.Context, jobID int64) ([]Application, error)
	FetchByCandidateID(ctx context.Context, candidateID int64) ([]Application, error)
	Exists(ctx context.Context, candidateID, jobID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, jobID int64, resumeLink string) (*Application, error)
	MyApplications(ctx context.Context) ([]Application, error)

	// Recruiter/admin operations
	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
	ExportByJob(ctx context.Context, jobID int64) ([]byte, string, error)
	UpdateStatus(ctx context.Context, applicationID int64, status ApplicationStatus) (*Application, error)
}
