package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/logger"

	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
	}
}

// Apply creates an application for the acting candidate against an open job.
// The duplicate check here is best-effort; the store's unique constraint on
// (candidate, job) is what actually prevents the race.
func (uc *applicationUsecase) Apply(ctx context.Context, jobID int64, resumeLink string) (*domain.Application, error) {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	actor, err := uc.userRepo.GetByID(ctx, p.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	switch actor.Role {
	case domain.RoleCandidate:
	case domain.RoleRecruiter, domain.RoleAdmin:
		return nil, apperror.Forbidden("Only candidates can apply for jobs")
	default:
		return nil, apperror.Forbidden("Only candidates can apply for jobs")
	}
	if !actor.IsActive {
		return nil, apperror.Forbidden("Account is deactivated")
	}

	if resumeLink == "" {
		return nil, apperror.BadRequest("Resume link is required")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Job not found with id: %d", jobID))
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobOpen {
		return nil, apperror.BadRequest("Cannot apply for a closed job")
	}

	exists, err := uc.applicationRepo.Exists(ctx, actor.ID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied for this job")
	}

	app := &domain.Application{
		JobID:          jobID,
		CandidateID:    actor.ID,
		Status:         domain.ApplicationApplied,
		ResumeLink:     resumeLink,
		AppliedAt:      time.Now(),
		CandidateName:  actor.FullName,
		CandidateEmail: actor.Email,
		JobTitle:       job.Title,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	logger.Log.Info("Application created", "candidate", actor.Email, "job", job.Title)
	return app, nil
}

// MyApplications is implicitly scoped to the acting principal; no ownership
// check is needed because the query itself is scoped.
func (uc *applicationUsecase) MyApplications(ctx context.Context) ([]domain.Application, error) {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return uc.applicationRepo.FetchByCandidateID(ctx, p.AccountID)
}

func (uc *applicationUsecase) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	if err := uc.authorizeJobAccess(ctx, jobID, "view"); err != nil {
		return nil, err
	}
	return uc.applicationRepo.FetchByJobID(ctx, jobID)
}

// ExportByJob renders the job's applications as an Excel sheet for offline
// screening. Same access rules as ListByJob.
func (uc *applicationUsecase) ExportByJob(ctx context.Context, jobID int64) ([]byte, string, error) {
	apps, err := uc.ListByJob(ctx, jobID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "CANDIDATE", "EMAIL", "STATUS", "RESUME LINK", "APPLIED AT"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for row, app := range apps {
		values := []interface{}{
			app.ID,
			app.CandidateName,
			app.CandidateEmail,
			string(app.Status),
			app.ResumeLink,
			app.AppliedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("applications_job_%d.xlsx", jobID)
	return buf.Bytes(), filename, nil
}

// UpdateStatus overwrites the application status. Any member of the status
// set may follow any other; there is no transition graph to enforce.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, applicationID int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if _, err := domain.ParseApplicationStatus(string(status)); err != nil {
		return nil, apperror.BadRequest("Invalid status. Must be: APPLIED, REVIEWED, ACCEPTED, or REJECTED")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Application not found with id: %d", applicationID))
		}
		return nil, apperror.Internal(err)
	}

	// Ownership is decided on the job reached through the application.
	if err := uc.authorizeJobAccess(ctx, app.JobID, "update"); err != nil {
		return nil, err
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Application not found with id: %d", applicationID))
		}
		return nil, apperror.Internal(err)
	}
	app.Status = status
	logger.Log.Info("Application status updated", "id", applicationID, "status", status)
	return app, nil
}

// authorizeJobAccess resolves the job and enforces the ownership gate: only
// the job's poster or an admin may see or mutate its applications. The verb
// names the attempted operation in the forbidden message.
func (uc *applicationUsecase) authorizeJobAccess(ctx context.Context, jobID int64, verb string) error {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return apperror.Unauthorized("User not authenticated")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(fmt.Sprintf("Job not found with id: %d", jobID))
		}
		return apperror.Internal(err)
	}

	if !ownsOrAdmin(p, job.PostedByID) {
		return apperror.Forbidden(fmt.Sprintf("You can only %s applications for your own jobs", verb))
	}
	return nil
}
