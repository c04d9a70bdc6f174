package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/logger"
)

// ownsOrAdmin is the ownership gate shared by job and application mutations:
// admins may touch anything, everyone else only what they own. The switch is
// exhaustive over the role set.
func ownsOrAdmin(p domain.Principal, ownerID int64) bool {
	switch p.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleRecruiter, domain.RoleCandidate:
		return p.AccountID == ownerID
	}
	return false
}

type jobUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, userRepo: userRepo}
}

// CreateJob re-resolves the acting account instead of trusting the token
// claims, so a deactivated or deleted account cannot keep posting until its
// token expires.
func (u *jobUsecase) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	actor, err := u.userRepo.GetByID(ctx, p.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	switch actor.Role {
	case domain.RoleRecruiter, domain.RoleAdmin:
	case domain.RoleCandidate:
		return nil, apperror.Forbidden("Only recruiters can post jobs")
	default:
		return nil, apperror.Forbidden("Only recruiters can post jobs")
	}
	if !actor.IsActive {
		return nil, apperror.Forbidden("Account is deactivated")
	}

	if len(in.RequiredSkills) == 0 {
		return nil, apperror.BadRequest("At least one skill is required")
	}

	job := &domain.Job{
		Title:           in.Title,
		Description:     in.Description,
		Location:        in.Location,
		EmploymentType:  in.EmploymentType,
		RequiredSkills:  in.RequiredSkills,
		ExperienceLevel: in.ExperienceLevel,
		Status:          domain.JobOpen,
		PostedByID:      actor.ID,
		PostedByName:    actor.FullName,
		CreatedAt:       time.Now(),
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Log.Info("Job created", "title", job.Title, "postedBy", actor.Email)
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Job not found with id: %d", id))
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, q domain.PageQuery) ([]domain.Job, int64, error) {
	return u.jobRepo.Fetch(ctx, q.Normalized())
}

func (u *jobUsecase) SearchJobs(ctx context.Context, f domain.SearchFilter, q domain.PageQuery) ([]domain.Job, int64, error) {
	return u.jobRepo.Search(ctx, f, q.Normalized())
}

// UpdateJob changes descriptive fields only; status and ownership are
// immutable through this path.
func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, in domain.JobInput) (*domain.Job, error) {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsOrAdmin(p, job.PostedByID) {
		return nil, apperror.Forbidden("You can only update your own jobs")
	}

	if len(in.RequiredSkills) == 0 {
		return nil, apperror.BadRequest("At least one skill is required")
	}

	job.Title = in.Title
	job.Description = in.Description
	job.Location = in.Location
	job.EmploymentType = in.EmploymentType
	job.RequiredSkills = in.RequiredSkills
	job.ExperienceLevel = in.ExperienceLevel

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Job not found with id: %d", id))
		}
		return nil, apperror.Internal(err)
	}
	logger.Log.Info("Job updated", "id", job.ID, "title", job.Title)
	return job, nil
}

// DeleteJob removes the job; its applications cascade away in the store.
func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return apperror.Unauthorized("User not authenticated")
	}

	job, err := u.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if !ownsOrAdmin(p, job.PostedByID) {
		return apperror.Forbidden("You can only delete your own jobs")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(fmt.Sprintf("Job not found with id: %d", id))
		}
		return apperror.Internal(err)
	}
	logger.Log.Info("Job deleted", "id", id, "title", job.Title)
	return nil
}
