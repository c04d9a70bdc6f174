package postgres

import (
	"context"
	"errors"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `a.id, a.job_id, a.candidate_id, a.status, a.resume_link, a.applied_at,
	u.full_name, u.email, j.title`

const applicationJoins = `FROM applications a
	JOIN users u ON a.candidate_id = u.id
	JOIN jobs j ON a.job_id = j.id`

// Create inserts the application. The UNIQUE (candidate_id, job_id)
// constraint is the source of truth for duplicates; the usecase's existence
// check only exists for the friendlier message on the common path.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (job_id, candidate_id, status, resume_link, applied_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.Status, app.ResumeLink, app.AppliedAt,
	).Scan(&app.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.BadRequest("You have already applied for this job")
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` ` + applicationJoins + ` WHERE a.id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` ` + applicationJoins + `
		WHERE a.job_id = $1 ORDER BY a.applied_at DESC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *applicationRepo) FetchByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` ` + applicationJoins + `
		WHERE a.candidate_id = $1 ORDER BY a.applied_at DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *applicationRepo) Exists(ctx context.Context, candidateID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.ResumeLink,
		&app.AppliedAt, &app.CandidateName, &app.CandidateEmail, &app.JobTitle,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	defer rows.Close()
	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
