package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-talentflow-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sortColumns whitelists the sortBy values a client may request. Anything
// else falls back to created_at.
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"title":           "title",
	"location":        "location",
	"experienceLevel": "experience_level",
}

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `j.id, j.title, j.description, j.location, j.employment_type,
	j.required_skills, j.experience_level, j.status, j.posted_by_id, j.created_at,
	u.full_name`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, description, location, employment_type, required_skills, experience_level, status, posted_by_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Location, job.EmploymentType,
		job.RequiredSkills, job.ExperienceLevel, job.Status, job.PostedByID,
		job.CreatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs j JOIN users u ON j.posted_by_id = u.id WHERE j.id = $1`, jobColumns)
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, q domain.PageQuery) ([]domain.Job, int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs j JOIN users u ON j.posted_by_id = u.id
		ORDER BY %s LIMIT $1 OFFSET $2`, jobColumns, orderClause(q))

	rows, err := r.db.Query(ctx, query, q.Size, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Search(ctx context.Context, f domain.SearchFilter, q domain.PageQuery) ([]domain.Job, int64, error) {
	// Empty filter values match everything; the store does the filtering so
	// pagination counts stay correct.
	where := `($1 = '' OR $1 = ANY(j.required_skills))
		AND ($2 = '' OR j.location ILIKE '%' || $2 || '%')
		AND ($3 = '' OR j.status = $3)`

	query := fmt.Sprintf(`SELECT %s FROM jobs j JOIN users u ON j.posted_by_id = u.id
		WHERE %s ORDER BY %s LIMIT $4 OFFSET $5`, jobColumns, where, orderClause(q))

	rows, err := r.db.Query(ctx, query, f.Skill, f.Location, string(f.Status), q.Size, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, f.Skill, f.Location, string(f.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		location = $4,
		employment_type = $5,
		required_skills = $6,
		experience_level = $7
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location,
		job.EmploymentType, job.RequiredSkills, job.ExperienceLevel,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job; applications go with it via ON DELETE CASCADE.
func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func orderClause(q domain.PageQuery) string {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if q.SortDir == "ASC" || q.SortDir == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("j.%s %s", col, dir)
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Location, &job.EmploymentType,
		&job.RequiredSkills, &job.ExperienceLevel, &job.Status, &job.PostedByID,
		&job.CreatedAt, &job.PostedByName,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()
	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
