package database

import (
	"context"
	"fmt"
	"time"

	"go-empleo-scraper/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Connection poolers in transaction mode (PgBouncer and friends) choke on
	// prepared statements, so the statement cache stays off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// The UNIQUE and non-empty constraints on source_url are what make the upsert
// a correct dedup: the store, not the pipeline, arbitrates concurrent writes.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id              BIGSERIAL PRIMARY KEY,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	salary_kind     TEXT NOT NULL,
	salary_min      DOUBLE PRECISION,
	salary_max      DOUBLE PRECISION,
	salary_currency TEXT NOT NULL DEFAULT '',
	modality        TEXT NOT NULL,
	experience      TEXT NOT NULL,
	location        TEXT NOT NULL,
	creation_date   TIMESTAMPTZ,
	deadline_date   TIMESTAMPTZ,
	source_url      TEXT NOT NULL UNIQUE CHECK (source_url <> ''),
	source_name     TEXT NOT NULL,
	country         TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure jobs schema: %w", err)
	}
	return nil
}

// UpsertJob inserts a job or overwrites the business fields of the row with
// the same source_url. Identity and created_at survive updates; only
// updated_at is bumped. The returned flag is true when the row was created.
func (r *Repository) UpsertJob(ctx context.Context, job models.CanonicalJob) (*models.StoredJob, bool, error) {
	query := `
		INSERT INTO jobs (title, company, description, salary_kind, salary_min, salary_max,
			salary_currency, modality, experience, location, creation_date, deadline_date,
			source_url, source_name, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (source_url)
		DO UPDATE SET title = EXCLUDED.title, company = EXCLUDED.company,
			description = EXCLUDED.description, salary_kind = EXCLUDED.salary_kind,
			salary_min = EXCLUDED.salary_min, salary_max = EXCLUDED.salary_max,
			salary_currency = EXCLUDED.salary_currency, modality = EXCLUDED.modality,
			experience = EXCLUDED.experience, location = EXCLUDED.location,
			creation_date = EXCLUDED.creation_date, deadline_date = EXCLUDED.deadline_date,
			source_name = EXCLUDED.source_name, country = EXCLUDED.country,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	var salaryMin, salaryMax *float64
	switch job.Salary.Kind {
	case models.SalarySingle:
		salaryMin = &job.Salary.Min
	case models.SalaryRange:
		salaryMin = &job.Salary.Min
		salaryMax = &job.Salary.Max
	}

	stored := &models.StoredJob{CanonicalJob: job}
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Company, job.Description, string(job.Salary.Kind), salaryMin, salaryMax,
		job.Salary.Currency, job.Modality, job.Experience, job.Location, job.CreationDate,
		job.Deadline, job.SourceURL, job.SourceName, job.Country).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert job %s: %w", job.SourceURL, err)
	}

	// an insert sets both timestamps from the same transaction clock; the
	// update arm only bumps updated_at
	created := stored.CreatedAt.Equal(stored.UpdatedAt)
	return stored, created, nil
}

// GetJobByURL retrieves one stored job by its dedup key.
func (r *Repository) GetJobByURL(ctx context.Context, sourceURL string) (*models.StoredJob, error) {
	query := `
		SELECT id, title, company, description, salary_kind, salary_min, salary_max,
			salary_currency, modality, experience, location, creation_date, deadline_date,
			source_url, source_name, country, created_at, updated_at
		FROM jobs WHERE source_url = $1`

	var stored models.StoredJob
	var salaryMin, salaryMax *float64
	var kind string
	err := r.db.QueryRow(ctx, query, sourceURL).Scan(
		&stored.ID, &stored.Title, &stored.Company, &stored.Description, &kind,
		&salaryMin, &salaryMax, &stored.Salary.Currency, &stored.Modality,
		&stored.Experience, &stored.Location, &stored.CreationDate, &stored.Deadline,
		&stored.SourceURL, &stored.SourceName, &stored.Country,
		&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to get job by url: %w", err)
	}

	stored.Salary.Kind = models.SalaryKind(kind)
	if salaryMin != nil {
		stored.Salary.Min = *salaryMin
	}
	if salaryMax != nil {
		stored.Salary.Max = *salaryMax
	}
	return &stored, nil
}

// SearchJobs is the lookup the API layer runs before deciding to scrape.
func (r *Repository) SearchJobs(ctx context.Context, keyword string, countries []string) ([]models.StoredJob, error) {
	query := `
		SELECT id, title, company, description, salary_kind, salary_min, salary_max,
			salary_currency, modality, experience, location, creation_date, deadline_date,
			source_url, source_name, country, created_at, updated_at
		FROM jobs
		WHERE country = ANY($1) AND (title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY creation_date DESC NULLS LAST`

	rows, err := r.db.Query(ctx, query, countries, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.StoredJob
	for rows.Next() {
		var stored models.StoredJob
		var salaryMin, salaryMax *float64
		var kind string
		if err := rows.Scan(
			&stored.ID, &stored.Title, &stored.Company, &stored.Description, &kind,
			&salaryMin, &salaryMax, &stored.Salary.Currency, &stored.Modality,
			&stored.Experience, &stored.Location, &stored.CreationDate, &stored.Deadline,
			&stored.SourceURL, &stored.SourceName, &stored.Country,
			&stored.CreatedAt, &stored.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		stored.Salary.Kind = models.SalaryKind(kind)
		if salaryMin != nil {
			stored.Salary.Min = *salaryMin
		}
		if salaryMax != nil {
			stored.Salary.Max = *salaryMax
		}
		jobs = append(jobs, stored)
	}
	return jobs, rows.Err()
}
