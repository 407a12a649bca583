package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resume-builder/internal/domain"
)

// ResumeRepository define el contrato de persistencia para curriculums.
type ResumeRepository interface {
	Create(ctx context.Context, resume domain.Resume) error
	GetByID(ctx context.Context, id string) (domain.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Resume, error)
	ListAll(ctx context.Context) ([]domain.Resume, error)
	Update(ctx context.Context, resume domain.Resume) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
}

// PgResumeRepository implementa ResumeRepository usando pgxpool.
type PgResumeRepository struct {
	pool *pgxpool.Pool
}

func NewPgResumeRepository(pool *pgxpool.Pool) *PgResumeRepository {
	return &PgResumeRepository{pool: pool}
}

const resumeColumns = `id, user_id, title, sections, verified, created_at, updated_at`

func (r *PgResumeRepository) Create(ctx context.Context, resume domain.Resume) error {
	const query = `
		INSERT INTO resumes (id, user_id, title, sections, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.Sections,
		resume.Verified,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

func (r *PgResumeRepository) GetByID(ctx context.Context, id string) (domain.Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgResumeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *PgResumeRepository) ListAll(ctx context.Context) ([]domain.Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *PgResumeRepository) Update(ctx context.Context, resume domain.Resume) error {
	const query = `
		UPDATE resumes
		SET title = $2, sections = $3, updated_at = $4
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		resume.ID,
		resume.Title,
		resume.Sections,
		resume.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgResumeRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	const query = `
		UPDATE resumes
		SET verified = $2
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, verified)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgResumeRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM resumes
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgResumeRepository) scanOne(row pgx.Row) (domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Sections,
		&res.Verified,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Resume{}, err
	}
	return res, err
}

func (r *PgResumeRepository) scanMany(rows pgx.Rows) ([]domain.Resume, error) {
	var resumes []domain.Resume
	for rows.Next() {
		var res domain.Resume
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Title,
			&res.Sections,
			&res.Verified,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		resumes = append(resumes, res)
	}
	return resumes, rows.Err()
}
