package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

const applicationColumns = `id, full_name, email, phone, cv_path, password_hash, status, user_id, reviewed_at, created_at, updated_at`

// CreateApplication inserts a pending application.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	query := `
		INSERT INTO applications (full_name, email, phone, cv_path, password_hash, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + applicationColumns
	created, err := scanApplication(s.db.QueryRow(ctx, query,
		app.FullName, app.Email, app.Phone, app.CVPath, app.PasswordHash, app.Status))
	if err != nil {
		return models.Application{}, mapError(err)
	}
	return created, nil
}

// FindApplicationByEmail fetches an application by email, ignoring case.
func (s *Store) FindApplicationByEmail(ctx context.Context, email string) (models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE lower(email) = lower($1)`
	app, err := scanApplication(s.db.QueryRow(ctx, query, email))
	return app, mapError(err)
}

// ListApplications returns every application, newest first.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.log.Error("failed to list applications", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// SetApplicationDecision stores the review outcome. The status guard is
// re-evaluated after any row lock wait, so of two racing reviews only one lands.
func (s *Store) SetApplicationDecision(ctx context.Context, id int64, status models.ApplicationStatus, userID *int64, reviewedAt time.Time) (models.Application, error) {
	query := `
		UPDATE applications
		SET status = $2, user_id = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING ` + applicationColumns
	app, err := scanApplication(s.db.QueryRow(ctx, query, id, status, userID, reviewedAt, models.ApplicationPending))
	if !errors.Is(err, pgx.ErrNoRows) {
		return app, mapError(err)
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return models.Application{}, mapError(err)
	}
	if !exists {
		return models.Application{}, storage.ErrNotFound
	}
	return models.Application{}, storage.ErrStateChanged
}

// CountApplicationsByStatus counts applications in status.
func (s *Store) CountApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM applications WHERE status = $1`, status).Scan(&count)
	return count, err
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var app models.Application
	err := row.Scan(&app.ID, &app.FullName, &app.Email, &app.Phone, &app.CVPath, &app.PasswordHash,
		&app.Status, &app.UserID, &app.ReviewedAt, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return models.Application{}, err
	}
	return app, nil
}
