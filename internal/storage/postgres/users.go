package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

// CreateUser inserts a new credential.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	created, err := scanUser(s.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role))
	if err != nil {
		return models.User{}, mapError(err)
	}
	return created, nil
}

// FindUserByID fetches a credential by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	return user, mapError(err)
}

// FindUserByEmail fetches a credential by email, ignoring case.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	user, err := scanUser(s.db.QueryRow(ctx, query, email))
	return user, mapError(err)
}

// ListUsersByRole returns every credential holding role, oldest first.
func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := s.db.Query(ctx, query, role)
	if err != nil {
		s.log.Error("failed to list users", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser overwrites email and password hash. Role is never changed in place.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		UPDATE users SET email = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	updated, err := scanUser(s.db.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash))
	return updated, mapError(err)
}

// DeleteUser removes a credential.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM users WHERE id = $1`, id)
}

// CountUsersByRole counts credentials holding role.
func (s *Store) CountUsersByRole(ctx context.Context, role models.Role) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = $1`, role).Scan(&count)
	return count, err
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}
