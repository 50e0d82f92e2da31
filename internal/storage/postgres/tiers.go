package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/driveops-be/internal/models"
)

const tierColumns = `id, position, condition, truck_id, created_at, updated_at`

// CreateTiers queues every insert in one batch. Outside a transaction the
// batch runs in an implicit one, so either all rows land or none do.
func (s *Store) CreateTiers(ctx context.Context, tiers []models.Tier) ([]models.Tier, error) {
	if len(tiers) == 0 {
		return []models.Tier{}, nil
	}
	query := `
		INSERT INTO tiers (position, condition, truck_id)
		VALUES ($1, $2, $3)
		RETURNING ` + tierColumns

	batch := &pgx.Batch{}
	for _, t := range tiers {
		batch.Queue(query, t.Position, t.Condition, t.TruckID)
	}
	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]models.Tier, 0, len(tiers))
	for i := range tiers {
		tier, err := scanTier(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("create tier %d: %w", i, mapError(err))
		}
		created = append(created, tier)
	}
	return created, nil
}

// FindTier fetches a tier by id.
func (s *Store) FindTier(ctx context.Context, id int64) (models.Tier, error) {
	tier, err := scanTier(s.db.QueryRow(ctx, `SELECT `+tierColumns+` FROM tiers WHERE id = $1`, id))
	return tier, mapError(err)
}

// ListTiers returns every tier.
func (s *Store) ListTiers(ctx context.Context) ([]models.Tier, error) {
	return s.queryTiers(ctx, `SELECT `+tierColumns+` FROM tiers ORDER BY truck_id, id`)
}

// ListTiersByTruck returns the tiers mounted on truckID.
func (s *Store) ListTiersByTruck(ctx context.Context, truckID int64) ([]models.Tier, error) {
	return s.queryTiers(ctx, `SELECT `+tierColumns+` FROM tiers WHERE truck_id = $1 ORDER BY id`, truckID)
}

// UpdateTier overwrites position and condition.
func (s *Store) UpdateTier(ctx context.Context, t models.Tier) (models.Tier, error) {
	query := `
		UPDATE tiers SET position = $2, condition = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + tierColumns
	tier, err := scanTier(s.db.QueryRow(ctx, query, t.ID, t.Position, t.Condition))
	return tier, mapError(err)
}

// DeleteTier removes a tier.
func (s *Store) DeleteTier(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM tiers WHERE id = $1`, id)
}

func (s *Store) queryTiers(ctx context.Context, query string, args ...any) ([]models.Tier, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := []models.Tier{}
	for rows.Next() {
		tier, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return tiers, rows.Err()
}

func scanTier(row pgx.Row) (models.Tier, error) {
	var t models.Tier
	if err := row.Scan(&t.ID, &t.Position, &t.Condition, &t.TruckID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Tier{}, err
	}
	return t, nil
}
