package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
)

const truckColumns = `id, license_plate, vin, brand, model, year, type, capacity_kg, fuel_type, current_mileage,
	status, assigned_driver_id, last_service_date, next_service_due, notes, created_at, updated_at`

// CreateTruck inserts a truck.
func (s *Store) CreateTruck(ctx context.Context, t models.Truck) (models.Truck, error) {
	query := `
		INSERT INTO trucks (license_plate, vin, brand, model, year, type, capacity_kg, fuel_type,
			current_mileage, status, assigned_driver_id, last_service_date, next_service_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + truckColumns
	created, err := scanTruck(s.db.QueryRow(ctx, query,
		t.LicensePlate, t.VIN, t.Brand, t.Model, t.Year, t.Type, t.CapacityKg, t.FuelType,
		t.CurrentMileage, t.Status, t.AssignedDriverID, t.LastServiceDate, t.NextServiceDue, t.Notes))
	if err != nil {
		return models.Truck{}, mapError(err)
	}
	return created, nil
}

// FindTruck fetches a truck by id.
func (s *Store) FindTruck(ctx context.Context, id int64) (models.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE id = $1`
	truck, err := scanTruck(s.db.QueryRow(ctx, query, id))
	return truck, mapError(err)
}

// ListTrucks returns every truck ordered by id.
func (s *Store) ListTrucks(ctx context.Context) ([]models.Truck, error) {
	rows, err := s.db.Query(ctx, `SELECT `+truckColumns+` FROM trucks ORDER BY id`)
	if err != nil {
		s.log.Error("failed to list trucks", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	trucks := []models.Truck{}
	for rows.Next() {
		truck, err := scanTruck(rows)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, truck)
	}
	return trucks, rows.Err()
}

// UpdateTruck overwrites every mutable column.
func (s *Store) UpdateTruck(ctx context.Context, t models.Truck) (models.Truck, error) {
	query := `
		UPDATE trucks SET license_plate = $2, vin = $3, brand = $4, model = $5, year = $6, type = $7,
			capacity_kg = $8, fuel_type = $9, current_mileage = $10, status = $11, assigned_driver_id = $12,
			last_service_date = $13, next_service_due = $14, notes = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + truckColumns
	updated, err := scanTruck(s.db.QueryRow(ctx, query, t.ID,
		t.LicensePlate, t.VIN, t.Brand, t.Model, t.Year, t.Type, t.CapacityKg, t.FuelType,
		t.CurrentMileage, t.Status, t.AssignedDriverID, t.LastServiceDate, t.NextServiceDue, t.Notes))
	return updated, mapError(err)
}

// DeleteTruck removes a truck; its tiers cascade.
func (s *Store) DeleteTruck(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM trucks WHERE id = $1`, id)
}

// CountTrucksByStatus groups trucks by status.
func (s *Store) CountTrucksByStatus(ctx context.Context) (map[models.TruckStatus]int, error) {
	rows, err := s.db.Query(ctx, `SELECT status, count(*) FROM trucks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.TruckStatus]int)
	for rows.Next() {
		var status models.TruckStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTruck(row pgx.Row) (models.Truck, error) {
	var t models.Truck
	err := row.Scan(&t.ID, &t.LicensePlate, &t.VIN, &t.Brand, &t.Model, &t.Year, &t.Type, &t.CapacityKg,
		&t.FuelType, &t.CurrentMileage, &t.Status, &t.AssignedDriverID, &t.LastServiceDate, &t.NextServiceDue,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Truck{}, err
	}
	return t, nil
}
