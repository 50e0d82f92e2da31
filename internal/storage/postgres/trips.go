package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
)

const tripSelect = `
	SELECT t.id, t.driver_id, COALESCE(u.email, ''), t.truck_id, COALESCE(k.license_plate, ''),
		t.start_location, t.start_lat, t.start_lng, t.end_location, t.end_lat, t.end_lng,
		t.start_time, t.end_time, t.status, t.notes, t.created_at, t.updated_at
	FROM trips t
	LEFT JOIN users u ON u.id = t.driver_id
	LEFT JOIN trucks k ON k.id = t.truck_id`

// CreateTrip inserts a trip and returns it with driver and truck details.
func (s *Store) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	const query = `
		INSERT INTO trips (driver_id, truck_id, start_location, start_lat, start_lng, end_location,
			end_lat, end_lng, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	startLat, startLng := coordinateArgs(trip.StartCoordinates)
	endLat, endLng := coordinateArgs(trip.EndCoordinates)

	var id int64
	err := s.db.QueryRow(ctx, query, trip.DriverID, trip.TruckID, trip.StartLocation, startLat, startLng,
		trip.EndLocation, endLat, endLng, trip.StartTime, trip.EndTime, trip.Status, trip.Notes).Scan(&id)
	if err != nil {
		return models.Trip{}, mapError(err)
	}
	return s.FindTrip(ctx, id)
}

// FindTrip fetches a trip by id.
func (s *Store) FindTrip(ctx context.Context, id int64) (models.Trip, error) {
	trip, err := scanTrip(s.db.QueryRow(ctx, tripSelect+` WHERE t.id = $1`, id))
	return trip, mapError(err)
}

// ListTrips returns every trip ordered by start time.
func (s *Store) ListTrips(ctx context.Context) ([]models.Trip, error) {
	return s.queryTrips(ctx, tripSelect+` ORDER BY t.start_time, t.id`)
}

// ListTripsByDriver returns the trips assigned to driverID ordered by start time.
func (s *Store) ListTripsByDriver(ctx context.Context, driverID int64) ([]models.Trip, error) {
	return s.queryTrips(ctx, tripSelect+` WHERE t.driver_id = $1 ORDER BY t.start_time, t.id`, driverID)
}

// RecentTrips returns the most recently created trips.
func (s *Store) RecentTrips(ctx context.Context, limit int) ([]models.Trip, error) {
	return s.queryTrips(ctx, tripSelect+` ORDER BY t.created_at DESC, t.id DESC LIMIT $1`, limit)
}

// UpdateTrip overwrites every mutable column.
func (s *Store) UpdateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	const query = `
		UPDATE trips SET driver_id = $2, truck_id = $3, start_location = $4, start_lat = $5, start_lng = $6,
			end_location = $7, end_lat = $8, end_lng = $9, start_time = $10, end_time = $11, status = $12,
			notes = $13, updated_at = NOW()
		WHERE id = $1`
	startLat, startLng := coordinateArgs(trip.StartCoordinates)
	endLat, endLng := coordinateArgs(trip.EndCoordinates)

	err := s.execAffecting(ctx, query, trip.ID, trip.DriverID, trip.TruckID, trip.StartLocation, startLat, startLng,
		trip.EndLocation, endLat, endLng, trip.StartTime, trip.EndTime, trip.Status, trip.Notes)
	if err != nil {
		return models.Trip{}, err
	}
	return s.FindTrip(ctx, trip.ID)
}

// DeleteTrip removes a trip.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, `DELETE FROM trips WHERE id = $1`, id)
}

// CountTripsByStatus counts trips in status.
func (s *Store) CountTripsByStatus(ctx context.Context, status models.TripStatus) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (s *Store) queryTrips(ctx context.Context, query string, args ...any) ([]models.Trip, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		s.log.Error("failed to query trips", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func coordinateArgs(c *models.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

func coordinates(lat, lng *float64) *models.Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &models.Coordinates{Lat: *lat, Lng: *lng}
}

func scanTrip(row pgx.Row) (models.Trip, error) {
	var t models.Trip
	var startLat, startLng, endLat, endLng *float64
	err := row.Scan(&t.ID, &t.DriverID, &t.DriverEmail, &t.TruckID, &t.TruckPlate,
		&t.StartLocation, &startLat, &startLng, &t.EndLocation, &endLat, &endLng,
		&t.StartTime, &t.EndTime, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Trip{}, err
	}
	t.StartCoordinates = coordinates(startLat, startLng)
	t.EndCoordinates = coordinates(endLat, endLng)
	return t, nil
}
