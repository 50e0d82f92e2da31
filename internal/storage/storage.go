package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/driveops-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInUse indicates the record is still referenced by another record.
var ErrInUse = errors.New("record is still referenced")

// ErrStateChanged indicates a conditional update lost to a concurrent writer.
var ErrStateChanged = errors.New("record state changed")

// UserStore persists login credentials.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CountUsersByRole(ctx context.Context, role models.Role) (int, error)
}

// ApplicationStore persists driver applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
	FindApplicationByEmail(ctx context.Context, email string) (models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	// SetApplicationDecision records a review outcome and the credential it produced, if any.
	// It only moves a pending application and returns ErrStateChanged otherwise.
	SetApplicationDecision(ctx context.Context, id int64, status models.ApplicationStatus, userID *int64, reviewedAt time.Time) (models.Application, error)
	CountApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) (int, error)
}

// TruckStore persists trucks.
type TruckStore interface {
	CreateTruck(ctx context.Context, truck models.Truck) (models.Truck, error)
	FindTruck(ctx context.Context, id int64) (models.Truck, error)
	ListTrucks(ctx context.Context) ([]models.Truck, error)
	UpdateTruck(ctx context.Context, truck models.Truck) (models.Truck, error)
	DeleteTruck(ctx context.Context, id int64) error
	CountTrucksByStatus(ctx context.Context) (map[models.TruckStatus]int, error)
}

// TierStore persists tires.
type TierStore interface {
	// CreateTiers inserts every tier or none of them.
	CreateTiers(ctx context.Context, tiers []models.Tier) ([]models.Tier, error)
	FindTier(ctx context.Context, id int64) (models.Tier, error)
	ListTiers(ctx context.Context) ([]models.Tier, error)
	ListTiersByTruck(ctx context.Context, truckID int64) ([]models.Tier, error)
	UpdateTier(ctx context.Context, tier models.Tier) (models.Tier, error)
	DeleteTier(ctx context.Context, id int64) error
}

// TripStore persists trips. Reads fill DriverEmail and TruckPlate.
type TripStore interface {
	CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error)
	FindTrip(ctx context.Context, id int64) (models.Trip, error)
	ListTrips(ctx context.Context) ([]models.Trip, error)
	ListTripsByDriver(ctx context.Context, driverID int64) ([]models.Trip, error)
	RecentTrips(ctx context.Context, limit int) ([]models.Trip, error)
	UpdateTrip(ctx context.Context, trip models.Trip) (models.Trip, error)
	DeleteTrip(ctx context.Context, id int64) error
	CountTripsByStatus(ctx context.Context, status models.TripStatus) (int, error)
}

// Store aggregates every repository behind a single transactional boundary.
type Store interface {
	UserStore
	ApplicationStore
	TruckStore
	TierStore
	TripStore

	// WithTx runs fn against a Store bound to one transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close()
}
