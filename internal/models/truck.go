package models

import "time"

type FuelType string

const (
	FuelDiesel   FuelType = "Diesel"
	FuelGasoline FuelType = "Gasoline"
	FuelElectric FuelType = "Electric"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelDiesel, FuelGasoline, FuelElectric:
		return true
	}
	return false
}

type TruckStatus string

const (
	TruckAvailable   TruckStatus = "Available"
	TruckInUse       TruckStatus = "In-use"
	TruckMaintenance TruckStatus = "Maintenance"
	TruckRetired     TruckStatus = "Retired"
)

func (s TruckStatus) Valid() bool {
	switch s {
	case TruckAvailable, TruckInUse, TruckMaintenance, TruckRetired:
		return true
	}
	return false
}

// Truck is a fleet vehicle.
type Truck struct {
	ID               int64       `json:"id"`
	LicensePlate     string      `json:"license_plate"`
	VIN              string      `json:"vin"`
	Brand            string      `json:"brand"`
	Model            string      `json:"model"`
	Year             int         `json:"year"`
	Type             string      `json:"type"`
	CapacityKg       float64     `json:"capacity_kg"`
	FuelType         FuelType    `json:"fuel_type"`
	CurrentMileage   float64     `json:"current_mileage"`
	Status           TruckStatus `json:"status"`
	AssignedDriverID *int64      `json:"assigned_driver_id"`
	LastServiceDate  *time.Time  `json:"last_service_date,omitempty"`
	NextServiceDue   *time.Time  `json:"next_service_due,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// FleetStatus counts trucks per status.
type FleetStatus struct {
	Available   int `json:"available"`
	InUse       int `json:"inUse"`
	Maintenance int `json:"maintenance"`
	Retired     int `json:"retired"`
}
