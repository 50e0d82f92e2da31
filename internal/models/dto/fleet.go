package dto

import (
	"time"

	"github.com/hongminglow/driveops-be/internal/models"
)

type TruckRequest struct {
	LicensePlate     string             `json:"license_plate"`
	VIN              string             `json:"vin"`
	Brand            string             `json:"brand"`
	Model            string             `json:"model"`
	Year             int                `json:"year"`
	Type             string             `json:"type"`
	CapacityKg       float64            `json:"capacity_kg"`
	FuelType         models.FuelType    `json:"fuel_type"`
	CurrentMileage   float64            `json:"current_mileage"`
	Status           models.TruckStatus `json:"status"`
	AssignedDriverID *int64             `json:"assigned_driver_id"`
	LastServiceDate  *time.Time         `json:"last_service_date"`
	NextServiceDue   *time.Time         `json:"next_service_due"`
	Notes            string             `json:"notes"`
}

// TruckResponse is returned on creation together with the mounted tires.
type TruckResponse struct {
	models.Truck
	Tiers []models.Tier `json:"tiers"`
}

type TierRequest struct {
	Position  models.TierPosition  `json:"position"`
	Condition models.TierCondition `json:"condition"`
	TruckID   int64                `json:"truck_id"`
}

type TierUpdateRequest struct {
	Position  *models.TierPosition  `json:"position"`
	Condition *models.TierCondition `json:"condition"`
}

type TripRequest struct {
	DriverID         int64               `json:"driver_id"`
	TruckID          int64               `json:"truck_id"`
	StartLocation    string              `json:"start_location"`
	StartCoordinates *models.Coordinates `json:"start_coordinates"`
	EndLocation      string              `json:"end_location"`
	EndCoordinates   *models.Coordinates `json:"end_coordinates"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
	Status           models.TripStatus   `json:"status"`
	Notes            string              `json:"notes"`
}

type TripUpdateRequest struct {
	DriverID         *int64              `json:"driver_id"`
	TruckID          *int64              `json:"truck_id"`
	StartLocation    *string             `json:"start_location"`
	StartCoordinates *models.Coordinates `json:"start_coordinates"`
	EndLocation      *string             `json:"end_location"`
	EndCoordinates   *models.Coordinates `json:"end_coordinates"`
	StartTime        *time.Time          `json:"start_time"`
	EndTime          *time.Time          `json:"end_time"`
	Status           *models.TripStatus  `json:"status"`
	Notes            *string             `json:"notes"`
}

// Delete responses echo the removed record next to the confirmation message.
type TruckDeleteResponse struct {
	Message string       `json:"message"`
	Truck   models.Truck `json:"truck"`
}

type TierDeleteResponse struct {
	Message string      `json:"message"`
	Tier    models.Tier `json:"tier"`
}

type TripDeleteResponse struct {
	Message string      `json:"message"`
	Trip    models.Trip `json:"trip"`
}
