package models

import "time"

type TripStatus string

const (
	TripPlanned    TripStatus = "Planned"
	TripInProgress TripStatus = "In Progress"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanned, TripInProgress, TripCompleted, TripCancelled:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Trip is a scheduled run of one driver in one truck. DriverEmail and
// TruckPlate are filled on reads for display.
type Trip struct {
	ID               int64        `json:"id"`
	DriverID         int64        `json:"driver_id"`
	DriverEmail      string       `json:"driver_email,omitempty"`
	TruckID          int64        `json:"truck_id"`
	TruckPlate       string       `json:"truck_license_plate,omitempty"`
	StartLocation    string       `json:"start_location"`
	StartCoordinates *Coordinates `json:"start_coordinates,omitempty"`
	EndLocation      string       `json:"end_location"`
	EndCoordinates   *Coordinates `json:"end_coordinates,omitempty"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
	Status           TripStatus   `json:"status"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
