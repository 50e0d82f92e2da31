package dto

import "github.com/hongminglow/driveops-be/internal/models"

type DashboardStats struct {
	PendingApplications int                `json:"pendingApplications"`
	ActiveTrips         int                `json:"activeTrips"`
	TotalDrivers        int                `json:"totalDrivers"`
	MaintenanceTrucks   int                `json:"maintenanceTrucks"`
	RecentTrips         []models.Trip      `json:"recentTrips"`
	FleetStatus         models.FleetStatus `json:"fleetStatus"`
}

type DriverTripStats struct {
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
	Efficiency int `json:"efficiency"`
}

type DriverStats struct {
	CurrentTrip   *models.Trip    `json:"currentTrip"`
	UpcomingTrips []models.Trip   `json:"upcomingTrips"`
	Stats         DriverTripStats `json:"stats"`
}
