package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
)

// RecentTripsLimit is how many trips the admin dashboard shows.
const RecentTripsLimit = 5

type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
	DriverStats(ctx context.Context, driverID int64) (dto.DriverStats, error)
}

type dashboardService struct {
	stg storage.Store
	log logger.ILogger
}

func NewDashboardService(stg storage.Store, log logger.ILogger) DashboardService {
	return &dashboardService{stg: stg, log: log}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	var (
		stats        dto.DashboardStats
		trucksStatus map[models.TruckStatus]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.PendingApplications, err = s.stg.CountApplicationsByStatus(gctx, models.ApplicationPending)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveTrips, err = s.stg.CountTripsByStatus(gctx, models.TripInProgress)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDrivers, err = s.stg.CountUsersByRole(gctx, models.RoleDriver)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentTrips, err = s.stg.RecentTrips(gctx, RecentTripsLimit)
		return err
	})
	g.Go(func() (err error) {
		trucksStatus, err = s.stg.CountTrucksByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardStats{}, storeErr("dashboard", err)
	}

	stats.MaintenanceTrucks = trucksStatus[models.TruckMaintenance]
	stats.FleetStatus = models.FleetStatus{
		Available:   trucksStatus[models.TruckAvailable],
		InUse:       trucksStatus[models.TruckInUse],
		Maintenance: trucksStatus[models.TruckMaintenance],
		Retired:     trucksStatus[models.TruckRetired],
	}
	return stats, nil
}

func (s *dashboardService) DriverStats(ctx context.Context, driverID int64) (dto.DriverStats, error) {
	trips, err := s.stg.ListTripsByDriver(ctx, driverID)
	if err != nil {
		return dto.DriverStats{}, storeErr("trips", err)
	}

	out := dto.DriverStats{UpcomingTrips: []models.Trip{}}
	for i := range trips {
		trip := trips[i]
		switch trip.Status {
		case models.TripInProgress:
			if out.CurrentTrip == nil {
				out.CurrentTrip = &trip
			}
		case models.TripPlanned:
			out.UpcomingTrips = append(out.UpcomingTrips, trip)
		case models.TripCompleted:
			out.Stats.Completed++
		case models.TripCancelled:
			out.Stats.Cancelled++
		}
	}
	out.Stats.Total = len(trips)
	if finished := out.Stats.Completed + out.Stats.Cancelled; finished > 0 {
		out.Stats.Efficiency = int(math.Round(float64(out.Stats.Completed) * 100 / float64(finished)))
	}
	return out, nil
}
