package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
)

type TripService interface {
	Create(ctx context.Context, req dto.TripRequest) (models.Trip, error)
	List(ctx context.Context) ([]models.Trip, error)
	Get(ctx context.Context, id int64) (models.Trip, error)
	// Update changes a trip. Drivers may only touch status and notes of their own trips.
	Update(ctx context.Context, id int64, req dto.TripUpdateRequest, caller auth.Identity) (models.Trip, error)
	Delete(ctx context.Context, id int64) (models.Trip, error)
}

type tripService struct {
	stg storage.Store
	log logger.ILogger
}

func NewTripService(stg storage.Store, log logger.ILogger) TripService {
	return &tripService{stg: stg, log: log}
}

func (s *tripService) Create(ctx context.Context, req dto.TripRequest) (models.Trip, error) {
	trip := models.Trip{
		DriverID:         req.DriverID,
		TruckID:          req.TruckID,
		StartLocation:    strings.TrimSpace(req.StartLocation),
		StartCoordinates: req.StartCoordinates,
		EndLocation:      strings.TrimSpace(req.EndLocation),
		EndCoordinates:   req.EndCoordinates,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           req.Status,
		Notes:            strings.TrimSpace(req.Notes),
	}
	if trip.Status == "" {
		trip.Status = models.TripPlanned
	}
	if err := s.validate(ctx, trip); err != nil {
		return models.Trip{}, err
	}

	created, err := s.stg.CreateTrip(ctx, trip)
	if err != nil {
		return models.Trip{}, storeErr("trip", err)
	}
	s.log.Info("trip created", logger.Int64("trip_id", created.ID), logger.Int64("driver_id", created.DriverID))
	return created, nil
}

func (s *tripService) List(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.stg.ListTrips(ctx)
	return trips, storeErr("trips", err)
}

func (s *tripService) Get(ctx context.Context, id int64) (models.Trip, error) {
	trip, err := s.stg.FindTrip(ctx, id)
	return trip, storeErr("trip", err)
}

func (s *tripService) Update(ctx context.Context, id int64, req dto.TripUpdateRequest, caller auth.Identity) (models.Trip, error) {
	trip, err := s.stg.FindTrip(ctx, id)
	if err != nil {
		return models.Trip{}, storeErr("trip", err)
	}

	if caller.Role == models.RoleDriver {
		if trip.DriverID != caller.UserID {
			return models.Trip{}, forbidden("trip is assigned to another driver")
		}
		if req.DriverID != nil || req.TruckID != nil || req.StartLocation != nil || req.EndLocation != nil ||
			req.StartCoordinates != nil || req.EndCoordinates != nil || req.StartTime != nil || req.EndTime != nil {
			return models.Trip{}, forbidden("drivers may only update a trip's status and notes")
		}
	}

	if req.DriverID != nil {
		trip.DriverID = *req.DriverID
	}
	if req.TruckID != nil {
		trip.TruckID = *req.TruckID
	}
	if req.StartLocation != nil {
		trip.StartLocation = strings.TrimSpace(*req.StartLocation)
	}
	if req.StartCoordinates != nil {
		trip.StartCoordinates = req.StartCoordinates
	}
	if req.EndLocation != nil {
		trip.EndLocation = strings.TrimSpace(*req.EndLocation)
	}
	if req.EndCoordinates != nil {
		trip.EndCoordinates = req.EndCoordinates
	}
	if req.StartTime != nil {
		trip.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		trip.EndTime = *req.EndTime
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}
	if req.Notes != nil {
		trip.Notes = strings.TrimSpace(*req.Notes)
	}
	if err := s.validate(ctx, trip); err != nil {
		return models.Trip{}, err
	}

	updated, err := s.stg.UpdateTrip(ctx, trip)
	if err != nil {
		return models.Trip{}, storeErr("trip", err)
	}
	s.log.Info("trip updated",
		logger.Int64("trip_id", id),
		logger.String("status", string(updated.Status)),
		logger.Int64("by", caller.UserID))
	return updated, nil
}

func (s *tripService) Delete(ctx context.Context, id int64) (models.Trip, error) {
	var deleted models.Trip
	err := s.stg.WithTx(ctx, func(tx storage.Store) error {
		trip, err := tx.FindTrip(ctx, id)
		if err != nil {
			return storeErr("trip", err)
		}
		if err := tx.DeleteTrip(ctx, id); err != nil {
			return storeErr("trip", err)
		}
		deleted = trip
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	s.log.Info("trip deleted", logger.Int64("trip_id", id))
	return deleted, nil
}

func (s *tripService) validate(ctx context.Context, t models.Trip) error {
	switch {
	case t.StartLocation == "" || t.EndLocation == "":
		return validation("start and end locations are required")
	case t.StartTime.IsZero() || t.EndTime.IsZero():
		return validation("start and end times are required")
	case !t.EndTime.After(t.StartTime):
		return validation("end time must be after start time")
	case !t.Status.Valid():
		return validation("status must be Planned, In Progress, Completed or Cancelled")
	}

	driver, err := s.stg.FindUserByID(ctx, t.DriverID)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && driver.Role != models.RoleDriver) {
		return validation("driver does not exist")
	}
	if err != nil {
		return storeErr("driver", err)
	}
	if _, err := s.stg.FindTruck(ctx, t.TruckID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return validation("truck does not exist")
		}
		return storeErr("truck", err)
	}
	return nil
}
