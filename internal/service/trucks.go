package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
)

type TruckService interface {
	// Create inserts the truck and one Good tier per wheel position, all or nothing.
	Create(ctx context.Context, req dto.TruckRequest) (models.Truck, []models.Tier, error)
	List(ctx context.Context) ([]models.Truck, error)
	Get(ctx context.Context, id int64) (models.Truck, error)
	Update(ctx context.Context, id int64, req dto.TruckRequest) (models.Truck, error)
	// Delete removes a truck and its tires and returns the removed truck.
	Delete(ctx context.Context, id int64) (models.Truck, error)
}

type truckService struct {
	stg storage.Store
	log logger.ILogger
}

func NewTruckService(stg storage.Store, log logger.ILogger) TruckService {
	return &truckService{stg: stg, log: log}
}

// TruckRequestFrom converts a stored truck back into an editable request.
func TruckRequestFrom(t models.Truck) dto.TruckRequest {
	return dto.TruckRequest{
		LicensePlate:     t.LicensePlate,
		VIN:              t.VIN,
		Brand:            t.Brand,
		Model:            t.Model,
		Year:             t.Year,
		Type:             t.Type,
		CapacityKg:       t.CapacityKg,
		FuelType:         t.FuelType,
		CurrentMileage:   t.CurrentMileage,
		Status:           t.Status,
		AssignedDriverID: t.AssignedDriverID,
		LastServiceDate:  t.LastServiceDate,
		NextServiceDue:   t.NextServiceDue,
		Notes:            t.Notes,
	}
}

func (s *truckService) Create(ctx context.Context, req dto.TruckRequest) (models.Truck, []models.Tier, error) {
	truck, err := s.truckFromRequest(ctx, req)
	if err != nil {
		return models.Truck{}, nil, err
	}

	var tiers []models.Tier
	err = s.stg.WithTx(ctx, func(tx storage.Store) error {
		created, err := tx.CreateTruck(ctx, truck)
		if err != nil {
			return truckStoreErr(err)
		}
		pending := make([]models.Tier, 0, len(models.TierPositions))
		for _, pos := range models.TierPositions {
			pending = append(pending, models.Tier{Position: pos, Condition: models.ConditionGood, TruckID: created.ID})
		}
		tiers, err = tx.CreateTiers(ctx, pending)
		if err != nil {
			return storeErr("tier", err)
		}
		truck = created
		return nil
	})
	if err != nil {
		return models.Truck{}, nil, err
	}
	s.log.Info("truck created", logger.Int64("truck_id", truck.ID), logger.Int("tiers", len(tiers)))
	return truck, tiers, nil
}

func (s *truckService) List(ctx context.Context) ([]models.Truck, error) {
	trucks, err := s.stg.ListTrucks(ctx)
	return trucks, storeErr("trucks", err)
}

func (s *truckService) Get(ctx context.Context, id int64) (models.Truck, error) {
	truck, err := s.stg.FindTruck(ctx, id)
	return truck, storeErr("truck", err)
}

func (s *truckService) Update(ctx context.Context, id int64, req dto.TruckRequest) (models.Truck, error) {
	truck, err := s.truckFromRequest(ctx, req)
	if err != nil {
		return models.Truck{}, err
	}
	truck.ID = id
	updated, err := s.stg.UpdateTruck(ctx, truck)
	if err != nil {
		return models.Truck{}, truckStoreErr(err)
	}
	return updated, nil
}

func (s *truckService) Delete(ctx context.Context, id int64) (models.Truck, error) {
	var deleted models.Truck
	err := s.stg.WithTx(ctx, func(tx storage.Store) error {
		truck, err := tx.FindTruck(ctx, id)
		if err != nil {
			return storeErr("truck", err)
		}
		err = tx.DeleteTruck(ctx, id)
		if errors.Is(err, storage.ErrInUse) {
			return &Error{Kind: KindConflict, Message: "truck still has trips assigned", Err: err}
		}
		if err != nil {
			return storeErr("truck", err)
		}
		deleted = truck
		return nil
	})
	if err != nil {
		return models.Truck{}, err
	}
	s.log.Info("truck deleted", logger.Int64("truck_id", id))
	return deleted, nil
}

func (s *truckService) truckFromRequest(ctx context.Context, req dto.TruckRequest) (models.Truck, error) {
	t := models.Truck{
		LicensePlate:     strings.TrimSpace(req.LicensePlate),
		VIN:              strings.TrimSpace(req.VIN),
		Brand:            strings.TrimSpace(req.Brand),
		Model:            strings.TrimSpace(req.Model),
		Year:             req.Year,
		Type:             strings.TrimSpace(req.Type),
		CapacityKg:       req.CapacityKg,
		FuelType:         req.FuelType,
		CurrentMileage:   req.CurrentMileage,
		Status:           req.Status,
		AssignedDriverID: req.AssignedDriverID,
		LastServiceDate:  req.LastServiceDate,
		NextServiceDue:   req.NextServiceDue,
		Notes:            strings.TrimSpace(req.Notes),
	}
	if t.Status == "" {
		t.Status = models.TruckAvailable
	}

	switch {
	case t.LicensePlate == "" || t.VIN == "" || t.Brand == "" || t.Model == "" || t.Type == "":
		return models.Truck{}, validation("license plate, vin, brand, model and type are required")
	case t.Year <= 0:
		return models.Truck{}, validation("year must be positive")
	case t.CapacityKg < 0 || t.CurrentMileage < 0:
		return models.Truck{}, validation("capacity and mileage cannot be negative")
	case !t.FuelType.Valid():
		return models.Truck{}, validation("fuel type must be Diesel, Gasoline or Electric")
	case !t.Status.Valid():
		return models.Truck{}, validation("status must be Available, In-use, Maintenance or Retired")
	}

	if t.AssignedDriverID != nil {
		driver, err := s.stg.FindUserByID(ctx, *t.AssignedDriverID)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && driver.Role != models.RoleDriver) {
			return models.Truck{}, validation("assigned driver does not exist")
		}
		if err != nil {
			return models.Truck{}, storeErr("driver", err)
		}
	}
	return t, nil
}

func truckStoreErr(err error) error {
	if errors.Is(err, storage.ErrAlreadyExists) {
		return &Error{Kind: KindConflict, Message: "a truck with this license plate or vin already exists", Err: err}
	}
	return storeErr("truck", err)
}
