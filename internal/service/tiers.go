package service

import (
	"context"
	"errors"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
)

type TierService interface {
	Create(ctx context.Context, req dto.TierRequest) (models.Tier, error)
	List(ctx context.Context) ([]models.Tier, error)
	Get(ctx context.Context, id int64) (models.Tier, error)
	ListByTruck(ctx context.Context, truckID int64) ([]models.Tier, error)
	// Update changes a tier. Drivers may only report its condition.
	Update(ctx context.Context, id int64, req dto.TierUpdateRequest, caller auth.Identity) (models.Tier, error)
	Delete(ctx context.Context, id int64) (models.Tier, error)
}

type tierService struct {
	stg storage.Store
	log logger.ILogger
}

func NewTierService(stg storage.Store, log logger.ILogger) TierService {
	return &tierService{stg: stg, log: log}
}

func (s *tierService) Create(ctx context.Context, req dto.TierRequest) (models.Tier, error) {
	tier := models.Tier{Position: req.Position, Condition: req.Condition, TruckID: req.TruckID}
	if tier.Condition == "" {
		tier.Condition = models.ConditionGood
	}
	if err := validateTier(tier); err != nil {
		return models.Tier{}, err
	}
	if _, err := s.stg.FindTruck(ctx, tier.TruckID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Tier{}, validation("truck does not exist")
		}
		return models.Tier{}, storeErr("truck", err)
	}

	created, err := s.stg.CreateTiers(ctx, []models.Tier{tier})
	if err != nil {
		return models.Tier{}, storeErr("tier", err)
	}
	return created[0], nil
}

func (s *tierService) List(ctx context.Context) ([]models.Tier, error) {
	tiers, err := s.stg.ListTiers(ctx)
	return tiers, storeErr("tiers", err)
}

func (s *tierService) Get(ctx context.Context, id int64) (models.Tier, error) {
	tier, err := s.stg.FindTier(ctx, id)
	return tier, storeErr("tier", err)
}

func (s *tierService) ListByTruck(ctx context.Context, truckID int64) ([]models.Tier, error) {
	tiers, err := s.stg.ListTiersByTruck(ctx, truckID)
	return tiers, storeErr("tiers", err)
}

func (s *tierService) Update(ctx context.Context, id int64, req dto.TierUpdateRequest, caller auth.Identity) (models.Tier, error) {
	if caller.Role == models.RoleDriver && req.Position != nil {
		return models.Tier{}, forbidden("drivers may only update a tier's condition")
	}
	tier, err := s.stg.FindTier(ctx, id)
	if err != nil {
		return models.Tier{}, storeErr("tier", err)
	}
	if req.Position != nil {
		tier.Position = *req.Position
	}
	if req.Condition != nil {
		tier.Condition = *req.Condition
	}
	if err := validateTier(tier); err != nil {
		return models.Tier{}, err
	}

	updated, err := s.stg.UpdateTier(ctx, tier)
	if err != nil {
		return models.Tier{}, storeErr("tier", err)
	}
	s.log.Info("tier updated",
		logger.Int64("tier_id", id),
		logger.String("condition", string(updated.Condition)),
		logger.Int64("by", caller.UserID))
	return updated, nil
}

func (s *tierService) Delete(ctx context.Context, id int64) (models.Tier, error) {
	var deleted models.Tier
	err := s.stg.WithTx(ctx, func(tx storage.Store) error {
		tier, err := tx.FindTier(ctx, id)
		if err != nil {
			return storeErr("tier", err)
		}
		if err := tx.DeleteTier(ctx, id); err != nil {
			return storeErr("tier", err)
		}
		deleted = tier
		return nil
	})
	return deleted, err
}

func validateTier(t models.Tier) error {
	if !t.Position.Valid() {
		return validation("position must be Front Left, Front Right, Rear Left or Rear Right")
	}
	if !t.Condition.Valid() {
		return validation("condition must be New, Good, Worn or Needs Replacement")
	}
	return nil
}
