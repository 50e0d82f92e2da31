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

// DriverService manages driver credentials on behalf of admins. Admin
// accounts are invisible through it.
type DriverService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, req dto.DriverRequest) (models.User, error)
	Update(ctx context.Context, id int64, req dto.DriverUpdateRequest) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type driverService struct {
	stg storage.Store
	log logger.ILogger
}

func NewDriverService(stg storage.Store, log logger.ILogger) DriverService {
	return &driverService{stg: stg, log: log}
}

func (s *driverService) List(ctx context.Context) ([]models.User, error) {
	drivers, err := s.stg.ListUsersByRole(ctx, models.RoleDriver)
	return drivers, storeErr("drivers", err)
}

func (s *driverService) Get(ctx context.Context, id int64) (models.User, error) {
	user, err := s.stg.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, storeErr("driver", err)
	}
	if user.Role != models.RoleDriver {
		return models.User{}, storeErr("driver", storage.ErrNotFound)
	}
	return user, nil
}

func (s *driverService) Create(ctx context.Context, req dto.DriverRequest) (models.User, error) {
	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return models.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return models.User{}, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.stg.CreateUser(ctx, models.User{Email: email, PasswordHash: hash, Role: models.RoleDriver})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.User{}, &Error{Kind: KindConflict, Message: "a user with this email already exists", Err: err}
	}
	if err != nil {
		return models.User{}, storeErr("driver", err)
	}
	s.log.Info("driver created", logger.Int64("user_id", created.ID))
	return created, nil
}

func (s *driverService) Update(ctx context.Context, id int64, req dto.DriverUpdateRequest) (models.User, error) {
	driver, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return models.User{}, err
		}
		driver.Email = email
	}
	// An empty password keeps the current one.
	if req.Password != nil && *req.Password != "" {
		if err := validatePassword(*req.Password); err != nil {
			return models.User{}, err
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return models.User{}, err
		}
		driver.PasswordHash = hash
	}

	updated, err := s.stg.UpdateUser(ctx, driver)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.User{}, &Error{Kind: KindConflict, Message: "a user with this email already exists", Err: err}
	}
	return updated, storeErr("driver", err)
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.stg.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrInUse) {
			return &Error{Kind: KindConflict, Message: "driver still has trips assigned", Err: err}
		}
		return storeErr("driver", err)
	}
	s.log.Info("driver deleted", logger.Int64("user_id", id))
	return nil
}
