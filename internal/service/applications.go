package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
)

type ApplicationService interface {
	Submit(ctx context.Context, req dto.SubmitApplicationRequest) (models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
	// Review approves or rejects a pending application. Approval provisions a
	// driver credential from the application in the same transaction.
	Review(ctx context.Context, email string, approve bool, reviewer auth.Identity) (models.Application, error)
}

type applicationService struct {
	stg storage.Store
	log logger.ILogger
	now func() time.Time
}

func NewApplicationService(stg storage.Store, log logger.ILogger) ApplicationService {
	return &applicationService{stg: stg, log: log, now: time.Now}
}

func (s *applicationService) Submit(ctx context.Context, req dto.SubmitApplicationRequest) (models.Application, error) {
	app := models.Application{
		FullName: strings.TrimSpace(req.FullName),
		Email:    normalizeEmail(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		CVPath:   strings.TrimSpace(req.CVPath),
		Status:   models.ApplicationPending,
	}
	if app.FullName == "" || app.Phone == "" {
		return models.Application{}, validation("full name and phone number are required")
	}
	if err := validateEmail(app.Email); err != nil {
		return models.Application{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return models.Application{}, err
	}

	if _, err := s.stg.FindApplicationByEmail(ctx, app.Email); err == nil {
		return models.Application{}, &Error{Kind: KindConflict, Message: "application with this email already exists", Err: storage.ErrAlreadyExists}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Application{}, storeErr("application", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.Application{}, err
	}
	app.PasswordHash = hash

	created, err := s.stg.CreateApplication(ctx, app)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.Application{}, &Error{Kind: KindConflict, Message: "application with this email already exists", Err: err}
	}
	if err != nil {
		return models.Application{}, storeErr("application", err)
	}
	s.log.Info("application submitted", logger.Int64("application_id", created.ID))
	return created, nil
}

func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	apps, err := s.stg.ListApplications(ctx)
	return apps, storeErr("applications", err)
}

func (s *applicationService) Review(ctx context.Context, email string, approve bool, reviewer auth.Identity) (models.Application, error) {
	email = normalizeEmail(email)
	if email == "" {
		return models.Application{}, validation("email is required")
	}

	var reviewed models.Application
	err := s.stg.WithTx(ctx, func(tx storage.Store) error {
		app, err := tx.FindApplicationByEmail(ctx, email)
		if err != nil {
			return storeErr("application", err)
		}
		if app.Status.IsTerminal() {
			return &Error{Kind: KindConflict, Message: "application has already been " + string(app.Status), Err: ErrAlreadyReviewed}
		}

		if !approve {
			reviewed, err = tx.SetApplicationDecision(ctx, app.ID, models.ApplicationRejected, nil, s.now())
			return decisionErr(err)
		}

		// The applicant's hash becomes the credential as-is; the plaintext is long gone.
		user, err := tx.CreateUser(ctx, models.User{
			Email:        app.Email,
			PasswordHash: app.PasswordHash,
			Role:         models.RoleDriver,
		})
		if errors.Is(err, storage.ErrAlreadyExists) {
			return &Error{Kind: KindConflict, Message: "a user with this email already exists", Err: err}
		}
		if err != nil {
			return storeErr("user", err)
		}
		reviewed, err = tx.SetApplicationDecision(ctx, app.ID, models.ApplicationApproved, &user.ID, s.now())
		return decisionErr(err)
	})
	if err != nil {
		return models.Application{}, err
	}

	s.log.Info("application reviewed",
		logger.Int64("application_id", reviewed.ID),
		logger.String("status", string(reviewed.Status)),
		logger.Int64("reviewer_id", reviewer.UserID))
	return reviewed, nil
}

// decisionErr reports a review that lost a race with another review as already reviewed.
func decisionErr(err error) error {
	if errors.Is(err, storage.ErrStateChanged) {
		return &Error{Kind: KindConflict, Message: "application has already been reviewed", Err: ErrAlreadyReviewed}
	}
	return storeErr("application", err)
}
