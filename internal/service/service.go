package service

import (
	"net/mail"
	"strings"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/storage"
)

// MinPasswordLength applies to applicant and driver passwords.
const MinPasswordLength = 6

type IServiceManager interface {
	Auth() AuthService
	Applications() ApplicationService
	Drivers() DriverService
	Trucks() TruckService
	Tiers() TierService
	Trips() TripService
	Dashboard() DashboardService
}

type service struct {
	authService        AuthService
	applicationService ApplicationService
	driverService      DriverService
	truckService       TruckService
	tierService        TierService
	tripService        TripService
	dashboardService   DashboardService
}

func New(stg storage.Store, tokens *auth.TokenManager, log logger.ILogger) IServiceManager {
	return &service{
		authService:        NewAuthService(stg, tokens, log),
		applicationService: NewApplicationService(stg, log),
		driverService:      NewDriverService(stg, log),
		truckService:       NewTruckService(stg, log),
		tierService:        NewTierService(stg, log),
		tripService:        NewTripService(stg, log),
		dashboardService:   NewDashboardService(stg, log),
	}
}

func (s *service) Auth() AuthService                { return s.authService }
func (s *service) Applications() ApplicationService { return s.applicationService }
func (s *service) Drivers() DriverService           { return s.driverService }
func (s *service) Trucks() TruckService             { return s.truckService }
func (s *service) Tiers() TierService               { return s.tierService }
func (s *service) Trips() TripService               { return s.tripService }
func (s *service) Dashboard() DashboardService      { return s.dashboardService }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validation("email is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return validation("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
