package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage/memory"
)

var adminCaller = auth.Identity{UserID: 1, Role: models.RoleAdmin, Email: "admin@driveops.local"}

type fixture struct {
	store  *memory.Store
	tokens *auth.TokenManager
	svc    IServiceManager
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "driveops-test", time.Hour)
	return fixture{store: store, tokens: tokens, svc: New(store, tokens, logger.NewNop())}
}

func (f fixture) driver(t *testing.T, email string) models.User {
	t.Helper()
	user, err := f.svc.Drivers().Create(context.Background(), dto.DriverRequest{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return user
}

func (f fixture) truck(t *testing.T, plate string) models.Truck {
	t.Helper()
	truck, _, err := f.svc.Trucks().Create(context.Background(), truckRequest(plate))
	require.NoError(t, err)
	return truck
}

func truckRequest(plate string) dto.TruckRequest {
	return dto.TruckRequest{
		LicensePlate: plate,
		VIN:          "VIN-" + plate,
		Brand:        "Volvo",
		Model:        "FH16",
		Year:         2022,
		Type:         "Heavy",
		CapacityKg:   18000,
		FuelType:     models.FuelDiesel,
	}
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected service error, got %v", err)
	assert.Equal(t, kind, svcErr.Kind, svcErr.Message)
}

func TestLoginIssuesTokenForStoredRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "driver@example.com")

	token, user, err := f.svc.Auth().Login(ctx, "  Driver@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, driver.ID, user.ID)

	id, ok := f.svc.Auth().ValidateToken(token)
	require.True(t, ok)
	assert.Equal(t, driver.ID, id.UserID)
	assert.Equal(t, models.RoleDriver, id.Role)
}

func TestLoginRejectsUnknownEmailAndWrongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.driver(t, "driver@example.com")

	_, _, err := f.svc.Auth().Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.svc.Auth().Login(ctx, "driver@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.svc.Auth().Login(ctx, "", "")
	requireKind(t, err, KindValidation)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	f := newFixture(t)

	_, ok := f.svc.Auth().ValidateToken("not-a-token")
	assert.False(t, ok)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Auth().EnsureAdmin(ctx, "Admin@DriveOps.local", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)

	second, err := f.svc.Auth().EnsureAdmin(ctx, "admin@driveops.local", "different")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	admins, err := f.store.CountUsersByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, admins)

	_, _, err = f.svc.Auth().Login(ctx, "admin@driveops.local", "admin123")
	assert.NoError(t, err)
}

func TestDriverServiceHidesAdmins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.svc.Auth().EnsureAdmin(ctx, "admin@driveops.local", "admin123")
	require.NoError(t, err)
	f.driver(t, "d1@example.com")

	drivers, err := f.svc.Drivers().List(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, "d1@example.com", drivers[0].Email)

	_, err = f.svc.Drivers().Get(ctx, admin.ID)
	requireKind(t, err, KindNotFound)

	err = f.svc.Drivers().Delete(ctx, admin.ID)
	requireKind(t, err, KindNotFound)
}

func TestDriverUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "d1@example.com")

	email, empty := "renamed@example.com", ""
	updated, err := f.svc.Drivers().Update(ctx, driver.ID, dto.DriverUpdateRequest{Email: &email, Password: &empty})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)

	_, _, err = f.svc.Auth().Login(ctx, email, "secret1")
	assert.NoError(t, err)

	fresh := "secret2"
	_, err = f.svc.Drivers().Update(ctx, driver.ID, dto.DriverUpdateRequest{Password: &fresh})
	require.NoError(t, err)
	_, _, err = f.svc.Auth().Login(ctx, email, "secret2")
	assert.NoError(t, err)
}

func TestDriverCreateValidatesAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.driver(t, "d1@example.com")

	_, err := f.svc.Drivers().Create(ctx, dto.DriverRequest{Email: "D1@example.com", Password: "secret1"})
	requireKind(t, err, KindConflict)

	_, err = f.svc.Drivers().Create(ctx, dto.DriverRequest{Email: "not-an-email", Password: "secret1"})
	requireKind(t, err, KindValidation)

	_, err = f.svc.Drivers().Create(ctx, dto.DriverRequest{Email: "d2@example.com", Password: "short"})
	requireKind(t, err, KindValidation)
}
