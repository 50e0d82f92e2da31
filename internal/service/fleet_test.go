package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
)

func TestCreateTruckMountsFourGoodTiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	truck, tiers, err := f.svc.Trucks().Create(ctx, truckRequest("ABC-123"))
	require.NoError(t, err)
	assert.Equal(t, models.TruckAvailable, truck.Status)
	require.Len(t, tiers, 4)
	for i, tier := range tiers {
		assert.Equal(t, models.TierPositions[i], tier.Position)
		assert.Equal(t, models.ConditionGood, tier.Condition)
		assert.Equal(t, truck.ID, tier.TruckID)
	}

	stored, err := f.svc.Tiers().ListByTruck(ctx, truck.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestCreateTruckFailureLeavesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.truck(t, "ABC-123")

	dup := truckRequest("ABC-123")
	dup.VIN = "OTHER"
	_, _, err := f.svc.Trucks().Create(ctx, dup)
	requireKind(t, err, KindConflict)

	trucks, err := f.svc.Trucks().List(ctx)
	require.NoError(t, err)
	assert.Len(t, trucks, 1)
	tiers, err := f.svc.Tiers().List(ctx)
	require.NoError(t, err)
	assert.Len(t, tiers, 4)
}

func TestCreateTruckValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := truckRequest("ABC-123")
	bad.FuelType = "Coal"
	_, _, err := f.svc.Trucks().Create(ctx, bad)
	requireKind(t, err, KindValidation)

	ghost := int64(99)
	bad = truckRequest("ABC-124")
	bad.AssignedDriverID = &ghost
	_, _, err = f.svc.Trucks().Create(ctx, bad)
	requireKind(t, err, KindValidation)
}

func TestDeleteTruckRemovesTiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	truck := f.truck(t, "ABC-123")

	deleted, err := f.svc.Trucks().Delete(ctx, truck.ID)
	require.NoError(t, err)
	assert.Equal(t, truck.ID, deleted.ID)
	assert.Equal(t, "ABC-123", deleted.LicensePlate)

	tiers, err := f.svc.Tiers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tiers)

	_, err = f.svc.Trucks().Get(ctx, truck.ID)
	requireKind(t, err, KindNotFound)
}

func TestTierUpdateByDriverIsConditionOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "d1@example.com")
	truck := f.truck(t, "ABC-123")
	tiers, err := f.svc.Tiers().ListByTruck(ctx, truck.ID)
	require.NoError(t, err)
	caller := auth.Identity{UserID: driver.ID, Role: models.RoleDriver}

	worn := models.ConditionWorn
	updated, err := f.svc.Tiers().Update(ctx, tiers[0].ID, dto.TierUpdateRequest{Condition: &worn}, caller)
	require.NoError(t, err)
	assert.Equal(t, models.ConditionWorn, updated.Condition)

	pos := models.RearRight
	_, err = f.svc.Tiers().Update(ctx, tiers[0].ID, dto.TierUpdateRequest{Position: &pos}, caller)
	requireKind(t, err, KindForbidden)

	bogus := models.TierCondition("Flat")
	_, err = f.svc.Tiers().Update(ctx, tiers[0].ID, dto.TierUpdateRequest{Condition: &bogus}, adminCaller)
	requireKind(t, err, KindValidation)
}

func TestTierCreateRequiresTruck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Tiers().Create(ctx, dto.TierRequest{Position: models.FrontLeft, TruckID: 7})
	requireKind(t, err, KindValidation)

	truck := f.truck(t, "ABC-123")
	tier, err := f.svc.Tiers().Create(ctx, dto.TierRequest{Position: models.FrontLeft, TruckID: truck.ID})
	require.NoError(t, err)
	assert.Equal(t, models.ConditionGood, tier.Condition)
}

func tripRequest(driverID, truckID int64, start time.Time) dto.TripRequest {
	return dto.TripRequest{
		DriverID:      driverID,
		TruckID:       truckID,
		StartLocation: "Kuala Lumpur",
		EndLocation:   "Penang",
		StartTime:     start,
		EndTime:       start.Add(5 * time.Hour),
	}
}

func TestCreateTripValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "d1@example.com")
	truck := f.truck(t, "ABC-123")
	admin, err := f.svc.Auth().EnsureAdmin(ctx, "admin@driveops.local", "admin123")
	require.NoError(t, err)
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	trip, err := f.svc.Trips().Create(ctx, tripRequest(driver.ID, truck.ID, start))
	require.NoError(t, err)
	assert.Equal(t, models.TripPlanned, trip.Status)
	assert.Equal(t, "d1@example.com", trip.DriverEmail)
	assert.Equal(t, "ABC-123", trip.TruckPlate)

	_, err = f.svc.Trips().Create(ctx, tripRequest(admin.ID, truck.ID, start))
	requireKind(t, err, KindValidation)

	_, err = f.svc.Trips().Create(ctx, tripRequest(driver.ID, 404, start))
	requireKind(t, err, KindValidation)

	backwards := tripRequest(driver.ID, truck.ID, start)
	backwards.EndTime = start.Add(-time.Hour)
	_, err = f.svc.Trips().Create(ctx, backwards)
	requireKind(t, err, KindValidation)
}

func TestTripUpdateByDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.driver(t, "d1@example.com")
	other := f.driver(t, "d2@example.com")
	truck := f.truck(t, "ABC-123")
	trip, err := f.svc.Trips().Create(ctx, tripRequest(owner.ID, truck.ID, time.Now()))
	require.NoError(t, err)

	status, notes := models.TripInProgress, "on the road"
	updated, err := f.svc.Trips().Update(ctx, trip.ID,
		dto.TripUpdateRequest{Status: &status, Notes: &notes},
		auth.Identity{UserID: owner.ID, Role: models.RoleDriver})
	require.NoError(t, err)
	assert.Equal(t, models.TripInProgress, updated.Status)
	assert.Equal(t, "on the road", updated.Notes)

	_, err = f.svc.Trips().Update(ctx, trip.ID,
		dto.TripUpdateRequest{Status: &status},
		auth.Identity{UserID: other.ID, Role: models.RoleDriver})
	requireKind(t, err, KindForbidden)

	place := "Johor"
	_, err = f.svc.Trips().Update(ctx, trip.ID,
		dto.TripUpdateRequest{EndLocation: &place},
		auth.Identity{UserID: owner.ID, Role: models.RoleDriver})
	requireKind(t, err, KindForbidden)

	updated, err = f.svc.Trips().Update(ctx, trip.ID, dto.TripUpdateRequest{EndLocation: &place}, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, "Johor", updated.EndLocation)
}

func TestDeleteDriverWithTripsConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, "d1@example.com")
	truck := f.truck(t, "ABC-123")
	trip, err := f.svc.Trips().Create(ctx, tripRequest(driver.ID, truck.ID, time.Now()))
	require.NoError(t, err)

	requireKind(t, f.svc.Drivers().Delete(ctx, driver.ID), KindConflict)
	_, err = f.svc.Trucks().Delete(ctx, truck.ID)
	requireKind(t, err, KindConflict)

	deleted, err := f.svc.Trips().Delete(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, deleted.ID)

	_, err = f.svc.Trips().Delete(ctx, trip.ID)
	requireKind(t, err, KindNotFound)
	require.NoError(t, f.svc.Drivers().Delete(ctx, driver.ID))
}

func TestDeleteTierReturnsRemovedTier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	truck := f.truck(t, "ABC-123")

	tiers, err := f.svc.Tiers().ListByTruck(ctx, truck.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 4)

	deleted, err := f.svc.Tiers().Delete(ctx, tiers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, tiers[0], deleted)

	left, err := f.svc.Tiers().ListByTruck(ctx, truck.ID)
	require.NoError(t, err)
	assert.Len(t, left, 3)

	_, err = f.svc.Tiers().Delete(ctx, tiers[0].ID)
	requireKind(t, err, KindNotFound)
}
