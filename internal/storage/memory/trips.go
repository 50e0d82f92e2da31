package memory

import (
	"context"
	"sort"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

func (s *Store) CreateTrip(_ context.Context, trip models.Trip) (models.Trip, error) {
	defer s.lock()()

	if err := s.checkTripRefs(trip); err != nil {
		return models.Trip{}, err
	}
	now := s.now()
	trip.ID = s.st.nextID()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	trip.DriverEmail, trip.TruckPlate = "", ""
	s.st.trips[trip.ID] = trip
	return s.populate(trip), nil
}

func (s *Store) FindTrip(_ context.Context, id int64) (models.Trip, error) {
	defer s.lock()()

	trip, ok := s.st.trips[id]
	if !ok {
		return models.Trip{}, storage.ErrNotFound
	}
	return s.populate(trip), nil
}

func (s *Store) ListTrips(_ context.Context) ([]models.Trip, error) {
	defer s.lock()()

	return s.sortedTrips(func(models.Trip) bool { return true }), nil
}

func (s *Store) ListTripsByDriver(_ context.Context, driverID int64) ([]models.Trip, error) {
	defer s.lock()()

	return s.sortedTrips(func(t models.Trip) bool { return t.DriverID == driverID }), nil
}

func (s *Store) RecentTrips(_ context.Context, limit int) ([]models.Trip, error) {
	defer s.lock()()

	trips := make([]models.Trip, 0, len(s.st.trips))
	for _, t := range s.st.trips {
		trips = append(trips, s.populate(t))
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].ID > trips[j].ID })
	if limit >= 0 && len(trips) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

func (s *Store) UpdateTrip(_ context.Context, trip models.Trip) (models.Trip, error) {
	defer s.lock()()

	current, ok := s.st.trips[trip.ID]
	if !ok {
		return models.Trip{}, storage.ErrNotFound
	}
	if err := s.checkTripRefs(trip); err != nil {
		return models.Trip{}, err
	}
	trip.CreatedAt = current.CreatedAt
	trip.UpdatedAt = s.now()
	trip.DriverEmail, trip.TruckPlate = "", ""
	s.st.trips[trip.ID] = trip
	return s.populate(trip), nil
}

func (s *Store) DeleteTrip(_ context.Context, id int64) error {
	defer s.lock()()

	if _, ok := s.st.trips[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.st.trips, id)
	return nil
}

func (s *Store) CountTripsByStatus(_ context.Context, status models.TripStatus) (int, error) {
	defer s.lock()()

	count := 0
	for _, t := range s.st.trips {
		if t.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *Store) checkTripRefs(trip models.Trip) error {
	if _, ok := s.st.users[trip.DriverID]; !ok {
		return storage.ErrInUse
	}
	if _, ok := s.st.trucks[trip.TruckID]; !ok {
		return storage.ErrInUse
	}
	return nil
}

func (s *Store) populate(trip models.Trip) models.Trip {
	if u, ok := s.st.users[trip.DriverID]; ok {
		trip.DriverEmail = u.Email
	}
	if t, ok := s.st.trucks[trip.TruckID]; ok {
		trip.TruckPlate = t.LicensePlate
	}
	return trip
}

func (s *Store) sortedTrips(keep func(models.Trip) bool) []models.Trip {
	trips := []models.Trip{}
	for _, t := range s.st.trips {
		if keep(t) {
			trips = append(trips, s.populate(t))
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].StartTime.Equal(trips[j].StartTime) {
			return trips[i].StartTime.Before(trips[j].StartTime)
		}
		return trips[i].ID < trips[j].ID
	})
	return trips
}
