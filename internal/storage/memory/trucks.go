package memory

import (
	"context"
	"sort"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

func (s *Store) CreateTruck(_ context.Context, truck models.Truck) (models.Truck, error) {
	defer s.lock()()

	if err := s.checkTruck(truck); err != nil {
		return models.Truck{}, err
	}
	now := s.now()
	truck.ID = s.st.nextID()
	truck.CreatedAt = now
	truck.UpdatedAt = now
	s.st.trucks[truck.ID] = truck
	return truck, nil
}

func (s *Store) FindTruck(_ context.Context, id int64) (models.Truck, error) {
	defer s.lock()()

	truck, ok := s.st.trucks[id]
	if !ok {
		return models.Truck{}, storage.ErrNotFound
	}
	return truck, nil
}

func (s *Store) ListTrucks(_ context.Context) ([]models.Truck, error) {
	defer s.lock()()

	trucks := make([]models.Truck, 0, len(s.st.trucks))
	for _, t := range s.st.trucks {
		trucks = append(trucks, t)
	}
	sort.Slice(trucks, func(i, j int) bool { return trucks[i].ID < trucks[j].ID })
	return trucks, nil
}

func (s *Store) UpdateTruck(_ context.Context, truck models.Truck) (models.Truck, error) {
	defer s.lock()()

	current, ok := s.st.trucks[truck.ID]
	if !ok {
		return models.Truck{}, storage.ErrNotFound
	}
	if err := s.checkTruck(truck); err != nil {
		return models.Truck{}, err
	}
	truck.CreatedAt = current.CreatedAt
	truck.UpdatedAt = s.now()
	s.st.trucks[truck.ID] = truck
	return truck, nil
}

func (s *Store) DeleteTruck(_ context.Context, id int64) error {
	defer s.lock()()

	if _, ok := s.st.trucks[id]; !ok {
		return storage.ErrNotFound
	}
	for _, trip := range s.st.trips {
		if trip.TruckID == id {
			return storage.ErrInUse
		}
	}
	for tierID, tier := range s.st.tiers {
		if tier.TruckID == id {
			delete(s.st.tiers, tierID)
		}
	}
	delete(s.st.trucks, id)
	return nil
}

func (s *Store) CountTrucksByStatus(_ context.Context) (map[models.TruckStatus]int, error) {
	defer s.lock()()

	counts := make(map[models.TruckStatus]int)
	for _, t := range s.st.trucks {
		counts[t.Status]++
	}
	return counts, nil
}

// checkTruck enforces unique plate and VIN and the assigned driver reference.
func (s *Store) checkTruck(truck models.Truck) error {
	for _, other := range s.st.trucks {
		if other.ID == truck.ID {
			continue
		}
		if other.LicensePlate == truck.LicensePlate || other.VIN == truck.VIN {
			return storage.ErrAlreadyExists
		}
	}
	if truck.AssignedDriverID != nil {
		if _, ok := s.st.users[*truck.AssignedDriverID]; !ok {
			return storage.ErrInUse
		}
	}
	return nil
}
