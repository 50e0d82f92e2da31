package memory

import (
	"context"
	"sort"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

// CreateTiers validates every reference before writing anything.
func (s *Store) CreateTiers(_ context.Context, tiers []models.Tier) ([]models.Tier, error) {
	defer s.lock()()

	for _, t := range tiers {
		if _, ok := s.st.trucks[t.TruckID]; !ok {
			return nil, storage.ErrInUse
		}
	}
	now := s.now()
	created := make([]models.Tier, 0, len(tiers))
	for _, t := range tiers {
		t.ID = s.st.nextID()
		t.CreatedAt = now
		t.UpdatedAt = now
		s.st.tiers[t.ID] = t
		created = append(created, t)
	}
	return created, nil
}

func (s *Store) FindTier(_ context.Context, id int64) (models.Tier, error) {
	defer s.lock()()

	tier, ok := s.st.tiers[id]
	if !ok {
		return models.Tier{}, storage.ErrNotFound
	}
	return tier, nil
}

func (s *Store) ListTiers(_ context.Context) ([]models.Tier, error) {
	defer s.lock()()

	return s.filterTiers(func(models.Tier) bool { return true }), nil
}

func (s *Store) ListTiersByTruck(_ context.Context, truckID int64) ([]models.Tier, error) {
	defer s.lock()()

	return s.filterTiers(func(t models.Tier) bool { return t.TruckID == truckID }), nil
}

func (s *Store) UpdateTier(_ context.Context, tier models.Tier) (models.Tier, error) {
	defer s.lock()()

	current, ok := s.st.tiers[tier.ID]
	if !ok {
		return models.Tier{}, storage.ErrNotFound
	}
	current.Position = tier.Position
	current.Condition = tier.Condition
	current.UpdatedAt = s.now()
	s.st.tiers[current.ID] = current
	return current, nil
}

func (s *Store) DeleteTier(_ context.Context, id int64) error {
	defer s.lock()()

	if _, ok := s.st.tiers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.st.tiers, id)
	return nil
}

func (s *Store) filterTiers(keep func(models.Tier) bool) []models.Tier {
	tiers := []models.Tier{}
	for _, t := range s.st.tiers {
		if keep(t) {
			tiers = append(tiers, t)
		}
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].TruckID != tiers[j].TruckID {
			return tiers[i].TruckID < tiers[j].TruckID
		}
		return tiers[i].ID < tiers[j].ID
	})
	return tiers
}
