package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	defer s.lock()()

	if _, ok := s.userByEmail(user.Email); ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	now := s.now()
	user.ID = s.st.nextID()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.st.users[user.ID] = user
	return user, nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (models.User, error) {
	defer s.lock()()

	user, ok := s.st.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	defer s.lock()()

	user, ok := s.userByEmail(email)
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) ListUsersByRole(_ context.Context, role models.Role) ([]models.User, error) {
	defer s.lock()()

	users := []models.User{}
	for _, u := range s.st.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	defer s.lock()()

	current, ok := s.st.users[user.ID]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if other, ok := s.userByEmail(user.Email); ok && other.ID != user.ID {
		return models.User{}, storage.ErrAlreadyExists
	}
	current.Email = user.Email
	current.PasswordHash = user.PasswordHash
	current.UpdatedAt = s.now()
	s.st.users[current.ID] = current
	return current, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	defer s.lock()()

	if _, ok := s.st.users[id]; !ok {
		return storage.ErrNotFound
	}
	for _, trip := range s.st.trips {
		if trip.DriverID == id {
			return storage.ErrInUse
		}
	}
	for appID, app := range s.st.applications {
		if app.UserID != nil && *app.UserID == id {
			app.UserID = nil
			s.st.applications[appID] = app
		}
	}
	for truckID, truck := range s.st.trucks {
		if truck.AssignedDriverID != nil && *truck.AssignedDriverID == id {
			truck.AssignedDriverID = nil
			s.st.trucks[truckID] = truck
		}
	}
	delete(s.st.users, id)
	return nil
}

func (s *Store) CountUsersByRole(_ context.Context, role models.Role) (int, error) {
	defer s.lock()()

	count := 0
	for _, u := range s.st.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (s *Store) userByEmail(email string) (models.User, bool) {
	for _, u := range s.st.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}
