package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/storage"
)

func (s *Store) CreateApplication(_ context.Context, app models.Application) (models.Application, error) {
	defer s.lock()()

	if _, ok := s.applicationByEmail(app.Email); ok {
		return models.Application{}, storage.ErrAlreadyExists
	}
	now := s.now()
	app.ID = s.st.nextID()
	app.CreatedAt = now
	app.UpdatedAt = now
	s.st.applications[app.ID] = app
	return app, nil
}

func (s *Store) FindApplicationByEmail(_ context.Context, email string) (models.Application, error) {
	defer s.lock()()

	app, ok := s.applicationByEmail(email)
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	return app, nil
}

func (s *Store) ListApplications(_ context.Context) ([]models.Application, error) {
	defer s.lock()()

	apps := make([]models.Application, 0, len(s.st.applications))
	for _, app := range s.st.applications {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })
	return apps, nil
}

func (s *Store) SetApplicationDecision(_ context.Context, id int64, status models.ApplicationStatus, userID *int64, reviewedAt time.Time) (models.Application, error) {
	defer s.lock()()

	app, ok := s.st.applications[id]
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	if app.Status != models.ApplicationPending {
		return models.Application{}, storage.ErrStateChanged
	}
	if userID != nil {
		if _, ok := s.st.users[*userID]; !ok {
			return models.Application{}, storage.ErrInUse
		}
	}
	app.Status = status
	app.UserID = userID
	app.ReviewedAt = &reviewedAt
	app.UpdatedAt = s.now()
	s.st.applications[id] = app
	return app, nil
}

func (s *Store) CountApplicationsByStatus(_ context.Context, status models.ApplicationStatus) (int, error) {
	defer s.lock()()

	count := 0
	for _, app := range s.st.applications {
		if app.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *Store) applicationByEmail(email string) (models.Application, bool) {
	for _, app := range s.st.applications {
		if strings.EqualFold(app.Email, email) {
			return app, true
		}
	}
	return models.Application{}, false
}
