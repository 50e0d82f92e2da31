package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/logger"
	"github.com/hongminglow/driveops-be/internal/models"
	"github.com/hongminglow/driveops-be/internal/models/dto"
	"github.com/hongminglow/driveops-be/internal/storage"
	"github.com/hongminglow/driveops-be/internal/storage/memory"
)

func submitRequest(email string) dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		FullName: "Jane Roe",
		Email:    email,
		Phone:    "+60123456789",
		Password: "hunter22",
	}
}

func TestSubmitStoresPendingApplicationWithHash(t *testing.T) {
	f := newFixture(t)

	ctx := context.Background()

	app, err := f.svc.Applications().Submit(ctx, submitRequest("Jane@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, "jane@example.com", app.Email)
	assert.Nil(t, app.UserID)

	stored, err := f.store.FindApplicationByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, auth.VerifyPassword("hunter22", stored.PasswordHash), "stored hash must verify the submitted password")
	assert.False(t, auth.VerifyPassword("hunter23", stored.PasswordHash))
}

func TestSubmitRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Applications().Submit(ctx, submitRequest("JANE@example.com"))
	requireKind(t, err, KindConflict)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestSubmitValidatesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*dto.SubmitApplicationRequest)
	}{
		{"missing name", func(r *dto.SubmitApplicationRequest) { r.FullName = " " }},
		{"missing phone", func(r *dto.SubmitApplicationRequest) { r.Phone = "" }},
		{"bad email", func(r *dto.SubmitApplicationRequest) { r.Email = "nope" }},
		{"short password", func(r *dto.SubmitApplicationRequest) { r.Password = "12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := submitRequest("jane@example.com")
			tt.mutate(&req)
			_, err := f.svc.Applications().Submit(ctx, req)
			requireKind(t, err, KindValidation)
		})
	}
}

func TestApproveProvisionsDriverThatCanLogIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)

	app, err := f.svc.Applications().Review(ctx, "jane@example.com", true, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
	require.NotNil(t, app.UserID)
	require.NotNil(t, app.ReviewedAt)

	token, user, err := f.svc.Auth().Login(ctx, "jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, *app.UserID, user.ID)
	assert.Equal(t, models.RoleDriver, user.Role)

	id, ok := f.svc.Auth().ValidateToken(token)
	require.True(t, ok)
	assert.Equal(t, models.RoleDriver, id.Role)
}

func TestRejectCreatesNoCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)

	app, err := f.svc.Applications().Review(ctx, "jane@example.com", false, adminCaller)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, app.Status)
	assert.Nil(t, app.UserID)

	_, err = f.store.FindUserByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReviewTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)
	_, err = f.svc.Applications().Review(ctx, "jane@example.com", false, adminCaller)
	require.NoError(t, err)

	_, err = f.svc.Applications().Review(ctx, "jane@example.com", true, adminCaller)
	requireKind(t, err, KindConflict)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewUnknownApplication(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Applications().Review(context.Background(), "ghost@example.com", true, adminCaller)
	requireKind(t, err, KindNotFound)
}

func TestApproveRollsBackWhenCredentialExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.driver(t, "jane@example.com")

	_, err := f.svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Applications().Review(ctx, "jane@example.com", true, adminCaller)
	requireKind(t, err, KindConflict)

	app, err := f.store.FindApplicationByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Nil(t, app.UserID)
}

// rivalStore decides every application as rejected just before the caller's
// own decision lands, the way a second admin racing the same review would.
type rivalStore struct {
	storage.Store
}

func (r rivalStore) WithTx(ctx context.Context, fn func(tx storage.Store) error) error {
	return r.Store.WithTx(ctx, func(tx storage.Store) error {
		return fn(rivalStore{tx})
	})
}

func (r rivalStore) SetApplicationDecision(ctx context.Context, id int64, status models.ApplicationStatus, userID *int64, reviewedAt time.Time) (models.Application, error) {
	if _, err := r.Store.SetApplicationDecision(ctx, id, models.ApplicationRejected, nil, reviewedAt); err != nil {
		return models.Application{}, err
	}
	return r.Store.SetApplicationDecision(ctx, id, status, userID, reviewedAt)
}

func TestApproveLosingRaceProvisionsNothing(t *testing.T) {
	store := memory.New()
	tokens := auth.NewTokenManager("test-secret", "driveops-test", time.Hour)
	svc := New(rivalStore{store}, tokens, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Applications().Submit(ctx, submitRequest("jane@example.com"))
	require.NoError(t, err)

	_, err = svc.Applications().Review(ctx, "jane@example.com", true, adminCaller)
	requireKind(t, err, KindConflict)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	_, err = store.FindUserByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound, "losing approval must not leave a credential")
}
