package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/driveops-be/internal/models"
)

func TestGenerateThenVerify(t *testing.T) {
	tm := NewTokenManager("secret", "driveops-test", time.Hour)
	user := models.User{ID: 7, Email: "a@b.com", Role: models.RoleDriver}

	token, err := tm.Generate(user)
	require.NoError(t, err)

	id, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Role: models.RoleDriver, Email: "a@b.com"}, id)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", "driveops-test", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, err := tm.Generate(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tm.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = tm.Verify(token)
	assert.NoError(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", "iss", time.Hour).Generate(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("two", "iss", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("secret", "iss", time.Hour)

	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	claims := Claims{
		Role: models.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "iss", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "iss", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
