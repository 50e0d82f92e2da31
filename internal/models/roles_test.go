package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("driver")
	assert.NoError(t, err)
	assert.Equal(t, RoleDriver, r)

	_, err = ParseRole("ADMIN")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestApplicationStatusTerminal(t *testing.T) {
	assert.False(t, ApplicationPending.IsTerminal())
	assert.True(t, ApplicationApproved.IsTerminal())
	assert.True(t, ApplicationRejected.IsTerminal())
}

func TestTierEnums(t *testing.T) {
	assert.Len(t, TierPositions, 4)
	assert.True(t, RearRight.Valid())
	assert.False(t, TierPosition("Spare").Valid())
	assert.True(t, ConditionNeedsReplacement.Valid())
	assert.False(t, TierCondition("Flat").Valid())
}
