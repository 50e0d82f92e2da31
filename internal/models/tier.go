package models

import "time"

type TierPosition string

const (
	FrontLeft  TierPosition = "Front Left"
	FrontRight TierPosition = "Front Right"
	RearLeft   TierPosition = "Rear Left"
	RearRight  TierPosition = "Rear Right"
)

// TierPositions lists every wheel position in mounting order.
var TierPositions = []TierPosition{FrontLeft, FrontRight, RearLeft, RearRight}

func (p TierPosition) Valid() bool {
	for _, candidate := range TierPositions {
		if p == candidate {
			return true
		}
	}
	return false
}

type TierCondition string

const (
	ConditionNew              TierCondition = "New"
	ConditionGood             TierCondition = "Good"
	ConditionWorn             TierCondition = "Worn"
	ConditionNeedsReplacement TierCondition = "Needs Replacement"
)

func (c TierCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionWorn, ConditionNeedsReplacement:
		return true
	}
	return false
}

// Tier is a single tire mounted on a truck.
type Tier struct {
	ID        int64         `json:"id"`
	Position  TierPosition  `json:"position"`
	Condition TierCondition `json:"condition"`
	TruckID   int64         `json:"truck_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
