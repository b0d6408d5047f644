// Package profile contains the user profile consumed by the adaptation
// resolver (owned appliances) and the meal planner (saved preferences).
package profile

import "errors"

// Domain errors for the profile
var (
	ErrInvalidTimeBudget = errors.New("cooking time budget cannot be negative")
)

// SkillLevel describes the user's cooking skill
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Profile is the single-user household profile
type Profile struct {
	OwnedApplianceIDs   []string
	PreferredCuisines   []string
	DietaryRestrictions []string
	Skill               SkillLevel // empty when never set
	MaxCookingMinutes   int        // 0 when no budget set
}

// Validate validates the profile at the write boundary
func (p Profile) Validate() error {
	if p.MaxCookingMinutes < 0 {
		return ErrInvalidTimeBudget
	}
	return nil
}

// Owns reports whether the user owns the given appliance
func (p Profile) Owns(applianceID string) bool {
	for _, id := range p.OwnedApplianceIDs {
		if id == applianceID {
			return true
		}
	}
	return false
}
