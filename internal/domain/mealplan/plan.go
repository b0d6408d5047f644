// Package mealplan contains the weekly meal plan model and cooking history.
package mealplan

import (
	"errors"
	"time"
)

// Domain errors for meal plans and history
var (
	ErrEmptyPlanID      = errors.New("meal plan id is required")
	ErrUnknownSlot      = errors.New("unknown meal slot")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyRecipeID    = errors.New("history entry requires a recipe id")
	ErrInvalidDateRange = errors.New("plan end date must not precede start date")
)

// Slot identifies one of the four daily meals
type Slot string

const (
	SlotDesayuno Slot = "desayuno"
	SlotAlmuerzo Slot = "almuerzo"
	SlotComida   Slot = "comida"
	SlotCena     Slot = "cena"
)

// Slots lists the slots in serving order
var Slots = []Slot{SlotDesayuno, SlotAlmuerzo, SlotComida, SlotCena}

// DaysPerWeek is the number of days a plan covers
const DaysPerWeek = 7

// DayPlan assigns a recipe id (or empty for none) to each slot of one day
type DayPlan struct {
	Desayuno string
	Almuerzo string
	Comida   string
	Cena     string
}

// Get returns the recipe id assigned to a slot
func (d DayPlan) Get(slot Slot) string {
	switch slot {
	case SlotDesayuno:
		return d.Desayuno
	case SlotAlmuerzo:
		return d.Almuerzo
	case SlotComida:
		return d.Comida
	case SlotCena:
		return d.Cena
	}
	return ""
}

// Set assigns a recipe id to a slot
func (d *DayPlan) Set(slot Slot, recipeID string) error {
	switch slot {
	case SlotDesayuno:
		d.Desayuno = recipeID
	case SlotAlmuerzo:
		d.Almuerzo = recipeID
	case SlotComida:
		d.Comida = recipeID
	case SlotCena:
		d.Cena = recipeID
	default:
		return ErrUnknownSlot
	}
	return nil
}

// WeeklyPlan is a 7-day meal plan; one plan is active per date range
type WeeklyPlan struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Days      [DaysPerWeek]DayPlan
	Active    bool
	CreatedAt time.Time
}

// Validate validates the plan
func (p WeeklyPlan) Validate() error {
	if p.ID == "" {
		return ErrEmptyPlanID
	}
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// AssignedRecipes returns the distinct recipe ids placed in the plan
func (p WeeklyPlan) AssignedRecipes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, day := range p.Days {
		for _, slot := range Slots {
			id := day.Get(slot)
			if id != "" && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// AssignmentCount returns the number of filled slots
func (p WeeklyPlan) AssignmentCount() int {
	n := 0
	for _, day := range p.Days {
		for _, slot := range Slots {
			if day.Get(slot) != "" {
				n++
			}
		}
	}
	return n
}
