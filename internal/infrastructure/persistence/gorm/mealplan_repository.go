package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// FindByID finds a plan by ID
func (r *MealPlanRepository) FindByID(ctx context.Context, id string) (*mealplan.WeeklyPlan, error) {
	var model MealPlanModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	plan := ModelToMealPlan(&model)
	return &plan, nil
}

// FindActive returns the plan whose date range covers the given date.
// End dates are day-truncated, so the whole end day still counts.
func (r *MealPlanRepository) FindActive(ctx context.Context, date time.Time) (*mealplan.WeeklyPlan, error) {
	var model MealPlanModel
	result := r.db.WithContext(ctx).
		Where("active = ? AND start_date <= ? AND end_date > ?", true, date, date.AddDate(0, 0, -1)).
		Order("start_date DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	plan := ModelToMealPlan(&model)
	return &plan, nil
}

// Save upserts the plan; a new active plan deactivates any overlapping one
func (r *MealPlanRepository) Save(ctx context.Context, plan mealplan.WeeklyPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.Active {
			err := tx.Model(&MealPlanModel{}).
				Where("id <> ? AND active = ? AND start_date <= ? AND end_date >= ?",
					plan.ID, true, plan.EndDate, plan.StartDate).
				Update("active", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(MealPlanToModel(plan)).Error
	})
}

// HistoryRepository implements the history repository interface using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// FindByID finds a history entry by ID
func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*mealplan.HistoryEntry, error) {
	var model HistoryEntryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	entry := ModelToHistoryEntry(&model)
	return &entry, nil
}

// FindByRecipe returns all sessions for one recipe
func (r *HistoryRepository) FindByRecipe(ctx context.Context, recipeID string) ([]mealplan.HistoryEntry, error) {
	var models []HistoryEntryModel
	result := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("started_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]mealplan.HistoryEntry, len(models))
	for i := range models {
		entries[i] = ModelToHistoryEntry(&models[i])
	}
	return entries, nil
}

// FindAll returns the full cooking history
func (r *HistoryRepository) FindAll(ctx context.Context) ([]mealplan.HistoryEntry, error) {
	var models []HistoryEntryModel
	result := r.db.WithContext(ctx).Order("started_at").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	entries := make([]mealplan.HistoryEntry, len(models))
	for i := range models {
		entries[i] = ModelToHistoryEntry(&models[i])
	}
	return entries, nil
}

// Save upserts a history entry
func (r *HistoryRepository) Save(ctx context.Context, entry mealplan.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(HistoryEntryToModel(entry)).Error
}
