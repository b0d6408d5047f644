// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IngredientModel represents the GORM model for catalog ingredients
type IngredientModel struct {
	ID          string      `gorm:"type:varchar(64);primaryKey"`
	Name        string      `gorm:"type:varchar(255);not null;index"`
	Category    string      `gorm:"type:varchar(100);index"`
	Subcategory string      `gorm:"type:varchar(100);index"`
	Synonyms    StringSlice `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplianceModel represents the GORM model for catalog appliances
type ApplianceModel struct {
	ID              string      `gorm:"type:varchar(64);primaryKey"`
	Name            string      `gorm:"type:varchar(255);not null;index"`
	Category        string      `gorm:"type:varchar(100);index"`
	Subcategory     string      `gorm:"type:varchar(100)"`
	Synonyms        StringSlice `gorm:"type:json"`
	Functionalities StringSlice `gorm:"type:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SubstitutionEdgeModel represents the GORM model for substitution edges
type SubstitutionEdgeModel struct {
	OriginalID    string `gorm:"type:varchar(64);primaryKey"`
	AlternativeID string `gorm:"type:varchar(64);primaryKey"`

	Ratio      float64 `gorm:"not null"`
	Confidence float64 `gorm:"not null"`

	RecipeTypes    StringSlice `gorm:"type:json"`
	Cuisines       StringSlice `gorm:"type:json"`
	CookingMethods StringSlice `gorm:"type:json"`

	ImpactTaste     string `gorm:"type:text"`
	ImpactTexture   string `gorm:"type:text"`
	ImpactColor     string `gorm:"type:text"`
	ImpactNutrition string `gorm:"type:text"`

	Adjustments AdjustmentList `gorm:"type:json"`
	DietaryTags StringSlice    `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdaptationEdgeModel represents the GORM model for appliance adaptation edges
type AdaptationEdgeModel struct {
	OriginalID    string `gorm:"type:varchar(64);primaryKey"`
	AlternativeID string `gorm:"type:varchar(64);primaryKey"`

	Confidence float64 `gorm:"not null"`

	RecipeTypes    StringSlice `gorm:"type:json"`
	Cuisines       StringSlice `gorm:"type:json"`
	CookingMethods StringSlice `gorm:"type:json"`

	ImpactTechnique  string `gorm:"type:text"`
	ImpactTiming     string `gorm:"type:text"`
	ImpactQuality    string `gorm:"type:text"`
	ImpactDifficulty string `gorm:"type:text"`

	Adjustments AdjustmentList `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferenceModel represents the GORM model for learned preference records
type PreferenceModel struct {
	OriginalID    string      `gorm:"type:varchar(64);primaryKey"`
	AlternativeID string      `gorm:"type:varchar(64);primaryKey"`
	TimesUsed     int         `gorm:"not null"`
	SuccessRate   float64     `gorm:"not null"`
	Contexts      StringSlice `gorm:"type:json"`
	Notes         StringSlice `gorm:"type:json"`
	LastUsedAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          string      `gorm:"type:varchar(64);primaryKey"`
	Title       string      `gorm:"type:varchar(255);not null;index"`
	Description string      `gorm:"type:text"`
	Category    string      `gorm:"type:varchar(100);index"`
	Cuisine     string      `gorm:"type:varchar(100);index"`
	Difficulty  string      `gorm:"type:varchar(20)"`
	Tags        StringSlice `gorm:"type:json"`

	Ingredients IngredientLineList `gorm:"type:json"`
	Steps       StepList           `gorm:"type:json"`

	Servings    int `gorm:"default:1"`
	MinServings int `gorm:"default:0"`
	MaxServings int `gorm:"default:0"`

	TotalTimeMinutes int `gorm:"column:total_time_minutes;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantModel represents the GORM model for recipe variants
type VariantModel struct {
	ID           string `gorm:"type:varchar(64);primaryKey"`
	BaseRecipeID string `gorm:"type:varchar(64);not null;index"`
	Name         string `gorm:"type:varchar(255);not null"`
	Description  string `gorm:"type:text"`

	IngredientChanges IngredientChangeList `gorm:"type:json"`
	StepChanges       StepChangeList       `gorm:"type:json"`
	Metadata          StringMap            `gorm:"type:json"`

	Tags      StringSlice `gorm:"type:json"`
	TimesUsed int         `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntryModel represents the GORM model for cooking sessions
type HistoryEntryModel struct {
	ID          string `gorm:"type:varchar(64);primaryKey"`
	RecipeID    string `gorm:"type:varchar(64);not null;index"`
	VariantID   string `gorm:"type:varchar(64);index"`
	StartedAt   time.Time
	CompletedAt *time.Time
	Rating      int               `gorm:"default:0"`
	Changes     SessionChangeList `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KnowledgeEntryModel represents the GORM model for user knowledge entries
type KnowledgeEntryModel struct {
	ID           string       `gorm:"type:varchar(64);primaryKey"`
	Type         string       `gorm:"type:varchar(50);not null;index"`
	Summary      string       `gorm:"type:text;not null"`
	Details      string       `gorm:"type:text"`
	AppliesTo    AppliesToDoc `gorm:"type:json"`
	Confidence   float64      `gorm:"not null"`
	TimesApplied int          `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MealPlanModel represents the GORM model for weekly meal plans
type MealPlanModel struct {
	ID        string      `gorm:"type:varchar(64);primaryKey"`
	StartDate time.Time   `gorm:"index"`
	EndDate   time.Time   `gorm:"index"`
	Days      DayPlanList `gorm:"type:json"`
	Active    bool        `gorm:"default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryItemModel represents the GORM model for pantry stock
type InventoryItemModel struct {
	IngredientID string  `gorm:"type:varchar(64);primaryKey"`
	Quantity     float64 `gorm:"not null"`
	Unit         string  `gorm:"type:varchar(50)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileModel represents the GORM model for the single-user profile.
// Exactly one row exists, keyed by a fixed id.
type ProfileModel struct {
	ID                  uint        `gorm:"primaryKey"`
	OwnedApplianceIDs   StringSlice `gorm:"type:json"`
	PreferredCuisines   StringSlice `gorm:"type:json"`
	DietaryRestrictions StringSlice `gorm:"type:json"`
	Skill               string      `gorm:"type:varchar(20)"`
	MaxCookingMinutes   int         `gorm:"default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// profileRowID is the fixed primary key of the single profile row
const profileRowID = 1

// scanJSON decodes a JSON column into dst, accepting the driver's []byte or
// string representation
func scanJSON(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T as JSON", value)
	}
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return scanJSON(s, value)
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// StringMap custom type for handling string maps in JSON
type StringMap map[string]string

// Scan implements the sql.Scanner interface
func (m *StringMap) Scan(value interface{}) error {
	*m = StringMap{}
	return scanJSON(m, value)
}

// Value implements the driver.Valuer interface
func (m StringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// AdjustmentDoc is the JSON document for one edge adjustment
type AdjustmentDoc struct {
	Description        string `json:"description"`
	StepNumber         int    `json:"step_number,omitempty"`
	Compensation       string `json:"compensation,omitempty"`
	TimingDeltaMinutes int    `json:"timing_delta_minutes,omitempty"`
	TimingReason       string `json:"timing_reason,omitempty"`
}

// AdjustmentList custom type for handling adjustment lists in JSON
type AdjustmentList []AdjustmentDoc

// Scan implements the sql.Scanner interface
func (l *AdjustmentList) Scan(value interface{}) error {
	*l = AdjustmentList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l AdjustmentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// IngredientLineDoc is the JSON document for one recipe ingredient line
type IngredientLineDoc struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit,omitempty"`
	Optional     bool    `json:"optional,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// IngredientLineList custom type for handling ingredient lines in JSON
type IngredientLineList []IngredientLineDoc

// Scan implements the sql.Scanner interface
func (l *IngredientLineList) Scan(value interface{}) error {
	*l = IngredientLineList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l IngredientLineList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// StepDoc is the JSON document for one recipe step
type StepDoc struct {
	Number          int    `json:"number"`
	Instruction     string `json:"instruction"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// StepList custom type for handling step lists in JSON
type StepList []StepDoc

// Scan implements the sql.Scanner interface
func (l *StepList) Scan(value interface{}) error {
	*l = StepList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l StepList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// IngredientChangeDoc is the JSON document for one variant ingredient change
type IngredientChangeDoc struct {
	Kind         string             `json:"kind"`
	IngredientID string             `json:"ingredient_id"`
	Ingredient   *IngredientLineDoc `json:"ingredient,omitempty"`
}

// IngredientChangeList custom type for handling ingredient changes in JSON
type IngredientChangeList []IngredientChangeDoc

// Scan implements the sql.Scanner interface
func (l *IngredientChangeList) Scan(value interface{}) error {
	*l = IngredientChangeList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l IngredientChangeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// StepChangeDoc is the JSON document for one variant step change
type StepChangeDoc struct {
	Kind       string   `json:"kind"`
	StepNumber int      `json:"step_number"`
	Step       *StepDoc `json:"step,omitempty"`
}

// StepChangeList custom type for handling step changes in JSON
type StepChangeList []StepChangeDoc

// Scan implements the sql.Scanner interface
func (l *StepChangeList) Scan(value interface{}) error {
	*l = StepChangeList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l StepChangeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// SessionChangeDoc is the JSON document for one session change
type SessionChangeDoc struct {
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	IngredientID string `json:"ingredient_id,omitempty"`
	SubstituteID string `json:"substitute_id,omitempty"`
}

// SessionChangeList custom type for handling session changes in JSON
type SessionChangeList []SessionChangeDoc

// Scan implements the sql.Scanner interface
func (l *SessionChangeList) Scan(value interface{}) error {
	*l = SessionChangeList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l SessionChangeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// AppliesToDoc is the JSON document for a knowledge applicability predicate.
// An all-empty document means the entry applies everywhere.
type AppliesToDoc struct {
	RecipeTypes    []string `json:"recipe_types,omitempty"`
	IngredientIDs  []string `json:"ingredient_ids,omitempty"`
	ApplianceIDs   []string `json:"appliance_ids,omitempty"`
	CookingMethods []string `json:"cooking_methods,omitempty"`
}

// Scan implements the sql.Scanner interface
func (d *AppliesToDoc) Scan(value interface{}) error {
	*d = AppliesToDoc{}
	return scanJSON(d, value)
}

// Value implements the driver.Valuer interface
func (d AppliesToDoc) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// DayPlanDoc is the JSON document for one planned day
type DayPlanDoc struct {
	Desayuno string `json:"desayuno,omitempty"`
	Almuerzo string `json:"almuerzo,omitempty"`
	Comida   string `json:"comida,omitempty"`
	Cena     string `json:"cena,omitempty"`
}

// DayPlanList custom type for handling the seven planned days in JSON
type DayPlanList []DayPlanDoc

// Scan implements the sql.Scanner interface
func (l *DayPlanList) Scan(value interface{}) error {
	*l = DayPlanList{}
	return scanJSON(l, value)
}

// Value implements the driver.Valuer interface
func (l DayPlanList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// TableName methods for custom table names
func (IngredientModel) TableName() string {
	return "ingredients"
}

func (ApplianceModel) TableName() string {
	return "appliances"
}

func (SubstitutionEdgeModel) TableName() string {
	return "substitution_edges"
}

func (AdaptationEdgeModel) TableName() string {
	return "adaptation_edges"
}

func (PreferenceModel) TableName() string {
	return "preferences"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (VariantModel) TableName() string {
	return "recipe_variants"
}

func (HistoryEntryModel) TableName() string {
	return "history_entries"
}

func (KnowledgeEntryModel) TableName() string {
	return "knowledge_entries"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

func (ProfileModel) TableName() string {
	return "profile"
}
