// Package memory provides in-memory repository implementations. They back
// unit tests and the zero-dependency demo mode; the adapters are safe for
// concurrent use.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/ports/outbound"
)

// IngredientRepository implements outbound.IngredientRepository
type IngredientRepository struct {
	mu    sync.RWMutex
	items map[string]catalog.Ingredient
}

// NewIngredientRepository creates an empty in-memory ingredient repository
func NewIngredientRepository() *IngredientRepository {
	return &IngredientRepository{items: make(map[string]catalog.Ingredient)}
}

func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*catalog.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *IngredientRepository) FindAll(ctx context.Context) ([]catalog.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Ingredient, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *IngredientRepository) Save(ctx context.Context, item catalog.Ingredient) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

// ApplianceRepository implements outbound.ApplianceRepository
type ApplianceRepository struct {
	mu    sync.RWMutex
	items map[string]catalog.Appliance
}

// NewApplianceRepository creates an empty in-memory appliance repository
func NewApplianceRepository() *ApplianceRepository {
	return &ApplianceRepository{items: make(map[string]catalog.Appliance)}
}

func (r *ApplianceRepository) FindByID(ctx context.Context, id string) (*catalog.Appliance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *ApplianceRepository) FindAll(ctx context.Context) ([]catalog.Appliance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Appliance, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *ApplianceRepository) Save(ctx context.Context, item catalog.Appliance) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

// SubstitutionEdgeRepository implements outbound.SubstitutionEdgeRepository,
// indexed by original ingredient id
type SubstitutionEdgeRepository struct {
	mu       sync.RWMutex
	byOrigin map[string][]catalog.SubstitutionEdge
}

// NewSubstitutionEdgeRepository creates an empty in-memory edge repository
func NewSubstitutionEdgeRepository() *SubstitutionEdgeRepository {
	return &SubstitutionEdgeRepository{byOrigin: make(map[string][]catalog.SubstitutionEdge)}
}

func (r *SubstitutionEdgeRepository) FindByOriginal(ctx context.Context, originalID string) ([]catalog.SubstitutionEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.SubstitutionEdge(nil), r.byOrigin[originalID]...), nil
}

func (r *SubstitutionEdgeRepository) FindByDietaryTag(ctx context.Context, tag string) ([]catalog.SubstitutionEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []catalog.SubstitutionEdge
	for _, edges := range r.byOrigin {
		for _, edge := range edges {
			if edge.HasDietaryTag(tag) {
				out = append(out, edge)
			}
		}
	}
	return out, nil
}

func (r *SubstitutionEdgeRepository) Save(ctx context.Context, edge catalog.SubstitutionEdge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	edges := r.byOrigin[edge.OriginalID]
	for i, existing := range edges {
		if existing.AlternativeID == edge.AlternativeID {
			edges[i] = edge
			return nil
		}
	}
	r.byOrigin[edge.OriginalID] = append(edges, edge)
	return nil
}

// AdaptationEdgeRepository implements outbound.AdaptationEdgeRepository
type AdaptationEdgeRepository struct {
	mu       sync.RWMutex
	byOrigin map[string][]catalog.AdaptationEdge
}

// NewAdaptationEdgeRepository creates an empty in-memory edge repository
func NewAdaptationEdgeRepository() *AdaptationEdgeRepository {
	return &AdaptationEdgeRepository{byOrigin: make(map[string][]catalog.AdaptationEdge)}
}

func (r *AdaptationEdgeRepository) FindByOriginal(ctx context.Context, originalID string) ([]catalog.AdaptationEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.AdaptationEdge(nil), r.byOrigin[originalID]...), nil
}

func (r *AdaptationEdgeRepository) Save(ctx context.Context, edge catalog.AdaptationEdge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	edges := r.byOrigin[edge.OriginalID]
	for i, existing := range edges {
		if existing.AlternativeID == edge.AlternativeID {
			edges[i] = edge
			return nil
		}
	}
	r.byOrigin[edge.OriginalID] = append(edges, edge)
	return nil
}

// PreferenceRepository implements outbound.PreferenceRepository, keyed by
// the (original, alternative) pair
type PreferenceRepository struct {
	mu      sync.RWMutex
	records map[string]preference.Record
}

// NewPreferenceRepository creates an empty in-memory preference repository
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{records: make(map[string]preference.Record)}
}

func pairKey(originalID, alternativeID string) string {
	return originalID + "\x00" + alternativeID
}

func (r *PreferenceRepository) FindByPair(ctx context.Context, originalID, alternativeID string) (*preference.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if record, ok := r.records[pairKey(originalID, alternativeID)]; ok {
		return &record, nil
	}
	return nil, nil
}

func (r *PreferenceRepository) FindByOriginal(ctx context.Context, originalID string) ([]preference.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []preference.Record
	for _, record := range r.records {
		if record.OriginalID == originalID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *PreferenceRepository) Save(ctx context.Context, record preference.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[pairKey(record.OriginalID, record.AlternativeID)] = record
	return nil
}

// RecipeRepository implements outbound.RecipeRepository
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[string]recipe.Recipe
}

// NewRecipeRepository creates an empty in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{recipes: make(map[string]recipe.Recipe)}
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if stored, ok := r.recipes[id]; ok {
		out := stored.Clone()
		return &out, nil
	}
	return nil, nil
}

func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if stored, ok := r.recipes[id]; ok {
			out = append(out, stored.Clone())
		}
	}
	return out, nil
}

func (r *RecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]recipe.Recipe, 0, len(r.recipes))
	for _, stored := range r.recipes {
		out = append(out, stored.Clone())
	}
	return out, nil
}

func (r *RecipeRepository) Save(ctx context.Context, rec recipe.Recipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[rec.ID] = rec.Clone()
	return nil
}

// VariantRepository implements outbound.VariantRepository
type VariantRepository struct {
	mu       sync.RWMutex
	variants map[string]recipe.Variant
}

// NewVariantRepository creates an empty in-memory variant repository
func NewVariantRepository() *VariantRepository {
	return &VariantRepository{variants: make(map[string]recipe.Variant)}
}

func (r *VariantRepository) FindByID(ctx context.Context, id string) (*recipe.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.variants[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *VariantRepository) FindByBaseRecipe(ctx context.Context, baseRecipeID string) ([]recipe.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []recipe.Variant
	for _, v := range r.variants {
		if v.BaseRecipeID == baseRecipeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *VariantRepository) Save(ctx context.Context, v recipe.Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[v.ID] = v
	return nil
}

func (r *VariantRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.variants, id)
	return nil
}

// HistoryRepository implements outbound.HistoryRepository
type HistoryRepository struct {
	mu      sync.RWMutex
	entries map[string]mealplan.HistoryEntry
}

// NewHistoryRepository creates an empty in-memory history repository
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{entries: make(map[string]mealplan.HistoryEntry)}
}

func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*mealplan.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[id]; ok {
		return &entry, nil
	}
	return nil, nil
}

func (r *HistoryRepository) FindByRecipe(ctx context.Context, recipeID string) ([]mealplan.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []mealplan.HistoryEntry
	for _, entry := range r.entries {
		if entry.RecipeID == recipeID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]mealplan.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mealplan.HistoryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (r *HistoryRepository) Save(ctx context.Context, entry mealplan.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

// KnowledgeRepository implements outbound.KnowledgeRepository
type KnowledgeRepository struct {
	mu      sync.RWMutex
	entries map[string]knowledge.Entry
}

// NewKnowledgeRepository creates an empty in-memory knowledge repository
func NewKnowledgeRepository() *KnowledgeRepository {
	return &KnowledgeRepository{entries: make(map[string]knowledge.Entry)}
}

func (r *KnowledgeRepository) FindByID(ctx context.Context, id string) (*knowledge.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[id]; ok {
		return &entry, nil
	}
	return nil, nil
}

func (r *KnowledgeRepository) FindByType(ctx context.Context, entryType knowledge.EntryType) ([]knowledge.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []knowledge.Entry
	for _, entry := range r.entries {
		if entry.Type == entryType {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *KnowledgeRepository) FindAll(ctx context.Context) ([]knowledge.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]knowledge.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (r *KnowledgeRepository) Save(ctx context.Context, entry knowledge.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// MealPlanRepository implements outbound.MealPlanRepository
type MealPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]mealplan.WeeklyPlan
}

// NewMealPlanRepository creates an empty in-memory meal plan repository
func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{plans: make(map[string]mealplan.WeeklyPlan)}
}

func (r *MealPlanRepository) FindByID(ctx context.Context, id string) (*mealplan.WeeklyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if plan, ok := r.plans[id]; ok {
		return &plan, nil
	}
	return nil, nil
}

func (r *MealPlanRepository) FindActive(ctx context.Context, date time.Time) (*mealplan.WeeklyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, plan := range r.plans {
		// EndDate is day-truncated, so the whole end day still counts.
		if plan.Active && !date.Before(plan.StartDate) && date.Before(plan.EndDate.AddDate(0, 0, 1)) {
			out := plan
			return &out, nil
		}
	}
	return nil, nil
}

// Save stores the plan; a new active plan deactivates any overlapping one
func (r *MealPlanRepository) Save(ctx context.Context, plan mealplan.WeeklyPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.Active {
		for id, existing := range r.plans {
			if id != plan.ID && existing.Active && overlaps(existing, plan) {
				existing.Active = false
				r.plans[id] = existing
			}
		}
	}
	r.plans[plan.ID] = plan
	return nil
}

func overlaps(a, b mealplan.WeeklyPlan) bool {
	return !a.EndDate.Before(b.StartDate) && !b.EndDate.Before(a.StartDate)
}

// InventoryRepository implements outbound.InventoryRepository
type InventoryRepository struct {
	mu    sync.RWMutex
	items map[string]catalog.InventoryItem
}

// NewInventoryRepository creates an empty in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{items: make(map[string]catalog.InventoryItem)}
}

func (r *InventoryRepository) FindByIngredient(ctx context.Context, ingredientID string) (*catalog.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.items[ingredientID]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *InventoryRepository) FindAll(ctx context.Context) ([]catalog.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *InventoryRepository) Save(ctx context.Context, item catalog.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.IngredientID] = item
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, ingredientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, ingredientID)
	return nil
}

// ProfileRepository implements outbound.ProfileRepository
type ProfileRepository struct {
	mu     sync.RWMutex
	stored *profile.Profile
}

// NewProfileRepository creates an empty in-memory profile repository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Get(ctx context.Context) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stored == nil {
		return nil, nil
	}
	out := *r.stored
	return &out, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = &p
	return nil
}

// Interface conformance checks
var (
	_ outbound.IngredientRepository       = (*IngredientRepository)(nil)
	_ outbound.ApplianceRepository        = (*ApplianceRepository)(nil)
	_ outbound.SubstitutionEdgeRepository = (*SubstitutionEdgeRepository)(nil)
	_ outbound.AdaptationEdgeRepository   = (*AdaptationEdgeRepository)(nil)
	_ outbound.PreferenceRepository       = (*PreferenceRepository)(nil)
	_ outbound.RecipeRepository           = (*RecipeRepository)(nil)
	_ outbound.VariantRepository          = (*VariantRepository)(nil)
	_ outbound.HistoryRepository          = (*HistoryRepository)(nil)
	_ outbound.KnowledgeRepository        = (*KnowledgeRepository)(nil)
	_ outbound.MealPlanRepository         = (*MealPlanRepository)(nil)
	_ outbound.InventoryRepository        = (*InventoryRepository)(nil)
	_ outbound.ProfileRepository          = (*ProfileRepository)(nil)
)
