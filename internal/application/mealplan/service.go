package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	"github.com/cocinero/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const activePlanCacheTTL = time.Hour

// Options configures the planner
type Options struct {
	Weights      Weights
	SkillTable   SkillTable
	SlotKeywords SlotKeywords
	Temperature  float64
}

// Service implements the weekly meal planner. Every run is a pure function
// of the candidate pool, inventory snapshot, history, saved preferences, and
// the seeded random source.
type Service struct {
	recipes   outbound.RecipeRepository
	inventory outbound.InventoryRepository
	history   outbound.HistoryRepository
	profiles  outbound.ProfileRepository
	plans     outbound.MealPlanRepository
	cache     outbound.CacheRepository

	scorer       *Scorer
	slotKeywords SlotKeywords
	temperature  float64

	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new planner service
func NewService(
	recipes outbound.RecipeRepository,
	inventory outbound.InventoryRepository,
	history outbound.HistoryRepository,
	profiles outbound.ProfileRepository,
	plans outbound.MealPlanRepository,
	cache outbound.CacheRepository,
	opts Options,
	logger *zap.Logger,
) inbound.PlannerService {
	if opts.SlotKeywords == nil {
		opts.SlotKeywords = DefaultSlotKeywords()
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	return &Service{
		recipes:      recipes,
		inventory:    inventory,
		history:      history,
		profiles:     profiles,
		plans:        plans,
		cache:        cache,
		scorer:       NewScorer(opts.Weights, opts.SkillTable),
		slotKeywords: opts.SlotKeywords,
		temperature:  opts.Temperature,
		logger:       logger.Named("planner-service"),
		now:          time.Now,
	}
}

// GenerateFromQuestionnaire is the deterministic path: pure inventory-match
// ranking, no randomness
func (s *Service) GenerateFromQuestionnaire(ctx context.Context, cmd inbound.QuestionnaireCommand) (*mealplan.WeeklyPlan, error) {
	if cmd.MaxMinutes < 0 {
		return nil, errors.NewValidationError("time budget cannot be negative")
	}

	pool, err := s.recipes.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipes", err)
	}
	pool = excludeRecipes(pool, cmd.ExcludedRecipeIDs)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	snap.Prefs = profile.Profile{
		PreferredCuisines: cmd.PreferredCuisines,
		Skill:             profile.SkillLevel(cmd.SkillLevel),
		MaxCookingMinutes: cmd.MaxMinutes,
	}

	plan := s.assemble(pool, snap, nil)
	if plan.AssignmentCount() == 0 {
		return nil, errors.NewPlanUnsatisfiableError("no recipe matched the questionnaire answers")
	}

	return s.persist(ctx, plan, cmd.StartDate)
}

// GeneratePlan is the probabilistic path. An externally proposed assignment
// is validated first; shape or id failures fall back to the planner's own
// selection before any hard error.
func (s *Service) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*mealplan.WeeklyPlan, error) {
	pool, err := s.candidatePool(ctx, cmd.CandidateIDs)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, errors.NewPlanUnsatisfiableError("candidate pool is empty")
	}

	if cmd.Proposed != nil {
		plan, err := buildFromProposed(*cmd.Proposed, pool)
		if err == nil {
			return s.persist(ctx, plan, cmd.StartDate)
		}
		s.logger.Warn("Proposed plan rejected, falling back to own selection",
			zap.Error(err),
		)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	selector := NewSelector(rand.NewSource(seed), s.temperature)

	plan := s.assemble(pool, snap, selector)
	if plan.AssignmentCount() == 0 {
		return nil, errors.NewPlanUnsatisfiableError("selection produced zero assignments")
	}

	return s.persist(ctx, plan, cmd.StartDate)
}

// GetActivePlan returns the plan covering the given date, cache-first
func (s *Service) GetActivePlan(ctx context.Context, date time.Time) (*mealplan.WeeklyPlan, error) {
	key := activePlanCacheKey(date)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && len(data) > 0 {
			var plan mealplan.WeeklyPlan
			if err := json.Unmarshal(data, &plan); err == nil {
				return &plan, nil
			}
		}
	}

	plan, err := s.plans.FindActive(ctx, date)
	if err != nil {
		return nil, errors.NewDatabaseError("find active plan", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError("meal plan")
	}

	if s.cache != nil {
		if data, err := json.Marshal(plan); err == nil {
			_ = s.cache.Set(ctx, key, data, activePlanCacheTTL)
		}
	}
	return plan, nil
}

// assemble fills the 7x4 grid slot by slot. Scores are recomputed for every
// slot because the variety factor depends on what has already been placed;
// chosen recipes leave the pool so one plan never repeats a recipe.
// A nil selector switches to the deterministic inventory-match ranking.
func (s *Service) assemble(pool []recipe.Recipe, snap Snapshot, selector *Selector) mealplan.WeeklyPlan {
	var plan mealplan.WeeklyPlan
	remaining := append([]recipe.Recipe(nil), pool...)
	snap.Used = make(map[string]bool)

	for day := 0; day < mealplan.DaysPerWeek; day++ {
		for _, slot := range mealplan.Slots {
			if len(remaining) == 0 {
				return plan
			}

			eligible := FilterBySlot(remaining, slot, s.slotKeywords)

			var chosen recipe.Recipe
			var ok bool
			if selector == nil {
				chosen, ok = pickDeterministic(eligible, snap)
			} else {
				chosen, ok = pickProbabilistic(eligible, snap, s.scorer, selector)
			}
			if !ok {
				continue
			}

			_ = plan.Days[day].Set(slot, chosen.ID)
			snap.Used[chosen.ID] = true
			remaining = removeRecipe(remaining, chosen.ID)
		}
	}
	return plan
}

func pickProbabilistic(eligible []recipe.Recipe, snap Snapshot, scorer *Scorer, selector *Selector) (recipe.Recipe, bool) {
	candidates := make([]Candidate, 0, len(eligible))
	for _, r := range eligible {
		candidates = append(candidates, Candidate{
			Recipe: r,
			Score:  scorer.Score(r, snap).Final,
		})
	}
	idx, ok := selector.Pick(candidates)
	if !ok {
		return recipe.Recipe{}, false
	}
	return candidates[idx].Recipe, true
}

// pickDeterministic ranks by inventory match alone, breaking ties by id so
// identical inputs always produce identical plans
func pickDeterministic(eligible []recipe.Recipe, snap Snapshot) (recipe.Recipe, bool) {
	if len(eligible) == 0 {
		return recipe.Recipe{}, false
	}
	ranked := append([]recipe.Recipe(nil), eligible...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si := inventoryMatch(ranked[i], snap.Inventory)
		sj := inventoryMatch(ranked[j], snap.Inventory)
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked[0], true
}

// buildFromProposed validates an externally produced assignment: all seven
// days present and every slot value a known recipe id or null
func buildFromProposed(proposed inbound.ProposedPlan, pool []recipe.Recipe) (mealplan.WeeklyPlan, error) {
	if len(proposed.Days) != mealplan.DaysPerWeek {
		return mealplan.WeeklyPlan{}, errors.NewInvalidPlanResponseError(
			fmt.Sprintf("expected %d days, got %d", mealplan.DaysPerWeek, len(proposed.Days)))
	}

	known := make(map[string]bool, len(pool))
	for _, r := range pool {
		known[r.ID] = true
	}

	var plan mealplan.WeeklyPlan
	for i, day := range proposed.Days {
		assignments := map[mealplan.Slot]string{
			mealplan.SlotDesayuno: day.Desayuno,
			mealplan.SlotAlmuerzo: day.Almuerzo,
			mealplan.SlotComida:   day.Comida,
			mealplan.SlotCena:     day.Cena,
		}
		for slot, id := range assignments {
			if id == "" {
				continue
			}
			if !known[id] {
				return mealplan.WeeklyPlan{}, errors.NewInvalidPlanResponseError(
					fmt.Sprintf("day %d %s references unknown recipe %s", i+1, slot, id))
			}
			_ = plan.Days[i].Set(slot, id)
		}
	}
	if plan.AssignmentCount() == 0 {
		return mealplan.WeeklyPlan{}, errors.NewInvalidPlanResponseError("proposed plan assigns nothing")
	}
	return plan, nil
}

// snapshot assembles the planning context from the repositories
func (s *Service) snapshot(ctx context.Context) (Snapshot, error) {
	stock, err := s.inventory.FindAll(ctx)
	if err != nil {
		return Snapshot{}, errors.NewDatabaseError("load inventory", err)
	}
	inventory := make(map[string]bool, len(stock))
	for _, item := range stock {
		if item.Quantity > 0 {
			inventory[item.IngredientID] = true
		}
	}

	entries, err := s.history.FindAll(ctx)
	if err != nil {
		return Snapshot{}, errors.NewDatabaseError("load history", err)
	}

	prefs := profile.Profile{}
	stored, err := s.profiles.Get(ctx)
	if err != nil {
		// A missing profile only zeroes the preference factor, so scoring
		// proceeds without it
		s.logger.Warn("Failed to load profile for scoring", zap.Error(err))
	} else if stored != nil {
		prefs = *stored
	}

	return Snapshot{
		Inventory: inventory,
		Stats:     mealplan.AggregateStats(entries),
		Prefs:     prefs,
		Now:       s.now(),
	}, nil
}

func (s *Service) candidatePool(ctx context.Context, ids []string) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		pool, err := s.recipes.FindAll(ctx)
		if err != nil {
			return nil, errors.NewDatabaseError("load recipes", err)
		}
		return pool, nil
	}
	pool, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("load candidate recipes", err)
	}
	return pool, nil
}

// persist stamps identity and date range on the plan, stores it as the
// active plan, and refreshes the cache
func (s *Service) persist(ctx context.Context, plan mealplan.WeeklyPlan, startDate time.Time) (*mealplan.WeeklyPlan, error) {
	if startDate.IsZero() {
		startDate = s.now().Truncate(24 * time.Hour)
	}
	plan.ID = uuid.NewString()
	plan.StartDate = startDate
	plan.EndDate = startDate.AddDate(0, 0, mealplan.DaysPerWeek-1)
	plan.Active = true
	plan.CreatedAt = s.now()

	if err := plan.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("save meal plan", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(plan); err == nil {
			_ = s.cache.Set(ctx, activePlanCacheKey(startDate), data, activePlanCacheTTL)
		}
	}

	s.logger.Info("Generated weekly plan",
		zap.String("plan_id", plan.ID),
		zap.Int("assignments", plan.AssignmentCount()),
	)
	return &plan, nil
}

func excludeRecipes(pool []recipe.Recipe, excluded []string) []recipe.Recipe {
	if len(excluded) == 0 {
		return pool
	}
	drop := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		drop[id] = true
	}
	out := pool[:0]
	for _, r := range pool {
		if !drop[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func removeRecipe(pool []recipe.Recipe, id string) []recipe.Recipe {
	for i, r := range pool {
		if r.ID == id {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

func activePlanCacheKey(date time.Time) string {
	return "mealplan:active:" + date.Format("2006-01-02")
}
