// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/domain/preference"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/domain/recipe"
)

// IngredientToModel converts a catalog ingredient to its GORM model
func IngredientToModel(i catalog.Ingredient) *IngredientModel {
	return &IngredientModel{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Subcategory: i.Subcategory,
		Synonyms:    StringSlice(i.Synonyms),
	}
}

// ModelToIngredient converts a GORM model to a catalog ingredient
func ModelToIngredient(m *IngredientModel) catalog.Ingredient {
	return catalog.Ingredient{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		Synonyms:    []string(m.Synonyms),
	}
}

// ApplianceToModel converts a catalog appliance to its GORM model
func ApplianceToModel(a catalog.Appliance) *ApplianceModel {
	return &ApplianceModel{
		ID:              a.ID,
		Name:            a.Name,
		Category:        a.Category,
		Subcategory:     a.Subcategory,
		Synonyms:        StringSlice(a.Synonyms),
		Functionalities: StringSlice(a.Functionalities),
	}
}

// ModelToAppliance converts a GORM model to a catalog appliance
func ModelToAppliance(m *ApplianceModel) catalog.Appliance {
	return catalog.Appliance{
		ID:              m.ID,
		Name:            m.Name,
		Category:        m.Category,
		Subcategory:     m.Subcategory,
		Synonyms:        []string(m.Synonyms),
		Functionalities: []string(m.Functionalities),
	}
}

func adjustmentsToDocs(adjustments []catalog.Adjustment) AdjustmentList {
	out := make(AdjustmentList, len(adjustments))
	for i, a := range adjustments {
		out[i] = AdjustmentDoc{
			Description:        a.Description,
			StepNumber:         a.StepNumber,
			Compensation:       a.Compensation,
			TimingDeltaMinutes: a.TimingDeltaMinutes,
			TimingReason:       a.TimingReason,
		}
	}
	return out
}

func docsToAdjustments(docs AdjustmentList) []catalog.Adjustment {
	out := make([]catalog.Adjustment, len(docs))
	for i, d := range docs {
		out[i] = catalog.Adjustment{
			Description:        d.Description,
			StepNumber:         d.StepNumber,
			Compensation:       d.Compensation,
			TimingDeltaMinutes: d.TimingDeltaMinutes,
			TimingReason:       d.TimingReason,
		}
	}
	return out
}

// SubstitutionEdgeToModel converts a substitution edge to its GORM model
func SubstitutionEdgeToModel(e catalog.SubstitutionEdge) *SubstitutionEdgeModel {
	return &SubstitutionEdgeModel{
		OriginalID:      e.OriginalID,
		AlternativeID:   e.AlternativeID,
		Ratio:           e.Ratio,
		Confidence:      e.Confidence,
		RecipeTypes:     StringSlice(e.Context.RecipeTypes),
		Cuisines:        StringSlice(e.Context.Cuisines),
		CookingMethods:  StringSlice(e.Context.CookingMethods),
		ImpactTaste:     e.Impact.Taste,
		ImpactTexture:   e.Impact.Texture,
		ImpactColor:     e.Impact.Color,
		ImpactNutrition: e.Impact.Nutrition,
		Adjustments:     adjustmentsToDocs(e.Adjustments),
		DietaryTags:     StringSlice(e.DietaryTags),
	}
}

// ModelToSubstitutionEdge converts a GORM model to a substitution edge
func ModelToSubstitutionEdge(m *SubstitutionEdgeModel) catalog.SubstitutionEdge {
	return catalog.SubstitutionEdge{
		OriginalID:    m.OriginalID,
		AlternativeID: m.AlternativeID,
		Ratio:         m.Ratio,
		Confidence:    m.Confidence,
		Context: catalog.ContextFactors{
			RecipeTypes:    []string(m.RecipeTypes),
			Cuisines:       []string(m.Cuisines),
			CookingMethods: []string(m.CookingMethods),
		},
		Impact: catalog.SubstitutionImpact{
			Taste:     m.ImpactTaste,
			Texture:   m.ImpactTexture,
			Color:     m.ImpactColor,
			Nutrition: m.ImpactNutrition,
		},
		Adjustments: docsToAdjustments(m.Adjustments),
		DietaryTags: []string(m.DietaryTags),
	}
}

// AdaptationEdgeToModel converts an adaptation edge to its GORM model
func AdaptationEdgeToModel(e catalog.AdaptationEdge) *AdaptationEdgeModel {
	return &AdaptationEdgeModel{
		OriginalID:       e.OriginalID,
		AlternativeID:    e.AlternativeID,
		Confidence:       e.Confidence,
		RecipeTypes:      StringSlice(e.Context.RecipeTypes),
		Cuisines:         StringSlice(e.Context.Cuisines),
		CookingMethods:   StringSlice(e.Context.CookingMethods),
		ImpactTechnique:  e.Impact.Technique,
		ImpactTiming:     e.Impact.Timing,
		ImpactQuality:    e.Impact.Quality,
		ImpactDifficulty: e.Impact.Difficulty,
		Adjustments:      adjustmentsToDocs(e.Adjustments),
	}
}

// ModelToAdaptationEdge converts a GORM model to an adaptation edge
func ModelToAdaptationEdge(m *AdaptationEdgeModel) catalog.AdaptationEdge {
	return catalog.AdaptationEdge{
		OriginalID:    m.OriginalID,
		AlternativeID: m.AlternativeID,
		Confidence:    m.Confidence,
		Context: catalog.ContextFactors{
			RecipeTypes:    []string(m.RecipeTypes),
			Cuisines:       []string(m.Cuisines),
			CookingMethods: []string(m.CookingMethods),
		},
		Impact: catalog.AdaptationImpact{
			Technique:  m.ImpactTechnique,
			Timing:     m.ImpactTiming,
			Quality:    m.ImpactQuality,
			Difficulty: m.ImpactDifficulty,
		},
		Adjustments: docsToAdjustments(m.Adjustments),
	}
}

// PreferenceToModel converts a preference record to its GORM model
func PreferenceToModel(r preference.Record) *PreferenceModel {
	return &PreferenceModel{
		OriginalID:    r.OriginalID,
		AlternativeID: r.AlternativeID,
		TimesUsed:     r.TimesUsed,
		SuccessRate:   r.SuccessRate,
		Contexts:      StringSlice(r.Contexts),
		Notes:         StringSlice(r.Notes),
		LastUsedAt:    r.LastUsedAt,
	}
}

// ModelToPreference converts a GORM model to a preference record
func ModelToPreference(m *PreferenceModel) preference.Record {
	return preference.Record{
		OriginalID:    m.OriginalID,
		AlternativeID: m.AlternativeID,
		TimesUsed:     m.TimesUsed,
		SuccessRate:   m.SuccessRate,
		Contexts:      []string(m.Contexts),
		Notes:         []string(m.Notes),
		LastUsedAt:    m.LastUsedAt,
	}
}

func ingredientLinesToDocs(lines []recipe.Ingredient) IngredientLineList {
	out := make(IngredientLineList, len(lines))
	for i, l := range lines {
		out[i] = IngredientLineDoc{
			IngredientID: l.IngredientID,
			Name:         l.Name,
			Amount:       l.Amount,
			Unit:         l.Unit,
			Optional:     l.Optional,
			Notes:        l.Notes,
		}
	}
	return out
}

func docsToIngredientLines(docs IngredientLineList) []recipe.Ingredient {
	out := make([]recipe.Ingredient, len(docs))
	for i, d := range docs {
		out[i] = recipe.Ingredient{
			IngredientID: d.IngredientID,
			Name:         d.Name,
			Amount:       d.Amount,
			Unit:         d.Unit,
			Optional:     d.Optional,
			Notes:        d.Notes,
		}
	}
	return out
}

func stepsToDocs(steps []recipe.Step) StepList {
	out := make(StepList, len(steps))
	for i, s := range steps {
		out[i] = StepDoc{
			Number:          s.Number,
			Instruction:     s.Instruction,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return out
}

func docsToSteps(docs StepList) []recipe.Step {
	out := make([]recipe.Step, len(docs))
	for i, d := range docs {
		out[i] = recipe.Step{
			Number:          d.Number,
			Instruction:     d.Instruction,
			DurationMinutes: d.DurationMinutes,
		}
	}
	return out
}

// RecipeToModel converts a recipe to its GORM model
func RecipeToModel(r recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Category:         r.Category,
		Cuisine:          r.Cuisine,
		Difficulty:       r.Difficulty,
		Tags:             StringSlice(r.Tags),
		Ingredients:      ingredientLinesToDocs(r.Ingredients),
		Steps:            stepsToDocs(r.Steps),
		Servings:         r.Servings,
		MinServings:      r.MinServings,
		MaxServings:      r.MaxServings,
		TotalTimeMinutes: r.TotalTimeMinutes,
	}
}

// ModelToRecipe converts a GORM model to a recipe
func ModelToRecipe(m *RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		Category:         m.Category,
		Cuisine:          m.Cuisine,
		Difficulty:       m.Difficulty,
		Tags:             []string(m.Tags),
		Ingredients:      docsToIngredientLines(m.Ingredients),
		Steps:            docsToSteps(m.Steps),
		Servings:         m.Servings,
		MinServings:      m.MinServings,
		MaxServings:      m.MaxServings,
		TotalTimeMinutes: m.TotalTimeMinutes,
	}
}

// VariantToModel converts a variant to its GORM model
func VariantToModel(v recipe.Variant) *VariantModel {
	ingredientChanges := make(IngredientChangeList, len(v.IngredientChanges))
	for i, c := range v.IngredientChanges {
		doc := IngredientChangeDoc{
			Kind:         string(c.Kind),
			IngredientID: c.IngredientID,
		}
		if c.Ingredient != nil {
			line := ingredientLinesToDocs([]recipe.Ingredient{*c.Ingredient})[0]
			doc.Ingredient = &line
		}
		ingredientChanges[i] = doc
	}
	stepChanges := make(StepChangeList, len(v.StepChanges))
	for i, c := range v.StepChanges {
		doc := StepChangeDoc{
			Kind:       string(c.Kind),
			StepNumber: c.StepNumber,
		}
		if c.Step != nil {
			step := stepsToDocs([]recipe.Step{*c.Step})[0]
			doc.Step = &step
		}
		stepChanges[i] = doc
	}
	return &VariantModel{
		ID:                v.ID,
		BaseRecipeID:      v.BaseRecipeID,
		Name:              v.Name,
		Description:       v.Description,
		IngredientChanges: ingredientChanges,
		StepChanges:       stepChanges,
		Metadata:          StringMap(v.Metadata),
		Tags:              StringSlice(v.Tags),
		TimesUsed:         v.TimesUsed,
		CreatedAt:         v.CreatedAt,
	}
}

// ModelToVariant converts a GORM model to a variant
func ModelToVariant(m *VariantModel) recipe.Variant {
	ingredientChanges := make([]recipe.IngredientChange, len(m.IngredientChanges))
	for i, d := range m.IngredientChanges {
		change := recipe.IngredientChange{
			Kind:         recipe.ChangeKind(d.Kind),
			IngredientID: d.IngredientID,
		}
		if d.Ingredient != nil {
			line := docsToIngredientLines(IngredientLineList{*d.Ingredient})[0]
			change.Ingredient = &line
		}
		ingredientChanges[i] = change
	}
	stepChanges := make([]recipe.StepChange, len(m.StepChanges))
	for i, d := range m.StepChanges {
		change := recipe.StepChange{
			Kind:       recipe.ChangeKind(d.Kind),
			StepNumber: d.StepNumber,
		}
		if d.Step != nil {
			step := docsToSteps(StepList{*d.Step})[0]
			change.Step = &step
		}
		stepChanges[i] = change
	}
	return recipe.Variant{
		ID:                m.ID,
		BaseRecipeID:      m.BaseRecipeID,
		Name:              m.Name,
		Description:       m.Description,
		IngredientChanges: ingredientChanges,
		StepChanges:       stepChanges,
		Metadata:          map[string]string(m.Metadata),
		Tags:              []string(m.Tags),
		TimesUsed:         m.TimesUsed,
		CreatedAt:         m.CreatedAt,
	}
}

// HistoryEntryToModel converts a history entry to its GORM model
func HistoryEntryToModel(h mealplan.HistoryEntry) *HistoryEntryModel {
	changes := make(SessionChangeList, len(h.Changes))
	for i, c := range h.Changes {
		changes[i] = SessionChangeDoc{
			Type:         string(c.Type),
			Description:  c.Description,
			IngredientID: c.IngredientID,
			SubstituteID: c.SubstituteID,
		}
	}
	return &HistoryEntryModel{
		ID:          h.ID,
		RecipeID:    h.RecipeID,
		VariantID:   h.VariantID,
		StartedAt:   h.StartedAt,
		CompletedAt: h.CompletedAt,
		Rating:      h.Rating,
		Changes:     changes,
	}
}

// ModelToHistoryEntry converts a GORM model to a history entry
func ModelToHistoryEntry(m *HistoryEntryModel) mealplan.HistoryEntry {
	changes := make([]mealplan.SessionChange, len(m.Changes))
	for i, d := range m.Changes {
		changes[i] = mealplan.SessionChange{
			Type:         mealplan.SessionChangeType(d.Type),
			Description:  d.Description,
			IngredientID: d.IngredientID,
			SubstituteID: d.SubstituteID,
		}
	}
	return mealplan.HistoryEntry{
		ID:          m.ID,
		RecipeID:    m.RecipeID,
		VariantID:   m.VariantID,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		Rating:      m.Rating,
		Changes:     changes,
	}
}

// KnowledgeEntryToModel converts a knowledge entry to its GORM model.
// A nil predicate is stored as the empty document; both mean "applies
// everywhere".
func KnowledgeEntryToModel(e knowledge.Entry) *KnowledgeEntryModel {
	var appliesTo AppliesToDoc
	if e.AppliesTo != nil {
		appliesTo = AppliesToDoc{
			RecipeTypes:    e.AppliesTo.RecipeTypes,
			IngredientIDs:  e.AppliesTo.IngredientIDs,
			ApplianceIDs:   e.AppliesTo.ApplianceIDs,
			CookingMethods: e.AppliesTo.CookingMethods,
		}
	}
	return &KnowledgeEntryModel{
		ID:           e.ID,
		Type:         string(e.Type),
		Summary:      e.Summary,
		Details:      e.Details,
		AppliesTo:    appliesTo,
		Confidence:   e.Confidence,
		TimesApplied: e.TimesApplied,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ModelToKnowledgeEntry converts a GORM model to a knowledge entry
func ModelToKnowledgeEntry(m *KnowledgeEntryModel) knowledge.Entry {
	entry := knowledge.Entry{
		ID:           m.ID,
		Type:         knowledge.EntryType(m.Type),
		Summary:      m.Summary,
		Details:      m.Details,
		Confidence:   m.Confidence,
		TimesApplied: m.TimesApplied,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	doc := m.AppliesTo
	if len(doc.RecipeTypes) > 0 || len(doc.IngredientIDs) > 0 ||
		len(doc.ApplianceIDs) > 0 || len(doc.CookingMethods) > 0 {
		entry.AppliesTo = &knowledge.AppliesTo{
			RecipeTypes:    doc.RecipeTypes,
			IngredientIDs:  doc.IngredientIDs,
			ApplianceIDs:   doc.ApplianceIDs,
			CookingMethods: doc.CookingMethods,
		}
	}
	return entry
}

// MealPlanToModel converts a weekly plan to its GORM model
func MealPlanToModel(p mealplan.WeeklyPlan) *MealPlanModel {
	days := make(DayPlanList, mealplan.DaysPerWeek)
	for i, d := range p.Days {
		days[i] = DayPlanDoc{
			Desayuno: d.Desayuno,
			Almuerzo: d.Almuerzo,
			Comida:   d.Comida,
			Cena:     d.Cena,
		}
	}
	return &MealPlanModel{
		ID:        p.ID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Days:      days,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

// ModelToMealPlan converts a GORM model to a weekly plan
func ModelToMealPlan(m *MealPlanModel) mealplan.WeeklyPlan {
	plan := mealplan.WeeklyPlan{
		ID:        m.ID,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
	for i := 0; i < mealplan.DaysPerWeek && i < len(m.Days); i++ {
		plan.Days[i] = mealplan.DayPlan{
			Desayuno: m.Days[i].Desayuno,
			Almuerzo: m.Days[i].Almuerzo,
			Comida:   m.Days[i].Comida,
			Cena:     m.Days[i].Cena,
		}
	}
	return plan
}

// InventoryItemToModel converts an inventory item to its GORM model
func InventoryItemToModel(i catalog.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		IngredientID: i.IngredientID,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
	}
}

// ModelToInventoryItem converts a GORM model to an inventory item
func ModelToInventoryItem(m *InventoryItemModel) catalog.InventoryItem {
	return catalog.InventoryItem{
		IngredientID: m.IngredientID,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
	}
}

// ProfileToModel converts the user profile to its GORM model
func ProfileToModel(p profile.Profile) *ProfileModel {
	return &ProfileModel{
		ID:                  profileRowID,
		OwnedApplianceIDs:   StringSlice(p.OwnedApplianceIDs),
		PreferredCuisines:   StringSlice(p.PreferredCuisines),
		DietaryRestrictions: StringSlice(p.DietaryRestrictions),
		Skill:               string(p.Skill),
		MaxCookingMinutes:   p.MaxCookingMinutes,
	}
}

// ModelToProfile converts a GORM model to the user profile
func ModelToProfile(m *ProfileModel) profile.Profile {
	return profile.Profile{
		OwnedApplianceIDs:   []string(m.OwnedApplianceIDs),
		PreferredCuisines:   []string(m.PreferredCuisines),
		DietaryRestrictions: []string(m.DietaryRestrictions),
		Skill:               profile.SkillLevel(m.Skill),
		MaxCookingMinutes:   m.MaxCookingMinutes,
	}
}
