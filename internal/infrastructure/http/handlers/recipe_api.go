package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocinero/v1/internal/domain/recipe"
	"github.com/cocinero/v1/internal/ports/inbound"
)

type adaptRecipeRequest struct {
	RecipeID            string   `json:"recipe_id" validate:"required"`
	MissingIngredients  []string `json:"missing_ingredients"`
	MissingAppliances   []string `json:"missing_appliances"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Servings            int      `json:"servings" validate:"gte=0"`
}

// AdaptRecipe handles POST /api/v1/recipes/adapt
func (h *APIHandlers) AdaptRecipe(w http.ResponseWriter, r *http.Request) {
	var req adaptRecipeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	adapted, err := h.recipeAdapt.AdaptRecipe(r.Context(), inbound.AdaptRecipeCommand{
		RecipeID:            req.RecipeID,
		MissingIngredients:  req.MissingIngredients,
		MissingAppliances:   req.MissingAppliances,
		DietaryRestrictions: req.DietaryRestrictions,
		Servings:            req.Servings,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: adapted})
}

type ingredientChangeRequest struct {
	Kind         string             `json:"kind" validate:"required,oneof=removed added modified"`
	IngredientID string             `json:"ingredient_id" validate:"required"`
	Ingredient   *ingredientPayload `json:"ingredient"`
}

type ingredientPayload struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Optional     bool    `json:"optional"`
	Notes        string  `json:"notes"`
}

type stepChangeRequest struct {
	Kind       string       `json:"kind" validate:"required,oneof=removed added modified"`
	StepNumber int          `json:"step_number" validate:"gte=1"`
	Step       *stepPayload `json:"step"`
}

type stepPayload struct {
	Number          int    `json:"number"`
	Instruction     string `json:"instruction"`
	DurationMinutes int    `json:"duration_minutes"`
}

type createVariantRequest struct {
	Name              string                    `json:"name" validate:"required"`
	Description       string                    `json:"description"`
	IngredientChanges []ingredientChangeRequest `json:"ingredient_changes" validate:"dive"`
	StepChanges       []stepChangeRequest       `json:"step_changes" validate:"dive"`
	Metadata          map[string]string         `json:"metadata"`
	Tags              []string                  `json:"tags"`
}

func (req createVariantRequest) toCommand(baseRecipeID string) inbound.CreateVariantCommand {
	cmd := inbound.CreateVariantCommand{
		BaseRecipeID: baseRecipeID,
		Name:         req.Name,
		Description:  req.Description,
		Metadata:     req.Metadata,
		Tags:         req.Tags,
	}
	for _, c := range req.IngredientChanges {
		change := recipe.IngredientChange{
			Kind:         recipe.ChangeKind(c.Kind),
			IngredientID: c.IngredientID,
		}
		if c.Ingredient != nil {
			change.Ingredient = &recipe.Ingredient{
				IngredientID: c.Ingredient.IngredientID,
				Name:         c.Ingredient.Name,
				Amount:       c.Ingredient.Amount,
				Unit:         c.Ingredient.Unit,
				Optional:     c.Ingredient.Optional,
				Notes:        c.Ingredient.Notes,
			}
		}
		cmd.IngredientChanges = append(cmd.IngredientChanges, change)
	}
	for _, c := range req.StepChanges {
		change := recipe.StepChange{
			Kind:       recipe.ChangeKind(c.Kind),
			StepNumber: c.StepNumber,
		}
		if c.Step != nil {
			change.Step = &recipe.Step{
				Number:          c.Step.Number,
				Instruction:     c.Step.Instruction,
				DurationMinutes: c.Step.DurationMinutes,
			}
		}
		cmd.StepChanges = append(cmd.StepChanges, change)
	}
	return cmd
}

// CreateVariant handles POST /api/v1/recipes/{recipeID}/variants
func (h *APIHandlers) CreateVariant(w http.ResponseWriter, r *http.Request) {
	baseRecipeID := chi.URLParam(r, "recipeID")

	var req createVariantRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.variants.CreateVariant(r.Context(), req.toCommand(baseRecipeID))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    map[string]string{"variant_id": id},
	})
}

// ListVariants handles GET /api/v1/recipes/{recipeID}/variants
func (h *APIHandlers) ListVariants(w http.ResponseWriter, r *http.Request) {
	baseRecipeID := chi.URLParam(r, "recipeID")

	variants, err := h.variants.ListVariantsForRecipe(r.Context(), baseRecipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: variants})
}

// ApplyVariant handles POST /api/v1/recipes/{recipeID}/variants/{variantID}/apply
func (h *APIHandlers) ApplyVariant(w http.ResponseWriter, r *http.Request) {
	baseRecipeID := chi.URLParam(r, "recipeID")
	variantID := chi.URLParam(r, "variantID")

	derived, err := h.variants.ApplyVariantToRecipe(r.Context(), baseRecipeID, variantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: derived})
}

// GetVariantSummary handles GET /api/v1/variants/{variantID}/summary
func (h *APIHandlers) GetVariantSummary(w http.ResponseWriter, r *http.Request) {
	variantID := chi.URLParam(r, "variantID")

	summary, err := h.variants.GetVariantSummary(r.Context(), variantID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: summary})
}

// DeleteVariant handles DELETE /api/v1/variants/{variantID}
func (h *APIHandlers) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	variantID := chi.URLParam(r, "variantID")

	if err := h.variants.DeleteVariant(r.Context(), variantID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Variant deleted"})
}
