package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/domain/profile"
	"github.com/cocinero/v1/internal/ports/inbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
)

const dateLayout = "2006-01-02"

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

type questionnaireRequest struct {
	StartDate         string   `json:"start_date"`
	PreferredCuisines []string `json:"preferred_cuisines"`
	SkillLevel        string   `json:"skill_level"`
	MaxMinutes        int      `json:"max_minutes" validate:"gte=0"`
	ExcludedRecipeIDs []string `json:"excluded_recipe_ids"`
}

// GenerateFromQuestionnaire handles POST /api/v1/plans/questionnaire
func (h *APIHandlers) GenerateFromQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var req questionnaireRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("start_date must be YYYY-MM-DD"))
		return
	}

	plan, err := h.planner.GenerateFromQuestionnaire(r.Context(), inbound.QuestionnaireCommand{
		StartDate:         startDate,
		PreferredCuisines: req.PreferredCuisines,
		SkillLevel:        req.SkillLevel,
		MaxMinutes:        req.MaxMinutes,
		ExcludedRecipeIDs: req.ExcludedRecipeIDs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: plan})
}

type generatePlanRequest struct {
	StartDate    string                `json:"start_date"`
	CandidateIDs []string              `json:"candidate_ids"`
	Proposed     *inbound.ProposedPlan `json:"proposed"`
	Seed         int64                 `json:"seed"`
}

// GeneratePlan handles POST /api/v1/plans/generate
func (h *APIHandlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("start_date must be YYYY-MM-DD"))
		return
	}

	plan, err := h.planner.GeneratePlan(r.Context(), inbound.GeneratePlanCommand{
		StartDate:    startDate,
		CandidateIDs: req.CandidateIDs,
		Proposed:     req.Proposed,
		Seed:         req.Seed,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: plan})
}

// GetActivePlan handles GET /api/v1/plans/active?date=YYYY-MM-DD
func (h *APIHandlers) GetActivePlan(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.writeError(w, r, apperrors.NewBadRequestError("date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	plan, err := h.planner.GetActivePlan(r.Context(), date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: plan})
}

// GetProfile handles GET /api/v1/profile
func (h *APIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context())
	if err != nil {
		h.writeError(w, r, apperrors.NewDatabaseError("load profile", err))
		return
	}
	if p == nil {
		p = &profile.Profile{}
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: p})
}

type saveProfileRequest struct {
	OwnedApplianceIDs   []string `json:"owned_appliance_ids"`
	PreferredCuisines   []string `json:"preferred_cuisines"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Skill               string   `json:"skill" validate:"omitempty,oneof=beginner intermediate advanced"`
	MaxCookingMinutes   int      `json:"max_cooking_minutes" validate:"gte=0"`
}

// SaveProfile handles PUT /api/v1/profile
func (h *APIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	p := profile.Profile{
		OwnedApplianceIDs:   req.OwnedApplianceIDs,
		PreferredCuisines:   req.PreferredCuisines,
		DietaryRestrictions: req.DietaryRestrictions,
		Skill:               profile.SkillLevel(req.Skill),
		MaxCookingMinutes:   req.MaxCookingMinutes,
	}
	if err := h.profiles.Save(r.Context(), p); err != nil {
		h.writeError(w, r, apperrors.NewDatabaseError("save profile", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: p})
}

// ListInventory handles GET /api/v1/inventory
func (h *APIHandlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.FindAll(r.Context())
	if err != nil {
		h.writeError(w, r, apperrors.NewDatabaseError("list inventory", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: items})
}

type saveInventoryRequest struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

// SaveInventoryItem handles PUT /api/v1/inventory/{ingredientID}
func (h *APIHandlers) SaveInventoryItem(w http.ResponseWriter, r *http.Request) {
	ingredientID := chi.URLParam(r, "ingredientID")

	var req saveInventoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	item := catalog.InventoryItem{
		IngredientID: ingredientID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
	}
	if err := h.inventory.Save(r.Context(), item); err != nil {
		h.writeError(w, r, apperrors.NewDatabaseError("save inventory item", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: item})
}

// DeleteInventoryItem handles DELETE /api/v1/inventory/{ingredientID}
func (h *APIHandlers) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	ingredientID := chi.URLParam(r, "ingredientID")

	if err := h.inventory.Delete(r.Context(), ingredientID); err != nil {
		h.writeError(w, r, apperrors.NewDatabaseError("delete inventory item", err))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Inventory item removed"})
}
