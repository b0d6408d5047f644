package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cocinero/v1/internal/application/substitution"
	"github.com/cocinero/v1/internal/domain/catalog"
	"github.com/cocinero/v1/internal/ports/inbound"
)

type contextualQuery struct {
	RecipeType    string `json:"recipe_type"`
	Cuisine       string `json:"cuisine"`
	CookingMethod string `json:"cooking_method"`
}

func (q contextualQuery) ruleContext() catalog.RuleContext {
	return catalog.RuleContext{
		RecipeType:    q.RecipeType,
		Cuisine:       q.Cuisine,
		CookingMethod: q.CookingMethod,
	}
}

type substitutionSearchRequest struct {
	IngredientID string `json:"ingredient_id" validate:"required"`
	contextualQuery
}

// SearchSubstitutions handles POST /api/v1/substitutions/search
func (h *APIHandlers) SearchSubstitutions(w http.ResponseWriter, r *http.Request) {
	var req substitutionSearchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	results, err := h.substitutions.GetContextualSubstitutions(r.Context(), req.IngredientID, req.ruleContext())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: results})
}

// BestSubstitute handles POST /api/v1/substitutions/best
func (h *APIHandlers) BestSubstitute(w http.ResponseWriter, r *http.Request) {
	var req substitutionSearchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.substitutions.GetBestSubstitute(r.Context(), req.IngredientID, req.ruleContext())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

type amountRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Ratio  float64 `json:"ratio" validate:"gt=0"`
}

// ConvertAmount handles POST /api/v1/substitutions/amount
func (h *APIHandlers) ConvertAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	conversion, err := substitution.CalculateAmount(req.Amount, req.Ratio)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: conversion})
}

type adaptationSearchRequest struct {
	ApplianceID string `json:"appliance_id" validate:"required"`
	contextualQuery
}

// SearchAdaptations handles POST /api/v1/adaptations/search
func (h *APIHandlers) SearchAdaptations(w http.ResponseWriter, r *http.Request) {
	var req adaptationSearchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	results, err := h.adaptations.GetContextualAdaptations(r.Context(), req.ApplianceID, req.ruleContext())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: results})
}

// BestAdaptation handles POST /api/v1/adaptations/best
func (h *APIHandlers) BestAdaptation(w http.ResponseWriter, r *http.Request) {
	var req adaptationSearchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.adaptations.GetBestAdaptation(r.Context(), req.ApplianceID, req.ruleContext())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result})
}

type recordUsageRequest struct {
	OriginalID    string   `json:"original_id" validate:"required"`
	AlternativeID string   `json:"alternative_id" validate:"required"`
	Contexts      []string `json:"contexts"`
	Successful    bool     `json:"successful"`
	Note          string   `json:"note"`
}

// RecordUsage handles POST /api/v1/preferences/usage
func (h *APIHandlers) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var req recordUsageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.preferences.RecordUsage(r.Context(), inbound.RecordUsageCommand{
		OriginalID:    req.OriginalID,
		AlternativeID: req.AlternativeID,
		Contexts:      req.Contexts,
		Successful:    req.Successful,
		Note:          req.Note,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: record})
}

// GetPreferred handles GET /api/v1/preferences/{originalID}
func (h *APIHandlers) GetPreferred(w http.ResponseWriter, r *http.Request) {
	originalID := chi.URLParam(r, "originalID")

	records, err := h.preferences.GetPreferred(r.Context(), originalID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: records})
}
