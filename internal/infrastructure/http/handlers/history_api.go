package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cocinero/v1/internal/domain/mealplan"
	"github.com/cocinero/v1/internal/ports/inbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
)

type sessionChangeRequest struct {
	Type         string `json:"type" validate:"required,oneof=substitution adjustment tip modification note"`
	Description  string `json:"description"`
	IngredientID string `json:"ingredient_id"`
	SubstituteID string `json:"substitute_id"`
}

type recordSessionRequest struct {
	RecipeID    string                 `json:"recipe_id" validate:"required"`
	VariantID   string                 `json:"variant_id"`
	StartedAt   string                 `json:"started_at"`
	CompletedAt string                 `json:"completed_at"`
	Rating      int                    `json:"rating" validate:"gte=0,lte=5"`
	Changes     []sessionChangeRequest `json:"changes" validate:"dive"`
}

// RecordSession handles POST /api/v1/history
func (h *APIHandlers) RecordSession(w http.ResponseWriter, r *http.Request) {
	var req recordSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := inbound.RecordSessionCommand{
		RecipeID:  req.RecipeID,
		VariantID: req.VariantID,
		Rating:    req.Rating,
	}
	if req.StartedAt != "" {
		started, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			h.writeError(w, r, apperrors.NewBadRequestError("started_at must be RFC 3339"))
			return
		}
		cmd.StartedAt = started
	}
	if req.CompletedAt != "" {
		completed, err := time.Parse(time.RFC3339, req.CompletedAt)
		if err != nil {
			h.writeError(w, r, apperrors.NewBadRequestError("completed_at must be RFC 3339"))
			return
		}
		cmd.CompletedAt = &completed
	}
	for _, c := range req.Changes {
		cmd.Changes = append(cmd.Changes, mealplan.SessionChange{
			Type:         mealplan.SessionChangeType(c.Type),
			Description:  c.Description,
			IngredientID: c.IngredientID,
			SubstituteID: c.SubstituteID,
		})
	}

	entry, err := h.history.RecordSession(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: entry})
}

// GetRecipeHistory handles GET /api/v1/history/{recipeID}
func (h *APIHandlers) GetRecipeHistory(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "recipeID")

	entries, err := h.history.GetRecipeHistory(r.Context(), recipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entries})
}
