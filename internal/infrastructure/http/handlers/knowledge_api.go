package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cocinero/v1/internal/domain/knowledge"
	"github.com/cocinero/v1/internal/ports/inbound"
)

type appliesToPayload struct {
	RecipeTypes    []string `json:"recipe_types"`
	IngredientIDs  []string `json:"ingredient_ids"`
	ApplianceIDs   []string `json:"appliance_ids"`
	CookingMethods []string `json:"cooking_methods"`
}

type addKnowledgeRequest struct {
	Type       string            `json:"type" validate:"required"`
	Summary    string            `json:"summary" validate:"required"`
	Details    string            `json:"details"`
	AppliesTo  *appliesToPayload `json:"applies_to"`
	Confidence float64           `json:"confidence" validate:"gte=0,lte=1"`
}

// AddKnowledge handles POST /api/v1/knowledge
func (h *APIHandlers) AddKnowledge(w http.ResponseWriter, r *http.Request) {
	var req addKnowledgeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := inbound.AddKnowledgeCommand{
		Type:       knowledge.EntryType(req.Type),
		Summary:    req.Summary,
		Details:    req.Details,
		Confidence: req.Confidence,
	}
	if req.AppliesTo != nil {
		cmd.AppliesTo = &knowledge.AppliesTo{
			RecipeTypes:    req.AppliesTo.RecipeTypes,
			IngredientIDs:  req.AppliesTo.IngredientIDs,
			ApplianceIDs:   req.AppliesTo.ApplianceIDs,
			CookingMethods: req.AppliesTo.CookingMethods,
		}
	}

	entry, err := h.knowledge.AddEntry(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: entry})
}

type updateConfidenceRequest struct {
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// UpdateKnowledgeConfidence handles PUT /api/v1/knowledge/{entryID}/confidence
func (h *APIHandlers) UpdateKnowledgeConfidence(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	var req updateConfidenceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.knowledge.UpdateConfidence(r.Context(), entryID, req.Confidence)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entry})
}

// GetRelevantKnowledge handles GET /api/v1/knowledge/relevant.
// The query context comes from URL parameters; list parameters are
// comma-separated.
func (h *APIHandlers) GetRelevantKnowledge(w http.ResponseWriter, r *http.Request) {
	q := knowledge.Context{
		RecipeType:    r.URL.Query().Get("recipe_type"),
		CookingMethod: r.URL.Query().Get("cooking_method"),
	}
	if raw := r.URL.Query().Get("ingredient_ids"); raw != "" {
		q.IngredientIDs = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get("appliance_ids"); raw != "" {
		q.ApplianceIDs = strings.Split(raw, ",")
	}

	entries, err := h.knowledge.GetRelevantKnowledge(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: entries})
}

// GetKnowledgeDigest handles GET /api/v1/knowledge/digest
func (h *APIHandlers) GetKnowledgeDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := h.knowledge.Digest(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"digest": digest},
	})
}

// GetKnowledgeProfile handles GET /api/v1/knowledge/profile
func (h *APIHandlers) GetKnowledgeProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.knowledge.Profile(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: profile})
}
