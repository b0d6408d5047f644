// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cocinero/v1/internal/ports/inbound"
	"github.com/cocinero/v1/internal/ports/outbound"
	apperrors "github.com/cocinero/v1/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	substitutions inbound.SubstitutionService
	adaptations   inbound.AdaptationService
	preferences   inbound.PreferenceService
	recipeAdapt   inbound.RecipeAdaptService
	variants      inbound.VariantService
	knowledge     inbound.KnowledgeService
	planner       inbound.PlannerService
	history       inbound.HistoryService

	profiles  outbound.ProfileRepository
	inventory outbound.InventoryRepository

	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	substitutions inbound.SubstitutionService,
	adaptations inbound.AdaptationService,
	preferences inbound.PreferenceService,
	recipeAdapt inbound.RecipeAdaptService,
	variants inbound.VariantService,
	knowledge inbound.KnowledgeService,
	planner inbound.PlannerService,
	history inbound.HistoryService,
	profiles outbound.ProfileRepository,
	inventory outbound.InventoryRepository,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		substitutions: substitutions,
		adaptations:   adaptations,
		preferences:   preferences,
		recipeAdapt:   recipeAdapt,
		variants:      variants,
		knowledge:     knowledge,
		planner:       planner,
		history:       history,
		profiles:      profiles,
		inventory:     inventory,
		validate:      validator.New(),
		logger:        logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HealthCheck handles GET /api/v1/health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. A false return means the error response was already written.
func (h *APIHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("invalid JSON body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, r, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error onto the structured error response
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := chimiddleware.GetReqID(r.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error("Unhandled error", zap.Error(err), zap.String("request_id", requestID))
		appErr = apperrors.NewInternalError("internal error")
	}

	h.writeJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}
