// Package errors provides structured error handling for the application
// with stable error codes for the HTTP adapter and callers.
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeIngredientNotFound   ErrorCode = "INGREDIENT_NOT_FOUND"
	CodeApplianceNotFound    ErrorCode = "APPLIANCE_NOT_FOUND"
	CodeRecipeNotFound       ErrorCode = "RECIPE_NOT_FOUND"
	CodeVariantNotFound      ErrorCode = "VARIANT_NOT_FOUND"
	CodeVariantBaseMismatch  ErrorCode = "VARIANT_BASE_MISMATCH"
	CodeNoSubstituteFound    ErrorCode = "NO_SUBSTITUTE_FOUND"
	CodeNoAdaptationFound    ErrorCode = "NO_ADAPTATION_FOUND"
	CodePlanUnsatisfiable    ErrorCode = "PLAN_UNSATISFIABLE"
	CodeInvalidPlanResponse  ErrorCode = "INVALID_PLAN_RESPONSE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeInvalidPlanResponse:
		return http.StatusBadRequest
	case CodeNotFound, CodeIngredientNotFound, CodeApplianceNotFound,
		CodeRecipeNotFound, CodeVariantNotFound, CodeNoSubstituteFound,
		CodeNoAdaptationFound:
		return http.StatusNotFound
	case CodeConflict, CodeVariantBaseMismatch:
		return http.StatusConflict
	case CodePlanUnsatisfiable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Business domain specific errors

// NewIngredientNotFoundError creates an ingredient not found error
func NewIngredientNotFoundError(ingredientID string) *AppError {
	return NewAppError(
		CodeIngredientNotFound,
		"Ingredient not found",
		fmt.Sprintf("Ingredient with ID %s does not exist", ingredientID),
	).WithMetadata("ingredient_id", ingredientID)
}

// NewApplianceNotFoundError creates an appliance not found error
func NewApplianceNotFoundError(applianceID string) *AppError {
	return NewAppError(
		CodeApplianceNotFound,
		"Appliance not found",
		fmt.Sprintf("Appliance with ID %s does not exist", applianceID),
	).WithMetadata("appliance_id", applianceID)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewVariantNotFoundError creates a variant not found error
func NewVariantNotFoundError(variantID string) *AppError {
	return NewAppError(
		CodeVariantNotFound,
		"Variant not found",
		fmt.Sprintf("Variant with ID %s does not exist", variantID),
	).WithMetadata("variant_id", variantID)
}

// NewVariantBaseMismatchError signals a variant applied against the wrong base recipe
func NewVariantBaseMismatchError(variantID, expectedBase, actualBase string) *AppError {
	return NewAppError(
		CodeVariantBaseMismatch,
		"Variant does not belong to recipe",
		fmt.Sprintf("Variant %s was created for recipe %s, not %s", variantID, actualBase, expectedBase),
	).WithMetadata("variant_id", variantID)
}

// NewNoSubstituteFoundError signals that no substitution candidate matched
func NewNoSubstituteFoundError(ingredientID string) *AppError {
	return NewAppError(
		CodeNoSubstituteFound,
		"No substitute found",
		fmt.Sprintf("No substitution candidate available for ingredient %s", ingredientID),
	).WithMetadata("ingredient_id", ingredientID)
}

// NewNoAdaptationFoundError signals that no owned appliance can stand in
func NewNoAdaptationFoundError(applianceID string) *AppError {
	return NewAppError(
		CodeNoAdaptationFound,
		"No adaptation found",
		fmt.Sprintf("No owned appliance can replace %s", applianceID),
	).WithMetadata("appliance_id", applianceID)
}

// NewPlanUnsatisfiableError signals that meal-plan generation produced zero assignments
func NewPlanUnsatisfiableError(details string) *AppError {
	return NewAppError(CodePlanUnsatisfiable, "Meal plan could not be generated", details)
}

// NewInvalidPlanResponseError signals a malformed externally-supplied plan
func NewInvalidPlanResponseError(details string) *AppError {
	return NewAppError(CodeInvalidPlanResponse, "Invalid meal plan response", details)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve it
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:       appErr.Code,
			Message:    message,
			Details:    appErr.Message,
			Metadata:   appErr.Metadata,
			Cause:      appErr,
			StackTrace: getStackTrace(),
		}
	}

	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		Cause:      err,
		StackTrace: getStackTrace(),
	}
}

// Is checks if an error matches a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			sb.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}
	return sb.String()
}
