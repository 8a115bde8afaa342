package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

// now is swapped in tests that depend on the current quarter
var now = time.Now

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldName := toJSONFieldName(fe.Field())
			errors[fieldName] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: errors,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("Must be a date in the format %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	default:
		return domain.ErrorTypeInternal
	}
}

var notFoundErrors = []error{
	service.ErrNotFound,
	service.ErrUserNotFound,
	service.ErrManagerNotFound,
	service.ErrEntityNotFound,
	service.ErrTeamNotFound,
	service.ErrMappingNotFound,
	service.ErrActivityNotFound,
	service.ErrTargetNotFound,
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidRole), errors.Is(err, period.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// respondServiceError renders a service error as problem details. Internal
// errors are logged and replaced by msg so nothing leaks to the client.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
		respondWithError(w, status, msg)
		return
	}

	apiErr := domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: err.Error(),
	}
	var coded *service.Error
	if errors.As(err, &coded) {
		apiErr.Code = coded.Code
		if len(coded.Fields) > 0 {
			apiErr.Errors = make(map[string]string, len(coded.Fields))
			for _, f := range coded.Fields {
				apiErr.Errors[f] = fmt.Sprintf("%s is required for this role", f)
			}
		}
	}
	respondJSON(w, status, apiErr)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// uuidParam parses a chi path parameter as a UUID
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional UUID query parameter
func optionalUUIDQuery(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return nil, false
	}
	return &id, true
}

// periodQuery resolves period, start and end query parameters.
// Without any of them the current quarter is used.
func periodQuery(w http.ResponseWriter, r *http.Request) (period.Period, bool) {
	q := r.URL.Query()
	p, err := period.Parse(q.Get("period"), q.Get("start"), q.Get("end"), now())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return period.Period{}, false
	}
	return p, true
}

// drillDownQuery reads the repId and managerId filters
func drillDownQuery(w http.ResponseWriter, r *http.Request) (service.DrillDown, bool) {
	repID, ok := optionalUUIDQuery(w, r, "repId")
	if !ok {
		return service.DrillDown{}, false
	}
	managerID, ok := optionalUUIDQuery(w, r, "managerId")
	if !ok {
		return service.DrillDown{}, false
	}
	return service.DrillDown{RepID: repID, ManagerID: managerID}, true
}
