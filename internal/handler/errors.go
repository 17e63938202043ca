package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
	Detail string            `json:"detail,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// WriteError sends a plain {"error": message} body.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeAppError maps err onto its status. Causes are logged and, outside
// production, echoed as detail on 500 responses.
func (h *Handlers) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	message := apperr.MessageOf(err)
	if message == "" {
		message = "Server error"
	}

	response := ErrorResponse{Error: message, Errors: apperr.FieldsOf(err)}

	log := h.logger().With("request_id", logging.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "status", status)
	if status >= http.StatusInternalServerError {
		log.Errorw("request failed", "kind", apperr.KindOf(err).String(), "error", err)
		if h.Cfg == nil || !h.Cfg.IsProduction() {
			response.Detail = err.Error()
		}
	} else {
		log.Debugw("request rejected", "kind", apperr.KindOf(err).String(), "error", message)
	}

	writeSuccess(w, response, status)
}

// allowMethods answers OPTIONS with 204 and any other verb outside methods
// with 405. It reports whether the handler should continue.
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}

	w.Header().Set("Allow", strings.Join(append(methods, http.MethodOptions), ", "))
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return false
	}
	WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// parseID reads the positive {id} route variable.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

// decodeJSON reads the body into dst and runs its validate tags. A failed
// rule is reported as message with per-field details.
func (h *Handlers) decodeJSON(r *http.Request, dst interface{}, message string) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if h.Validate == nil {
		return nil
	}

	err := h.Validate.Struct(dst)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperr.Server("Server error", err)
	}
	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = ruleMessage(fe)
	}
	return apperr.Invalid(message, fields)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("Min %s characters", fe.Param())
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
