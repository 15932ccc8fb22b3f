package taskhttp

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/taskkit/pkg/logger"
	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// JSONResponse is the standard response envelope.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries error information in the response envelope. Details
// groups validation messages by field name, with field-less records under
// "general".
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondCreated marshals before writing so a failing model marshaler still
// produces a well-formed error envelope instead of a truncated 201.
func respondCreated(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) {
	body, err := json.Marshal(JSONResponse{Data: v})
	if err != nil {
		respondError(w, r, log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, detail := errorDetail(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	} else {
		count := 1
		if col, ok := taskerr.AsCollection(err); ok {
			count = len(col)
		}
		log.DebugContext(r.Context(), "request rejected",
			logger.Code(detail.Code),
			logger.ErrorCount(count),
		)
	}
	writeJSON(w, status, JSONResponse{Error: detail})
}

// errorDetail maps an error to a status code and envelope detail. Validation
// failures become 422 with field-keyed details, serialization failures become
// 400, anything unrecognized becomes 500.
func errorDetail(err error) (int, *ErrorDetail) {
	if col, ok := taskerr.AsCollection(err); ok {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: col.Error(),
			Details: fieldMessages(col),
		}
	}
	if te, ok := taskerr.AsError(err); ok {
		if te.Kind == taskerr.KindSerialization {
			return http.StatusBadRequest, &ErrorDetail{
				Code:    "bad_request",
				Message: te.Message,
			}
		}
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_error",
			Message: te.Message,
			Details: fieldMessages(taskerr.Collection{te}),
		}
	}
	return http.StatusInternalServerError, &ErrorDetail{
		Code:    "internal_error",
		Message: err.Error(),
	}
}

func fieldMessages(col taskerr.Collection) map[string][]string {
	details := make(map[string][]string, len(col))
	for _, e := range col {
		field := e.Field
		if field == "" {
			field = "general"
		}
		details[field] = append(details[field], e.Message)
	}
	return details
}
