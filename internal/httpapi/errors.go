package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperr "jobboard-engine/internal/errors"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeDomainError maps err onto a status code. Internal causes are logged
// and replaced with a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var de *apperr.DomainError
	_ = errors.As(err, &de)

	switch apperr.TypeOf(err) {
	case apperr.ErrTypeNotFound:
		WriteError(w, r, http.StatusNotFound, "not_found", de.Message)
	case apperr.ErrTypeInvalidInput:
		WriteError(w, r, http.StatusBadRequest, "invalid_input", de.Message)
	default:
		fields := []zap.Field{
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}
		if de != nil && len(de.Stack) > 0 {
			fields = append(fields, zap.ByteString("stack", de.Stack))
		}
		log.Error("request failed", fields...)
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
