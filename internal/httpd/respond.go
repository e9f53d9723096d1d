package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, contract.MessageResponse{Message: msg})
}

// writeError maps service and repository errors to a status code. Anything
// unrecognised is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: ve.Fields})
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongPurpose):
		writeMessage(w, http.StatusUnauthorized, "not authorized, token failed")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoDailyLog):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &service.ValidationError{Fields: map[string]string{"body": "request body is empty"}}
		}
		return &service.ValidationError{Fields: map[string]string{"body": fmt.Sprintf("malformed JSON: %v", err)}}
	}
	return nil
}
