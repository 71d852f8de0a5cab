package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/agendago/agenda-go/internal/service"
)

// envelope is the uniform response shape:
// {"success": bool, "message"?: string, "data"?: ..., "errors"?: {...}}.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

var errBodyTooLarge = errors.New("request body too large")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondValidation writes a 422 with the field-level messages.
func respondValidation(w http.ResponseWriter, ve *service.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: "Los datos proporcionados no son válidos.",
		Errors:  ve.Fields,
	})
}

func respondInternal(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("unhandled error")
	respondError(w, http.StatusInternalServerError, "Error interno del servidor.")
}

// decodeJSON reads the request body into dst, capped at 1MB.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return err
	}
	return nil
}

// handleDecodeError writes the response for a decodeJSON failure.
func handleDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "El cuerpo de la solicitud es demasiado grande.")
		return
	}
	respondError(w, http.StatusBadRequest, "El cuerpo de la solicitud no es válido.")
}
