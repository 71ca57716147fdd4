package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/models"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Error   string `json:"error,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Msg: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteDomainError maps sentinel errors onto HTTP statuses with uniform
// messages. Unexpected errors are logged and surfaced as a bare server
// error; detail is only echoed back in development mode.
func (h *Handlers) WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrTokenInvalid):
		WriteError(w, "Please authenticate", http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, "Access denied", http.StatusForbidden)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, models.ErrConflict):
		WriteError(w, "Already exists", http.StatusBadRequest)
	case errors.Is(err, models.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		if h.Cfg.IsDevelopment() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Success: false, Msg: "Server error", Error: err.Error()})
			return
		}
		WriteError(w, "Server error", http.StatusInternalServerError)
	}
}
