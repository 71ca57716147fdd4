package handlers

import (
	"net/http"

	"github.com/AdithyaSiva5/NoteExchange-Backend/internal/middleware"
)

// CreateOrder asks the payment gateway for a premium-purchase order.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.UserFrom(r.Context())
	if user == nil {
		WriteError(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	order, err := h.PaymentService.CreateOrder(r.Context(), user.UserID)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"msg":     "Server is running",
	}, http.StatusOK)
}

func (h *Handlers) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Route not found", http.StatusNotFound)
}
