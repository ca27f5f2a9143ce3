package handlers

import "tuition-payments/services"

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Payments *services.PaymentService
}

func New(payments *services.PaymentService) *Handler {
	return &Handler{Payments: payments}
}
