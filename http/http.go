package http

import (
	"net/http"

	"tuition-payments/http/handlers"
	"tuition-payments/http/middleware"
)

// SetupRoutes registers all HTTP routes with CORS enabled.
func SetupRoutes(h *handlers.Handler) {
	// Health check / root
	http.HandleFunc("/", middleware.EnableCORS(h.Root))

	// Order placement
	http.HandleFunc("/order", middleware.EnableCORS(h.CreateOrder))

	// Gateway callbacks
	http.HandleFunc("/payment/success", middleware.EnableCORS(h.PaymentSuccess))
	http.HandleFunc("/payment/fail", middleware.EnableCORS(h.PaymentFail))
	http.HandleFunc("/payment/cancel", middleware.EnableCORS(h.PaymentCancel))
	http.HandleFunc("/payment/ipn", middleware.EnableCORS(h.PaymentIPN))

	// Record access
	http.HandleFunc("/payments", middleware.EnableCORS(h.PaymentsCollection))
	http.HandleFunc("/payments/export", middleware.EnableCORS(h.ExportPayments))
	http.HandleFunc("/invoice/", middleware.EnableCORS(h.GetInvoice))
}
