package handlers

import (
	"errors"
	"log"
	"net/http"

	"redolic_back_end/internal/checkout"
	"redolic_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler expose le workflow de commande. Le service est injecté à
// la construction, contrairement aux handlers catalogue qui s'appuient sur
// les clients globaux.
type CheckoutHandler struct {
	svc *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// === POST /api/create-order ===
// Demande une commande Razorpay pour le montant du panier (roupies → paise).
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid amount"})
		return
	}

	intent, err := h.svc.CreateIntent(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create razorpay order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"key":      intent.KeyID,
		"id":       intent.ID,
		"amount":   intent.Amount,
		"currency": intent.Currency,
	})
}

// === POST /api/verify-payment ===
// Une signature qui ne correspond pas est une réponse 200 success=false ;
// une requête incomplète est une 400.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed"})
		return
	}

	verified, err := h.svc.VerifyCallback(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		log.Println("❌ Vérification paiement impossible:", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed"})
		return
	}

	if !verified {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Payment verified successfully",
		"payment_id": req.RazorpayPaymentID,
	})
}

// === POST /api/save-order ===
func (h *CheckoutHandler) SaveOrder(c *gin.Context) {
	var req struct {
		Items         []models.OrderItem  `json:"items"`
		Total         float64             `json:"total"`
		PaymentMethod string              `json:"paymentMethod"`
		PaymentID     string              `json:"paymentId"`
		UserEmail     string              `json:"userEmail"`
		ShippingInfo  models.ShippingInfo `json:"shippingInfo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	orderID, err := h.svc.PlaceOrder(c.Request.Context(), checkout.OrderDraft{
		Items:         req.Items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
		CustomerEmail: req.UserEmail,
		Shipping:      req.ShippingInfo,
	})
	if errors.Is(err, checkout.ErrEmptyOrder) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order has no items"})
		return
	}
	if err != nil {
		log.Println("❌ Erreur enregistrement commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order saved successfully",
		"orderId": orderID,
	})
}

// === GET /api/orders ===
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}
