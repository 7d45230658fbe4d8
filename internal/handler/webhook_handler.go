package handler

import (
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"mpgspay/internal/gateway"
	"mpgspay/internal/models"
	"mpgspay/internal/service"

	"github.com/gin-gonic/gin"
)

// webhookOrderStore is the slice of the order repository the webhook needs.
type webhookOrderStore interface {
	GetByReference(ref string) (*models.Order, error)
	AddTransaction(t *models.OrderTransaction) error
	UpdateState(orderID, stateID uint) error
}

// webhookEventStore persists delivery records for deduplication.
type webhookEventStore interface {
	GetByEventID(eventID string) (*models.WebhookEvent, error)
	Create(e *models.WebhookEvent) error
	MarkProcessed(id uint) error
}

type WebhookHandler struct {
	settings gateway.SettingStore
	orders   webhookOrderStore
	events   webhookEventStore
}

func NewWebhookHandler(settings gateway.SettingStore, orders webhookOrderStore, events webhookEventStore) *WebhookHandler {
	return &WebhookHandler{settings: settings, orders: orders, events: events}
}

// Handle processes a gateway notification. The secret for the active mode is
// checked first; duplicate deliveries are acknowledged without re-processing.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	cfg, err := gateway.Load(h.settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	if secret := cfg.Credentials().WebhookSecret; secret == "" {
		log.Printf("[MPGS] no webhook secret configured, accepting notification unauthenticated")
	} else {
		sig := c.GetHeader("X-Notification-Secret")
		if !hmac.Equal([]byte(sig), []byte(secret)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid notification secret"})
			return
		}
	}

	var payload struct {
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
		Transaction struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Order.ID == "" || payload.Transaction.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order and transaction ids required"})
		return
	}

	// The gateway speaks AUTHORIZATION/PAYMENT/VOID_AUTHORIZATION; the
	// correlation ids that capture and void later scan for use the local
	// type names, so translate before anything is keyed or stored.
	txnType := service.NormalizeTxnType(payload.Transaction.Type)

	eventID := fmt.Sprintf("%s:%s:%s", payload.Order.ID, txnType, payload.Transaction.ID)
	if existing, err := h.events.GetByEventID(eventID); err == nil && existing != nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	event := &models.WebhookEvent{
		EventID:      eventID,
		OrderRef:     payload.Order.ID,
		TxnType:      txnType,
		GatewayTxnID: payload.Transaction.ID,
		OrderStatus:  payload.Order.Status,
		Payload:      string(body),
	}
	if err := h.events.Create(event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
		return
	}

	order, err := h.orders.GetByReference(payload.Order.ID)
	if err != nil {
		// Not our order; acknowledge so the gateway stops retrying.
		log.Printf("[MPGS] webhook for unknown order %s", payload.Order.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if service.FindTransaction(order, txnType) == nil {
		rec := &models.OrderTransaction{
			OrderID:       order.ID,
			CorrelationID: service.EncodeCorrelationID(txnType, payload.Transaction.ID),
			AmountCents:   order.AmountCents,
			Currency:      order.Currency,
		}
		if err := h.orders.AddTransaction(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record transaction"})
			return
		}
	}

	reg := service.LoadStatusRegistry(h.settings)
	if next := stateForGatewayStatus(payload.Order.Status, reg); next != 0 && next != order.StateID {
		if err := h.orders.UpdateState(order.ID, next); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
	}

	_ = h.events.MarkProcessed(event.ID)
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// stateForGatewayStatus maps a gateway order status onto an installed state.
// Unknown statuses leave the order untouched.
func stateForGatewayStatus(status string, reg service.StatusRegistry) uint {
	switch status {
	case "AUTHORIZED":
		return reg.Authorized
	case "CAPTURED":
		return reg.PaymentAccepted
	case "CANCELLED":
		return reg.Canceled
	case "REFUNDED":
		return reg.Refunded
	}
	return 0
}
