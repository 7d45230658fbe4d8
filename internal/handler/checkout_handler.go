package handler

import (
	"net/http"

	"mpgspay/config"
	"mpgspay/internal/domain"
	"mpgspay/internal/gateway"
	"mpgspay/internal/repository"
	"mpgspay/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cfg      *config.Config
	settings *repository.SettingRepository
	orders   *repository.OrderRepository
	orderSvc *service.OrderService
}

func NewCheckoutHandler(cfg *config.Config, settings *repository.SettingRepository, orders *repository.OrderRepository, orderSvc *service.OrderService) *CheckoutHandler {
	return &CheckoutHandler{cfg: cfg, settings: settings, orders: orders, orderSvc: orderSvc}
}

// Options returns the ordered payment options for the given cart, together
// with the checkout bootstrap data the front end needs.
func (h *CheckoutHandler) Options(c *gin.Context) {
	orderRef := c.Query("order_ref")
	lang := c.DefaultQuery("lang", "en")

	gcfg, err := gateway.Load(h.settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	urls := service.CheckoutURLs{
		Action: h.cfg.Server.BaseURL + "/api/v1/checkout/session",
		Cancel: h.cfg.Server.BaseURL + "/api/v1/checkout/cancel",
	}
	options := service.AssemblePaymentOptions(gcfg, lang, urls)

	resp := gin.H{"options": options}

	if len(options) > 0 && orderRef != "" {
		order, err := h.orders.GetByReference(orderRef)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		cart := service.CartSnapshot{
			OrderRef:    order.Reference,
			AmountCents: order.AmountCents,
			Currency:    order.Currency,
		}
		scriptURL, err := gcfg.CheckoutScriptURL(domain.APIVersion)
		if err != nil {
			// A blocking configuration error for the administrator to fix.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		resp["mpgs_config"] = gin.H{
			"merchant_id":            gcfg.Credential(domain.KeyMerchantID),
			"cart":                   cart,
			"checkout_component_url": scriptURL,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CreateSession opens a Hosted Checkout session for an order.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req struct {
		OrderRef string `json:"order_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	returnURL := h.cfg.Server.BaseURL + "/api/v1/checkout/return"
	session, err := h.orderSvc.CreateCheckoutSession(c.Request.Context(), req.OrderRef, returnURL)
	if err != nil {
		if err == gateway.ErrEndpointNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":        session.SessionID,
		"success_indicator": session.SuccessIndicator,
	})
}
