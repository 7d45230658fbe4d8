package handler

import (
	"context"
	"net/http"
	"strconv"

	"mpgspay/internal/domain"
	"mpgspay/internal/models"
	"mpgspay/internal/repository"
	"mpgspay/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderActionsHandler struct {
	orders   *repository.OrderRepository
	orderSvc *service.OrderService
}

func NewOrderActionsHandler(orders *repository.OrderRepository, orderSvc *service.OrderService) *OrderActionsHandler {
	return &OrderActionsHandler{orders: orders, orderSvc: orderSvc}
}

func (h *OrderActionsHandler) orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return uint(id), true
}

func isGatewayMethod(method string) bool {
	return method == domain.MethodHostedCheckout || method == domain.MethodHostedSession
}

// Capabilities answers which actions the order currently offers. When no
// action applies (or the order was not paid through this gateway) it answers
// 204 so the caller renders no action panel at all.
func (h *OrderActionsHandler) Capabilities(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if !isGatewayMethod(order.PaymentMethod) {
		c.Status(http.StatusNoContent)
		return
	}
	caps := h.orderSvc.Capabilities(order)
	if !caps.Show() {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, caps)
}

func (h *OrderActionsHandler) Capture(c *gin.Context) {
	h.action(c, h.orderSvc.Capture)
}

func (h *OrderActionsHandler) Void(c *gin.Context) {
	h.action(c, h.orderSvc.Void)
}

func (h *OrderActionsHandler) Refund(c *gin.Context) {
	h.action(c, h.orderSvc.Refund)
}

func (h *OrderActionsHandler) action(c *gin.Context, run func(ctx context.Context, orderID uint) (*models.OrderTransaction, error)) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	rec, err := run(c.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrActionNotAllowed:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrTransactionNotFound:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": rec})
}
