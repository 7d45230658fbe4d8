package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mpgspay/internal/domain"
	"mpgspay/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeWebhookSettings map[string]string

func (f fakeWebhookSettings) Get(key string) (string, error) { return f[key], nil }

func (f fakeWebhookSettings) GetLangMap(key string) (map[string]string, error) { return nil, nil }

type fakeWebhookOrders struct {
	order  *models.Order
	added  []*models.OrderTransaction
	states []uint
}

func (f *fakeWebhookOrders) GetByReference(ref string) (*models.Order, error) {
	if f.order == nil || f.order.Reference != ref {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeWebhookOrders) AddTransaction(t *models.OrderTransaction) error {
	f.added = append(f.added, t)
	return nil
}

func (f *fakeWebhookOrders) UpdateState(orderID, stateID uint) error {
	f.states = append(f.states, stateID)
	return nil
}

type fakeWebhookEvents struct {
	seen      map[string]*models.WebhookEvent
	created   []*models.WebhookEvent
	processed []uint
}

func (f *fakeWebhookEvents) GetByEventID(eventID string) (*models.WebhookEvent, error) {
	return f.seen[eventID], nil
}

func (f *fakeWebhookEvents) Create(e *models.WebhookEvent) error {
	e.ID = uint(len(f.created) + 1)
	f.created = append(f.created, e)
	return nil
}

func (f *fakeWebhookEvents) MarkProcessed(id uint) error {
	f.processed = append(f.processed, id)
	return nil
}

func webhookSettings() fakeWebhookSettings {
	return fakeWebhookSettings{
		domain.KeyMode:                 "live",
		domain.KeyWebhookSecret:        "topsecret",
		domain.KeyStateAuthorized:      "3",
		domain.KeyStatePaymentAccepted: "4",
	}
}

func postNotification(h *WebhookHandler, body, secret string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/webhook/mpgs", strings.NewReader(body))
	if secret != "" {
		c.Request.Header.Set("X-Notification-Secret", secret)
	}
	h.Handle(c)
	return w
}

const authorizedNotification = `{
	"order": {"id": "ord-7", "status": "AUTHORIZED"},
	"transaction": {"id": "gw-123", "type": "AUTHORIZATION"}
}`

func TestWebhookRecordsAuthorizationUnderLocalTypeName(t *testing.T) {
	orders := &fakeWebhookOrders{order: &models.Order{ID: 7, Reference: "ord-7", AmountCents: 1999, Currency: "EUR", StateID: 2}}
	events := &fakeWebhookEvents{seen: map[string]*models.WebhookEvent{}}
	h := NewWebhookHandler(webhookSettings(), orders, events)

	w := postNotification(h, authorizedNotification, "topsecret")
	assert.Equal(t, http.StatusOK, w.Code)

	// The gateway-native AUTHORIZATION type is translated so the capture
	// and void lookups find it later.
	require.Len(t, orders.added, 1)
	assert.Equal(t, "AUTHORIZE-gw-123", orders.added[0].CorrelationID)
	assert.Equal(t, []uint{3}, orders.states)

	require.Len(t, events.created, 1)
	assert.Equal(t, domain.TxnAuthorize, events.created[0].TxnType)
	assert.Equal(t, []uint{1}, events.processed)
}

func TestWebhookDuplicateDeliveryAcknowledgedOnce(t *testing.T) {
	orders := &fakeWebhookOrders{order: &models.Order{ID: 7, Reference: "ord-7", StateID: 2}}
	events := &fakeWebhookEvents{seen: map[string]*models.WebhookEvent{
		"ord-7:AUTHORIZE:gw-123": {ID: 1},
	}}
	h := NewWebhookHandler(webhookSettings(), orders, events)

	w := postNotification(h, authorizedNotification, "topsecret")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, events.created)
	assert.Empty(t, orders.added)
	assert.Empty(t, orders.states)
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	events := &fakeWebhookEvents{seen: map[string]*models.WebhookEvent{}}
	h := NewWebhookHandler(webhookSettings(), &fakeWebhookOrders{}, events)

	w := postNotification(h, authorizedNotification, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, events.created)
}

func TestWebhookAcknowledgesUnknownOrder(t *testing.T) {
	events := &fakeWebhookEvents{seen: map[string]*models.WebhookEvent{}}
	orders := &fakeWebhookOrders{}
	h := NewWebhookHandler(webhookSettings(), orders, events)

	w := postNotification(h, authorizedNotification, "topsecret")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, orders.added)
}
