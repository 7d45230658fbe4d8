package service

import (
	"context"
	"testing"

	"mpgspay/internal/domain"
	"mpgspay/internal/gateway"
	"mpgspay/internal/models"
	mpgs "mpgspay/pkg/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderStore struct {
	order  *models.Order
	added  []*models.OrderTransaction
	states []uint
}

func (f *fakeOrderStore) GetByID(id uint) (*models.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeOrderStore) GetByReference(ref string) (*models.Order, error) {
	if f.order == nil || f.order.Reference != ref {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeOrderStore) UpdateState(orderID, stateID uint) error {
	f.states = append(f.states, stateID)
	return nil
}

func (f *fakeOrderStore) AddTransaction(t *models.OrderTransaction) error {
	f.added = append(f.added, t)
	return nil
}

type fakeSettings struct{ values map[string]string }

func (f *fakeSettings) Get(key string) (string, error) { return f.values[key], nil }

func (f *fakeSettings) GetLangMap(key string) (map[string]string, error) { return nil, nil }

type fakeGateway struct {
	calls       []string
	targetTxnID string
	amountCents int64
	currency    string
	orderRef    string
	err         error
}

func (f *fakeGateway) result(id string) *mpgs.TransactionResult {
	res := &mpgs.TransactionResult{Result: "SUCCESS"}
	res.Transaction.ID = id
	return res
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req mpgs.CheckoutSessionRequest) (*mpgs.CheckoutSession, error) {
	f.calls = append(f.calls, "session")
	f.orderRef = req.OrderRef
	if f.err != nil {
		return nil, f.err
	}
	return &mpgs.CheckoutSession{SessionID: "SESSION0001", SuccessIndicator: "ind"}, nil
}

func (f *fakeGateway) Capture(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*mpgs.TransactionResult, error) {
	f.calls = append(f.calls, "capture")
	f.orderRef, f.amountCents, f.currency = orderRef, amountCents, currency
	if f.err != nil {
		return nil, f.err
	}
	return f.result("gw-cap-1"), nil
}

func (f *fakeGateway) Void(ctx context.Context, orderRef, txnRef, targetTxnID string) (*mpgs.TransactionResult, error) {
	f.calls = append(f.calls, "void")
	f.orderRef, f.targetTxnID = orderRef, targetTxnID
	if f.err != nil {
		return nil, f.err
	}
	return f.result("gw-void-1"), nil
}

func (f *fakeGateway) Refund(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*mpgs.TransactionResult, error) {
	f.calls = append(f.calls, "refund")
	f.orderRef, f.amountCents, f.currency = orderRef, amountCents, currency
	if f.err != nil {
		return nil, f.err
	}
	return f.result("gw-ref-1"), nil
}

func stateSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{
		domain.KeyStatePaymentWaiting:  "2",
		domain.KeyStateAuthorized:      "3",
		domain.KeyStatePaymentAccepted: "4",
		domain.KeyStateCanceled:        "5",
		domain.KeyStateRefunded:        "6",
	}}
}

func newFakeOrderService(order *models.Order, cli *fakeGateway) (*OrderService, *fakeOrderStore) {
	store := &fakeOrderStore{order: order}
	svc := &OrderService{
		orders:   store,
		settings: stateSettings(),
		newClient: func(cfg *gateway.Config) (GatewayClient, error) {
			return cli, nil
		},
	}
	return svc, store
}

func authorizedOrder(txns ...string) *models.Order {
	o := &models.Order{ID: 7, Reference: "ord-7", AmountCents: 1999, Currency: "EUR", StateID: 3}
	for i, id := range txns {
		o.Transactions = append(o.Transactions, models.OrderTransaction{
			ID:            uint(i + 1),
			OrderID:       o.ID,
			CorrelationID: id,
		})
	}
	return o
}

func TestCaptureRecordsTransactionAndAdvancesState(t *testing.T) {
	cli := &fakeGateway{}
	svc, store := newFakeOrderService(authorizedOrder("AUTHORIZE-gw-auth-1"), cli)

	rec, err := svc.Capture(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"capture"}, cli.calls)
	assert.Equal(t, "ord-7", cli.orderRef)
	assert.Equal(t, int64(1999), cli.amountCents)
	assert.Equal(t, "EUR", cli.currency)

	require.Len(t, store.added, 1)
	assert.Equal(t, "CAPTURE-gw-cap-1", rec.CorrelationID)
	assert.Equal(t, []uint{4}, store.states)
}

func TestCaptureNotAllowedOutsideAuthorizedState(t *testing.T) {
	cli := &fakeGateway{}
	order := authorizedOrder("AUTHORIZE-gw-auth-1")
	order.StateID = 4
	svc, store := newFakeOrderService(order, cli)

	_, err := svc.Capture(context.Background(), 7)
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, cli.calls)
	assert.Empty(t, store.added)
}

func TestCaptureWithoutAuthorizationRecord(t *testing.T) {
	cli := &fakeGateway{}
	svc, _ := newFakeOrderService(authorizedOrder(), cli)

	_, err := svc.Capture(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.Empty(t, cli.calls)
}

func TestVoidTargetsDecodedGatewayID(t *testing.T) {
	cli := &fakeGateway{}
	svc, store := newFakeOrderService(authorizedOrder("AUTHORIZE-gw-abc-1"), cli)

	rec, err := svc.Void(context.Background(), 7)
	require.NoError(t, err)

	// The gateway id keeps its own dashes intact.
	assert.Equal(t, "gw-abc-1", cli.targetTxnID)
	assert.Equal(t, "VOID-gw-void-1", rec.CorrelationID)
	assert.Equal(t, []uint{5}, store.states)
}

func TestRefundRequiresCaptureRecord(t *testing.T) {
	cli := &fakeGateway{}
	order := authorizedOrder("AUTHORIZE-gw-auth-1")
	order.StateID = 4
	svc, _ := newFakeOrderService(order, cli)

	_, err := svc.Refund(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.Empty(t, cli.calls)
}

func TestRefundMovesOrderToRefunded(t *testing.T) {
	cli := &fakeGateway{}
	order := authorizedOrder("AUTHORIZE-gw-auth-1", "CAPTURE-gw-cap-9")
	order.StateID = 4
	svc, store := newFakeOrderService(order, cli)

	rec, err := svc.Refund(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "REFUND-gw-ref-1", rec.CorrelationID)
	assert.Equal(t, []uint{6}, store.states)
}

func TestCreateCheckoutSessionMovesOrderToPaymentWaiting(t *testing.T) {
	cli := &fakeGateway{}
	order := authorizedOrder()
	order.StateID = 1
	svc, store := newFakeOrderService(order, cli)

	session, err := svc.CreateCheckoutSession(context.Background(), "ord-7", "https://shop.example/return")
	require.NoError(t, err)
	assert.Equal(t, "SESSION0001", session.SessionID)
	assert.Equal(t, "ord-7", cli.orderRef)
	assert.Equal(t, []uint{2}, store.states)
}
