package service

import (
	"context"
	"errors"
	"log"

	"mpgspay/internal/domain"
	"mpgspay/internal/gateway"
	"mpgspay/internal/models"
	mpgs "mpgspay/pkg/gateway"

	"github.com/google/uuid"
)

var (
	// ErrActionNotAllowed means the order's current status does not offer the
	// requested action.
	ErrActionNotAllowed = errors.New("action not allowed for current order status")
	// ErrTransactionNotFound means the order has no gateway transaction of the
	// type the action targets.
	ErrTransactionNotFound = errors.New("no matching gateway transaction on order")
)

// GatewayClient is the remote-operation surface the order service needs.
// *mpgs.Client satisfies it.
type GatewayClient interface {
	CreateCheckoutSession(ctx context.Context, req mpgs.CheckoutSessionRequest) (*mpgs.CheckoutSession, error)
	Capture(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*mpgs.TransactionResult, error)
	Void(ctx context.Context, orderRef, txnRef, targetTxnID string) (*mpgs.TransactionResult, error)
	Refund(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*mpgs.TransactionResult, error)
}

// OrderStore is the slice of the order repository the service needs.
// *repository.OrderRepository satisfies it.
type OrderStore interface {
	GetByID(id uint) (*models.Order, error)
	GetByReference(ref string) (*models.Order, error)
	UpdateState(orderID, stateID uint) error
	AddTransaction(t *models.OrderTransaction) error
}

// OrderService orchestrates gateway actions against local orders. Settings
// are re-read on every call; there is no cached configuration.
type OrderService struct {
	orders    OrderStore
	settings  gateway.SettingStore
	newClient func(cfg *gateway.Config) (GatewayClient, error)
}

func NewOrderService(orders OrderStore, settings gateway.SettingStore) *OrderService {
	return &OrderService{
		orders:   orders,
		settings: settings,
		newClient: func(cfg *gateway.Config) (GatewayClient, error) {
			endpoint, err := cfg.ResolveEndpoint()
			if err != nil {
				return nil, err
			}
			creds := cfg.Credentials()
			return mpgs.NewClient(endpoint, creds.MerchantID, creds.APIPassword), nil
		},
	}
}

// Capabilities answers which actions the order currently offers.
func (s *OrderService) Capabilities(order *models.Order) Capabilities {
	return OrderCapabilities(order.StateID, LoadStatusRegistry(s.settings))
}

func (s *OrderService) client() (GatewayClient, *gateway.Config, error) {
	cfg, err := gateway.Load(s.settings)
	if err != nil {
		return nil, nil, err
	}
	cli, err := s.newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cli, cfg, nil
}

// CreateCheckoutSession opens a Hosted Checkout session for a pending order
// and moves it to the payment-waiting state.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, orderRef, returnURL string) (*mpgs.CheckoutSession, error) {
	order, err := s.orders.GetByReference(orderRef)
	if err != nil {
		return nil, err
	}
	cli, cfg, err := s.client()
	if err != nil {
		return nil, err
	}
	session, err := cli.CreateCheckoutSession(ctx, mpgs.CheckoutSessionRequest{
		OrderRef:    order.Reference,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		ReturnURL:   returnURL,
		Theme:       cfg.HostedCheckout.Theme,
		ShowBilling: cfg.HostedCheckout.ShowBilling,
		ShowEmail:   cfg.HostedCheckout.ShowEmail,
	})
	if err != nil {
		return nil, err
	}
	reg := LoadStatusRegistry(s.settings)
	if reg.PaymentWaiting != 0 {
		if err := s.orders.UpdateState(order.ID, reg.PaymentWaiting); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// Capture executes a capture against the order's authorization.
func (s *OrderService) Capture(ctx context.Context, orderID uint) (*models.OrderTransaction, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	reg := LoadStatusRegistry(s.settings)
	if !OrderCapabilities(order.StateID, reg).CanCapture {
		return nil, ErrActionNotAllowed
	}
	auth := FindTransaction(order, domain.TxnAuthorize)
	if auth == nil {
		return nil, ErrTransactionNotFound
	}
	if _, err := DecodeGatewayID(auth); err != nil {
		return nil, err
	}

	cli, _, err := s.client()
	if err != nil {
		return nil, err
	}
	res, err := cli.Capture(ctx, order.Reference, uuid.NewString(), order.AmountCents, order.Currency)
	if err != nil {
		return nil, err
	}
	return s.record(order, domain.TxnCapture, res.Transaction.ID, reg.PaymentAccepted)
}

// Void cancels the order's authorization.
func (s *OrderService) Void(ctx context.Context, orderID uint) (*models.OrderTransaction, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	reg := LoadStatusRegistry(s.settings)
	if !OrderCapabilities(order.StateID, reg).CanVoid {
		return nil, ErrActionNotAllowed
	}
	auth := FindTransaction(order, domain.TxnAuthorize)
	if auth == nil {
		return nil, ErrTransactionNotFound
	}
	targetID, err := DecodeGatewayID(auth)
	if err != nil {
		return nil, err
	}

	cli, _, err := s.client()
	if err != nil {
		return nil, err
	}
	res, err := cli.Void(ctx, order.Reference, uuid.NewString(), targetID)
	if err != nil {
		return nil, err
	}
	return s.record(order, domain.TxnVoid, res.Transaction.ID, reg.Canceled)
}

// Refund returns the captured amount to the customer.
func (s *OrderService) Refund(ctx context.Context, orderID uint) (*models.OrderTransaction, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	reg := LoadStatusRegistry(s.settings)
	if !OrderCapabilities(order.StateID, reg).CanRefund {
		return nil, ErrActionNotAllowed
	}
	capture := FindTransaction(order, domain.TxnCapture)
	if capture == nil {
		return nil, ErrTransactionNotFound
	}
	if _, err := DecodeGatewayID(capture); err != nil {
		return nil, err
	}

	cli, _, err := s.client()
	if err != nil {
		return nil, err
	}
	res, err := cli.Refund(ctx, order.Reference, uuid.NewString(), order.AmountCents, order.Currency)
	if err != nil {
		return nil, err
	}
	return s.record(order, domain.TxnRefund, res.Transaction.ID, reg.Refunded)
}

// record appends the resulting transaction and moves the order to the next
// state when one is installed.
func (s *OrderService) record(order *models.Order, txnType, gatewayTxnID string, nextStateID uint) (*models.OrderTransaction, error) {
	rec := &models.OrderTransaction{
		OrderID:       order.ID,
		CorrelationID: EncodeCorrelationID(txnType, gatewayTxnID),
		AmountCents:   order.AmountCents,
		Currency:      order.Currency,
	}
	if err := s.orders.AddTransaction(rec); err != nil {
		return nil, err
	}
	if nextStateID != 0 {
		if err := s.orders.UpdateState(order.ID, nextStateID); err != nil {
			return nil, err
		}
	}
	log.Printf("[MPGS] order %s: %s recorded (txn %s)", order.Reference, txnType, gatewayTxnID)
	return rec, nil
}
