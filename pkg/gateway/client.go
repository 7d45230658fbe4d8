package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultAPIVersion = "50"

// Client talks to the MPGS REST API for one merchant. Callers resolve the
// endpoint and credential set for the active mode before constructing it.
type Client struct {
	Endpoint    string
	MerchantID  string
	APIPassword string
	APIVersion  string
	client      *http.Client
}

func NewClient(endpoint, merchantID, apiPassword string) *Client {
	return &Client{
		Endpoint:    endpoint,
		MerchantID:  merchantID,
		APIPassword: apiPassword,
		APIVersion:  defaultAPIVersion,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) base() string {
	if strings.Contains(c.Endpoint, "://") {
		return c.Endpoint
	}
	return "https://" + c.Endpoint
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/api/rest/version/%s/merchant/%s%s",
		c.base(), c.APIVersion, c.MerchantID, path)
}

// do sends one authenticated request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("merchant."+c.MerchantID, c.APIPassword)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Printf("[MPGS] %s %s status=%d body=%s", method, path, resp.StatusCode, string(respBody))
		return fmt.Errorf("mpgs: %s %s: %d %s", method, path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return err
		}
	}
	return nil
}

type amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func formatAmount(cents int64, currency string) amount {
	return amount{
		Amount:   fmt.Sprintf("%d.%02d", cents/100, cents%100),
		Currency: currency,
	}
}

// TransactionResult is the slice of a gateway transaction response the
// service layer acts on.
type TransactionResult struct {
	Result      string `json:"result"`
	Transaction struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"transaction"`
	Order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"order"`
	Response struct {
		GatewayCode string `json:"gatewayCode"`
	} `json:"response"`
}

func (r *TransactionResult) check() error {
	if r.Result != "SUCCESS" {
		return fmt.Errorf("mpgs: operation failed: result=%s gatewayCode=%s", r.Result, r.Response.GatewayCode)
	}
	return nil
}

type CheckoutSessionRequest struct {
	OrderRef    string
	AmountCents int64
	Currency    string
	Description string
	ReturnURL   string
	Theme       string
	ShowBilling string
	ShowEmail   string
}

type CheckoutSession struct {
	SessionID        string
	SuccessIndicator string
}

// CreateCheckoutSession opens a Hosted Checkout session for an order.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	amt := formatAmount(req.AmountCents, req.Currency)
	payload := map[string]interface{}{
		"apiOperation": "CREATE_CHECKOUT_SESSION",
		"order": map[string]interface{}{
			"id":          req.OrderRef,
			"amount":      amt.Amount,
			"currency":    amt.Currency,
			"description": req.Description,
		},
		"interaction": map[string]interface{}{
			"operation": "AUTHORIZE",
			"returnUrl": req.ReturnURL,
			"displayControl": map[string]string{
				"billingAddress": req.ShowBilling,
				"customerEmail":  req.ShowEmail,
			},
		},
	}
	if req.Theme != "" {
		payload["interaction"].(map[string]interface{})["theme"] = req.Theme
	}

	var out struct {
		Result  string `json:"result"`
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
		SuccessIndicator string `json:"successIndicator"`
	}
	if err := c.do(ctx, http.MethodPost, "/session", payload, &out); err != nil {
		return nil, err
	}
	if out.Result != "SUCCESS" {
		return nil, fmt.Errorf("mpgs: session create failed: result=%s", out.Result)
	}
	log.Printf("[MPGS] checkout session created order=%s session=%s", req.OrderRef, out.Session.ID)
	return &CheckoutSession{SessionID: out.Session.ID, SuccessIndicator: out.SuccessIndicator}, nil
}

// OrderDetails is the gateway-side view of an order.
type OrderDetails struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

func (c *Client) RetrieveOrder(ctx context.Context, orderRef string) (*OrderDetails, error) {
	var out OrderDetails
	if err := c.do(ctx, http.MethodGet, "/order/"+orderRef, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Capture captures a previously authorized amount. txnRef is the new
// merchant-side transaction reference; retries with the same reference are
// idempotent at the gateway.
func (c *Client) Capture(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*TransactionResult, error) {
	payload := map[string]interface{}{
		"apiOperation": "CAPTURE",
		"transaction":  formatAmount(amountCents, currency),
	}
	return c.transact(ctx, orderRef, txnRef, payload)
}

// Void cancels the authorization identified by targetTxnID.
func (c *Client) Void(ctx context.Context, orderRef, txnRef, targetTxnID string) (*TransactionResult, error) {
	payload := map[string]interface{}{
		"apiOperation": "VOID",
		"transaction": map[string]string{
			"targetTransactionId": targetTxnID,
		},
	}
	return c.transact(ctx, orderRef, txnRef, payload)
}

// Refund returns a captured amount to the customer.
func (c *Client) Refund(ctx context.Context, orderRef, txnRef string, amountCents int64, currency string) (*TransactionResult, error) {
	payload := map[string]interface{}{
		"apiOperation": "REFUND",
		"transaction":  formatAmount(amountCents, currency),
	}
	return c.transact(ctx, orderRef, txnRef, payload)
}

func (c *Client) transact(ctx context.Context, orderRef, txnRef string, payload interface{}) (*TransactionResult, error) {
	var out TransactionResult
	path := fmt.Sprintf("/order/%s/transaction/%s", orderRef, txnRef)
	if err := c.do(ctx, http.MethodPut, path, payload, &out); err != nil {
		return nil, err
	}
	if err := out.check(); err != nil {
		return nil, err
	}
	return &out, nil
}
