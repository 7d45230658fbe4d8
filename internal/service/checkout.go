package service

import (
	"fmt"

	"mpgspay/internal/domain"
	"mpgspay/internal/gateway"
)

// CartSnapshot is the current-cart view the assembler renders against. It is
// read from the host's cart collaborator, never owned here.
type CartSnapshot struct {
	OrderRef    string `json:"order_ref"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// CheckoutURLs are the submission targets supplied by the routing layer.
type CheckoutURLs struct {
	Action string `json:"action_url"`
	Cancel string `json:"cancel_url"`
}

// CheckoutForm is the Hosted Checkout submission payload.
type CheckoutForm struct {
	ActionURL string `json:"action_url"`
	CancelURL string `json:"cancel_url"`
}

type PaymentOption struct {
	Method         string        `json:"method"`
	CallToAction   string        `json:"call_to_action"`
	AdditionalInfo string        `json:"additional_info,omitempty"`
	Form           *CheckoutForm `json:"form,omitempty"`
}

// AssemblePaymentOptions builds the ordered checkout option list. An inactive
// module yields an empty list unconditionally; otherwise Hosted Checkout is
// evaluated before Hosted Session, so the order is deterministic.
func AssemblePaymentOptions(cfg *gateway.Config, lang string, urls CheckoutURLs) []PaymentOption {
	options := make([]PaymentOption, 0, 2)
	if !cfg.Active {
		return options
	}

	if cfg.HostedCheckout.Active {
		options = append(options, PaymentOption{
			Method:         domain.MethodHostedCheckout,
			CallToAction:   cfg.HostedCheckout.Title.Resolve(lang),
			AdditionalInfo: hostedCheckoutInfo(cfg),
			Form: &CheckoutForm{
				ActionURL: urls.Action,
				CancelURL: urls.Cancel,
			},
		})
	}

	if cfg.HostedSession.Active {
		options = append(options, PaymentOption{
			Method:       domain.MethodHostedSession,
			CallToAction: cfg.HostedSession.Title.Resolve(lang),
		})
	}

	return options
}

func hostedCheckoutInfo(cfg *gateway.Config) string {
	if cfg.HostedCheckout.Theme != "" {
		return fmt.Sprintf("You will be redirected to the payment page (theme: %s).", cfg.HostedCheckout.Theme)
	}
	return "You will be redirected to the payment page."
}
