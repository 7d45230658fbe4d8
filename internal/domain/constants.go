package domain

// Gateway transaction types, used as the correlation-id prefix.
const (
	TxnAuthorize = "AUTHORIZE"
	TxnCapture   = "CAPTURE"
	TxnVoid      = "VOID"
	TxnRefund    = "REFUND"
)

// Checkout method keys.
const (
	MethodHostedCheckout = "mastercard_hc"
	MethodHostedSession  = "mastercard_hs"
)

// Billing/email display policies for Hosted Checkout.
const (
	DisplayHide      = "HIDE"
	DisplayMandatory = "MANDATORY"
	DisplayOptional  = "OPTIONAL"
)

// APIVersion is the MPGS REST API version this module is pinned to.
const APIVersion = "50"

// APIEndpoints is the allow-list of preset gateway hosts.
var APIEndpoints = []string{
	"eu-gateway.mastercard.com",
	"ap-gateway.mastercard.com",
	"na-gateway.mastercard.com",
	"mtf.gateway.mastercard.com",
}

// Setting keys. Credential keys get a "test_" prefix for the test variant.
const (
	KeyActive        = "mpgs_active"
	KeyMode          = "mpgs_mode"
	KeyAPIURL        = "mpgs_api_url"
	KeyAPIURLCustom  = "mpgs_api_url_custom"
	KeyMerchantID    = "mpgs_merchant_id"
	KeyAPIPassword   = "mpgs_api_password"
	KeyWebhookSecret = "mpgs_webhook_secret"

	KeyHCActive      = "mpgs_hc_active"
	KeyHCTitle       = "mpgs_hc_title"
	KeyHCTheme       = "mpgs_hc_theme"
	KeyHCShowBilling = "mpgs_hc_show_billing"
	KeyHCShowEmail   = "mpgs_hc_show_email"

	KeyHSActive = "mpgs_hs_active"
	KeyHSTitle  = "mpgs_hs_title"
)

const TestPrefix = "test_"

// Setting keys holding the installed order-state ids.
const (
	KeyStatePaymentWaiting  = "MPGS_OS_PAYMENT_WAITING"
	KeyStateAuthorized      = "MPGS_OS_AUTHORIZED"
	KeyStatePaymentAccepted = "OS_PAYMENT_ACCEPTED"
	KeyStateCanceled        = "OS_CANCELED"
	KeyStateRefunded        = "OS_REFUNDED"
)

// Default method titles used when no per-language title is configured.
const (
	DefaultHCTitle = "MasterCard Hosted Checkout"
	DefaultHSTitle = "MasterCard Hosted Session"
)

const RoleAdmin = "ADMIN"
