package service

import (
	"errors"
	"fmt"
	"strings"

	"mpgspay/internal/domain"
	"mpgspay/internal/models"
)

// ErrMalformedCorrelationID marks a transaction record whose correlation id
// carries no type prefix. That is a data-integrity failure, never coerced.
var ErrMalformedCorrelationID = errors.New("malformed correlation id")

// FindTransaction scans an order's transactions in insertion order and
// returns the first one whose correlation id contains "{type}-",
// case-insensitively. A nil result means no such transaction exists yet,
// which is a normal state, not an error.
func FindTransaction(order *models.Order, txnType string) *models.OrderTransaction {
	needle := strings.ToLower(txnType) + "-"
	for i := range order.Transactions {
		if strings.Contains(strings.ToLower(order.Transactions[i].CorrelationID), needle) {
			return &order.Transactions[i]
		}
	}
	return nil
}

// DecodeGatewayID splits the correlation id on the first delimiter only and
// returns the gateway-assigned id verbatim.
func DecodeGatewayID(t *models.OrderTransaction) (string, error) {
	parts := strings.SplitN(t.CorrelationID, "-", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedCorrelationID, t.CorrelationID)
	}
	return parts[1], nil
}

// EncodeCorrelationID is the write-side inverse of DecodeGatewayID.
func EncodeCorrelationID(txnType, gatewayID string) string {
	return txnType + "-" + gatewayID
}

// NormalizeTxnType maps the gateway's native transaction types onto the
// vocabulary used as correlation-id prefixes: notifications report an
// authorization as AUTHORIZATION, a combined auth-and-capture as PAYMENT and
// an auth reversal as VOID_AUTHORIZATION, while records are matched by the
// local names. Unknown types pass through upper-cased.
func NormalizeTxnType(gatewayType string) string {
	switch t := strings.ToUpper(gatewayType); t {
	case "AUTHORIZATION":
		return domain.TxnAuthorize
	case "PAYMENT":
		return domain.TxnCapture
	case "VOID_AUTHORIZATION":
		return domain.TxnVoid
	default:
		return t
	}
}
