package service

import (
	"strconv"

	"mpgspay/internal/domain"
)

// StatusRegistry holds the installed order-state ids the capability rules
// compare against. A zero id stands for "not installed".
type StatusRegistry struct {
	PaymentWaiting  uint
	Authorized      uint
	PaymentAccepted uint
	Canceled        uint
	Refunded        uint
}

type Capabilities struct {
	IsAuthorized bool `json:"is_authorized"`
	CanVoid      bool `json:"can_void"`
	CanCapture   bool `json:"can_capture"`
	CanRefund    bool `json:"can_refund"`
}

// Show reports whether an action panel should be rendered at all. All-false
// capabilities mean render nothing, not an empty panel.
func (c Capabilities) Show() bool {
	return c.CanVoid || c.CanCapture || c.CanRefund
}

// OrderCapabilities derives the offerable actions from the order's current
// state id alone. It never fails: unknown or missing state ids yield
// all-false capabilities.
func OrderCapabilities(stateID uint, reg StatusRegistry) Capabilities {
	isAuthorized := reg.Authorized != 0 && stateID == reg.Authorized
	return Capabilities{
		IsAuthorized: isAuthorized,
		CanVoid:      isAuthorized,
		CanCapture:   isAuthorized,
		CanRefund:    reg.PaymentAccepted != 0 && stateID == reg.PaymentAccepted,
	}
}

type registryStore interface {
	Get(key string) (string, error)
}

// LoadStatusRegistry reads the installed state ids from the settings store.
// Absent or unparseable values load as zero and simply disable the
// corresponding capabilities.
func LoadStatusRegistry(store registryStore) StatusRegistry {
	load := func(key string) uint {
		v, err := store.Get(key)
		if err != nil {
			return 0
		}
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0
		}
		return uint(id)
	}
	return StatusRegistry{
		PaymentWaiting:  load(domain.KeyStatePaymentWaiting),
		Authorized:      load(domain.KeyStateAuthorized),
		PaymentAccepted: load(domain.KeyStatePaymentAccepted),
		Canceled:        load(domain.KeyStateCanceled),
		Refunded:        load(domain.KeyStateRefunded),
	}
}
