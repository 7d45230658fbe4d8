package service

import (
	"testing"

	"mpgspay/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestOrderCapabilities(t *testing.T) {
	reg := StatusRegistry{PaymentWaiting: 10, Authorized: 11, PaymentAccepted: 2}

	tests := []struct {
		name    string
		stateID uint
		want    Capabilities
	}{
		{
			name:    "authorized offers void and capture",
			stateID: 11,
			want:    Capabilities{IsAuthorized: true, CanVoid: true, CanCapture: true},
		},
		{
			name:    "payment accepted offers refund only",
			stateID: 2,
			want:    Capabilities{CanRefund: true},
		},
		{
			name:    "payment waiting offers nothing",
			stateID: 10,
			want:    Capabilities{},
		},
		{
			name:    "unknown state offers nothing",
			stateID: 99,
			want:    Capabilities{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderCapabilities(tt.stateID, reg))
		})
	}
}

func TestOrderCapabilitiesMissingRegistry(t *testing.T) {
	// Uninstalled state ids never grant a capability, even for state id 0.
	caps := OrderCapabilities(0, StatusRegistry{})
	assert.Equal(t, Capabilities{}, caps)
}

func TestCapabilitiesShow(t *testing.T) {
	assert.False(t, Capabilities{}.Show())
	assert.True(t, Capabilities{CanRefund: true}.Show())
	assert.True(t, Capabilities{CanVoid: true, CanCapture: true}.Show())
}

type fakeRegistryStore map[string]string

func (f fakeRegistryStore) Get(key string) (string, error) {
	return f[key], nil
}

func TestLoadStatusRegistry(t *testing.T) {
	store := fakeRegistryStore{
		domain.KeyStatePaymentWaiting:  "10",
		domain.KeyStateAuthorized:      "11",
		domain.KeyStatePaymentAccepted: "2",
		domain.KeyStateCanceled:        "not-a-number",
	}
	reg := LoadStatusRegistry(store)
	assert.Equal(t, uint(10), reg.PaymentWaiting)
	assert.Equal(t, uint(11), reg.Authorized)
	assert.Equal(t, uint(2), reg.PaymentAccepted)
	// Unparseable and absent ids load as zero.
	assert.Equal(t, uint(0), reg.Canceled)
	assert.Equal(t, uint(0), reg.Refunded)
}
