package models

import "time"

// OrderTransaction records one gateway transaction against an order.
// CorrelationID has the form "{TYPE}-{gatewayId}", e.g. "CAPTURE-abc123".
type OrderTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	CorrelationID string    `gorm:"size:255;not null;index" json:"correlation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `gorm:"size:3" json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func (OrderTransaction) TableName() string {
	return "order_transactions"
}
