package models

import "time"

// WebhookEvent logs one gateway notification delivery. EventID is unique so
// duplicate deliveries are acknowledged without being processed twice.
type WebhookEvent struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EventID      string     `gorm:"size:255;uniqueIndex;not null" json:"event_id"`
	OrderRef     string     `gorm:"size:64;index" json:"order_ref"`
	TxnType      string     `gorm:"size:20" json:"txn_type"`
	GatewayTxnID string     `gorm:"size:255" json:"gateway_txn_id"`
	OrderStatus  string     `gorm:"size:40" json:"order_status"`
	Payload      string     `gorm:"type:text" json:"payload"`
	ProcessedAt  *time.Time `json:"processed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }
