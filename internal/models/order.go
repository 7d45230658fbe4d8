package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Reference     string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	AmountCents   int64          `gorm:"not null" json:"amount_cents"`
	Currency      string         `gorm:"size:3;default:'USD'" json:"currency"`
	PaymentMethod string         `gorm:"size:50;index" json:"payment_method"`
	StateID       uint           `gorm:"index" json:"state_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Transactions []OrderTransaction `gorm:"foreignKey:OrderID" json:"transactions"`
}

func (Order) TableName() string {
	return "orders"
}
