package models

import "time"

// OrderState is one row of the order-status registry. Installed rows are
// never mutated afterwards; orders reference them by id.
type OrderState struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	Paid      bool      `json:"paid"`
	Logable   bool      `json:"logable"`
	SendEmail bool      `json:"send_email"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderState) TableName() string {
	return "order_states"
}
