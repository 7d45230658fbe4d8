package repository

import (
	"mpgspay/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *models.Order) error {
	return r.db.Create(o).Error
}

// GetByID loads an order with its transactions in insertion order. The
// transaction matcher relies on that ordering.
func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_transactions.id ASC")
	}).First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByReference(ref string) (*models.Order, error) {
	var o models.Order
	err := r.db.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_transactions.id ASC")
	}).Where("reference = ?", ref).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) UpdateState(orderID, stateID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("state_id", stateID).Error
}

func (r *OrderRepository) AddTransaction(t *models.OrderTransaction) error {
	return r.db.Create(t).Error
}
