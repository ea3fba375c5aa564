package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created: TotalAmount is computed at checkout
// and never recalculated, even if catalog prices change later.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	// PriceAtPurchase is the product price frozen at order time.
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price_at_purchase"`
	Quantity        int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Product         Product         `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
	CreatedAt       time.Time       `json:"created_at"`
}
