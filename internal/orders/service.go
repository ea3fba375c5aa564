package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fadyamr909/EcommApp/internal/cart"
	"github.com/fadyamr909/EcommApp/internal/models"
)

var (
	ErrEmptyCart     = errors.New("cart items cannot be empty")
	ErrOrderNotFound = errors.New("order not found")
)

// taxRate is applied uniformly to the cart subtotal at checkout.
var taxRate = decimal.RequireFromString("0.10")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create persists an order and its line items in one transaction. Each
// line item freezes the price the cart resolved at listing time; the
// catalog's live price at commit time is deliberately not re-read. On
// any failure nothing is persisted. The cart itself is never mutated
// here; clearing it after commit is the caller's job.
func (s *Service) Create(ctx context.Context, cartItems []cart.Item) (*models.Order, error) {
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range cartItems {
		subtotal = subtotal.Add(item.Subtotal())
	}

	tax := subtotal.Mul(taxRate)
	totalAmount := subtotal.Add(tax).Round(2)

	order := models.Order{
		TotalAmount: totalAmount,
		CreatedAt:   time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range cartItems {
			orderItem := models.OrderItem{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				PriceAtPurchase: item.Price,
				Quantity:        item.Quantity,
			}

			if err := tx.Omit("Product").Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item for product %d: %w", item.ProductID, err)
			}

			order.Items = append(order.Items, orderItem)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Get returns an order with its items and their products eagerly
// loaded, or ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// List returns all orders with their items, newest first.
func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order

	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
