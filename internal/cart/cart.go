package cart

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fadyamr909/EcommApp/internal/models"
)

// sessionKey is the single key under which the whole cart mapping is
// serialized into the session store.
const sessionKey = "cart"

// Store is the session-scoped key-value store the cart persists into.
// It is passed in explicitly; the cart never reaches for ambient
// request state.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Item is a cart entry resolved against the current catalog. Price is a
// live snapshot taken at read time, not at add time.
type Item struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Service struct {
	store Store
	db    *gorm.DB
}

func NewService(store Store, db *gorm.DB) *Service {
	return &Service{store: store, db: db}
}

func (s *Service) cart() map[uint]int {
	raw, ok := s.store.Get(sessionKey)
	if !ok || raw == "" {
		return map[uint]int{}
	}

	var cart map[uint]int
	if err := json.Unmarshal([]byte(raw), &cart); err != nil || cart == nil {
		return map[uint]int{}
	}
	return cart
}

func (s *Service) save(cart map[uint]int) {
	raw, err := json.Marshal(cart)
	if err != nil {
		return
	}
	s.store.Set(sessionKey, string(raw))
}

// AddItem increments an existing entry or inserts a new one. Quantity
// must already be validated positive by the caller.
func (s *Service) AddItem(productID uint, quantity int) {
	cart := s.cart()
	cart[productID] += quantity
	s.save(cart)
}

// UpdateQuantity overwrites an existing entry's quantity. A quantity of
// zero or less removes the entry. Absent product ids are ignored.
func (s *Service) UpdateQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	cart := s.cart()
	if _, ok := cart[productID]; ok {
		cart[productID] = quantity
		s.save(cart)
	}
}

func (s *Service) RemoveItem(productID uint) {
	cart := s.cart()
	delete(cart, productID)
	s.save(cart)
}

func (s *Service) Clear() {
	s.store.Remove(sessionKey)
}

// Items resolves the cart against the current catalog. Entries whose
// product no longer exists are dropped silently. Results are sorted by
// product id.
func (s *Service) Items() ([]Item, error) {
	cart := s.cart()
	items := make([]Item, 0, len(cart))

	for productID, quantity := range cart {
		var product models.Product
		if err := s.db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		items = append(items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			ImageURL:  product.ImageURL,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (s *Service) Total() (decimal.Decimal, error) {
	items, err := s.Items()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total, nil
}

// Count sums raw quantities without resolving products, so entries for
// since-deleted products still count until a listing prunes them.
func (s *Service) Count() int {
	count := 0
	for _, quantity := range s.cart() {
		count += quantity
	}
	return count
}
