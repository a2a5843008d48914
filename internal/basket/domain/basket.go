package domain

import (
	"context"
	"errors"
	"time"

	productdomain "github.com/tair/storefront/internal/product/domain"
)

var (
	ErrBasketItemNotFound = errors.New("product not found in basket")
	ErrInsufficientStock  = errors.New("not enough stock available")
	ErrInvalidQuantity    = errors.New("invalid quantity")
)

// BasketItem is one line of the shared basket: a product and the units reserved for it.
// There is at most one line per product.
type BasketItem struct {
	ID        uint                   `json:"id" gorm:"primaryKey"`
	ProductID uint                   `json:"-" gorm:"not null;uniqueIndex"`
	Product   *productdomain.Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Quantity  int                    `json:"quantity" gorm:"not null"`
	CreatedAt time.Time              `json:"-"`
	UpdatedAt time.Time              `json:"-"`
}

// TableName specifies the table name
func (BasketItem) TableName() string {
	return "basket_items"
}

// IsOrphan reports whether the line lost its product
func (i *BasketItem) IsOrphan() bool {
	return i.Product == nil || i.Product.ID == 0
}

// Subtotal is the line price at the product's current price
func (i *BasketItem) Subtotal() float64 {
	if i.IsOrphan() {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}

// BasketRepository defines the contract for basket data access
type BasketRepository interface {
	// FindAll returns every line with its product preloaded. Orphaned lines
	// are returned with a nil Product.
	FindAll(ctx context.Context) ([]BasketItem, error)
	FindByProductID(ctx context.Context, productID uint) (*BasketItem, error)
	// LockByProductID is FindByProductID holding a row lock for the rest of
	// the transaction.
	LockByProductID(ctx context.Context, productID uint) (*BasketItem, error)
	// Merge creates the product's line or adds item.Quantity to the existing one
	Merge(ctx context.Context, item *BasketItem) error
	// AddQuantity fails with ErrInvalidQuantity when the line would drop below one unit
	AddQuantity(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
	DeleteByProductID(ctx context.Context, productID uint) (int64, error)
	DeleteOrphans(ctx context.Context) (int64, error)
}
