package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductNameTaken = errors.New("product name already registered")
	ErrInvalidProduct   = errors.New("invalid product")
)

// Product represents the product entity
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Price       float64   `json:"price" gorm:"not null"`
	Description *string   `json:"description"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// CanReserve reports whether quantity units can be taken from stock
func (p *Product) CanReserve(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// AdjustStock adds delta to the stock only if the result stays
	// non-negative. It reports false when the product is missing or the
	// stock is too low.
	AdjustStock(ctx context.Context, id uint, delta int) (bool, error)
}
