package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	basketdomain "github.com/tair/storefront/internal/basket/domain"
	basketrepo "github.com/tair/storefront/internal/basket/repository"
	productdomain "github.com/tair/storefront/internal/product/domain"
	productrepo "github.com/tair/storefront/internal/product/repository"
)

// Store groups the repositories that share one database handle. A Store
// obtained inside WithTx is bound to that transaction.
type Store struct {
	db       *gorm.DB
	Products productdomain.ProductRepository
	Basket   basketdomain.BasketRepository
}

// Transactor runs a unit of work inside one database transaction
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *Store) error) error
}

func New(db *gorm.DB) *Store {
	return build(db)
}

func build(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Products: productrepo.NewTracingProductRepository(productrepo.NewGormProductRepository(db)),
		Basket:   basketrepo.NewTracingBasketRepository(basketrepo.NewGormBasketRepository(db)),
	}
}

// WithTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(build(tx))
	})
}

// AutoMigrate creates or updates the products and basket_items tables
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&productdomain.Product{}, &basketdomain.BasketItem{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
