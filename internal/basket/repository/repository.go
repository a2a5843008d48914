package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/storefront/internal/basket/domain"
	productdomain "github.com/tair/storefront/internal/product/domain"
)

// GormBasketRepository implements domain.BasketRepository using GORM
type GormBasketRepository struct {
	db *gorm.DB
}

func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

func (r *GormBasketRepository) FindAll(ctx context.Context) ([]domain.BasketItem, error) {
	items := []domain.BasketItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list basket items: %w", err)
	}
	return items, nil
}

func (r *GormBasketRepository) FindByProductID(ctx context.Context, productID uint) (*domain.BasketItem, error) {
	return r.findByProductID(r.db.WithContext(ctx), productID)
}

// LockByProductID reads the line with a row lock held until the surrounding
// transaction ends. SQLite has no row locks and serializes writers instead.
func (r *GormBasketRepository) LockByProductID(ctx context.Context, productID uint) (*domain.BasketItem, error) {
	return r.findByProductID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), productID)
}

func (r *GormBasketRepository) findByProductID(db *gorm.DB, productID uint) (*domain.BasketItem, error) {
	var item domain.BasketItem
	err := db.Where("product_id = ?", productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBasketItemNotFound
		}
		return nil, fmt.Errorf("failed to find basket item: %w", err)
	}
	return &item, nil
}

// Merge inserts the line or, when the product already has one, adds
// item.Quantity to it in the same statement.
func (r *GormBasketRepository) Merge(ctx context.Context, item *domain.BasketItem) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("basket_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to merge basket item: %w", err)
	}
	return nil
}

// AddQuantity changes the line quantity by delta. The update is refused when
// the line would drop below one unit.
func (r *GormBasketRepository) AddQuantity(ctx context.Context, id uint, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.BasketItem{}).
		Where("id = ? AND quantity + ? >= 1", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to update basket item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: basket line %d cannot change by %d", domain.ErrInvalidQuantity, id, delta)
	}
	return nil
}

func (r *GormBasketRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.BasketItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete basket item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrBasketItemNotFound
	}
	return nil
}

func (r *GormBasketRepository) DeleteByProductID(ctx context.Context, productID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.BasketItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete basket items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteOrphans removes lines whose product row no longer exists
func (r *GormBasketRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	existing := r.db.Model(&productdomain.Product{}).Select("id")
	result := r.db.WithContext(ctx).
		Where("product_id NOT IN (?)", existing).
		Delete(&domain.BasketItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete orphaned basket items: %w", result.Error)
	}
	return result.RowsAffected, nil
}
