package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/basket/domain"
)

var tracer = otel.Tracer("basket-repository")

// TracingBasketRepository wraps a BasketRepository with tracing
type TracingBasketRepository struct {
	next domain.BasketRepository
}

func NewTracingBasketRepository(next domain.BasketRepository) *TracingBasketRepository {
	return &TracingBasketRepository{next: next}
}

func (r *TracingBasketRepository) FindAll(ctx context.Context) ([]domain.BasketItem, error) {
	ctx, span := tracer.Start(ctx, "repository.Basket.FindAll")
	defer span.End()

	items, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (r *TracingBasketRepository) FindByProductID(ctx context.Context, productID uint) (*domain.BasketItem, error) {
	ctx, span := tracer.Start(ctx, "repository.Basket.FindByProductID",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	item, err := r.next.FindByProductID(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("basket_item.id", int(item.ID)),
		attribute.Int("basket_item.quantity", item.Quantity),
	)
	return item, nil
}

func (r *TracingBasketRepository) LockByProductID(ctx context.Context, productID uint) (*domain.BasketItem, error) {
	ctx, span := tracer.Start(ctx, "repository.Basket.LockByProductID",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	item, err := r.next.LockByProductID(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("basket_item.id", int(item.ID)),
		attribute.Int("basket_item.quantity", item.Quantity),
	)
	return item, nil
}

func (r *TracingBasketRepository) Merge(ctx context.Context, item *domain.BasketItem) error {
	ctx, span := tracer.Start(ctx, "repository.Basket.Merge",
		trace.WithAttributes(
			attribute.Int("product.id", int(item.ProductID)),
			attribute.Int("basket_item.quantity", item.Quantity),
		),
	)
	defer span.End()

	if err := r.next.Merge(ctx, item); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingBasketRepository) AddQuantity(ctx context.Context, id uint, delta int) error {
	ctx, span := tracer.Start(ctx, "repository.Basket.AddQuantity",
		trace.WithAttributes(
			attribute.Int("basket_item.id", int(id)),
			attribute.Int("basket_item.delta", delta),
		),
	)
	defer span.End()

	if err := r.next.AddQuantity(ctx, id, delta); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingBasketRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Basket.Delete",
		trace.WithAttributes(attribute.Int("basket_item.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingBasketRepository) DeleteByProductID(ctx context.Context, productID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Basket.DeleteByProductID",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	n, err := r.next.DeleteByProductID(ctx, productID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.deleted", n))
	return n, nil
}

func (r *TracingBasketRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Basket.DeleteOrphans")
	defer span.End()

	n, err := r.next.DeleteOrphans(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.deleted", n))
	return n, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, domain.ErrBasketItemNotFound) || errors.Is(err, domain.ErrInvalidQuantity) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
