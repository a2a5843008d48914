package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// TracingProductRepository wraps a ProductRepository with tracing
type TracingProductRepository struct {
	next domain.ProductRepository
}

// NewTracingProductRepository creates a new repository with tracing
func NewTracingProductRepository(next domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.Int("product.stock", product.Stock),
	)
	return product, nil
}

func (r *TracingProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindByName",
		trace.WithAttributes(attribute.String("product.name", name)),
	)
	defer span.End()

	product, err := r.next.FindByName(ctx, name)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return product, nil
}

func (r *TracingProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.FindAll")
	defer span.End()

	products, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.String("product.name", product.Name),
			attribute.Float64("product.price", product.Price),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	if err := r.next.Update(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Delete",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func (r *TracingProductRepository) AdjustStock(ctx context.Context, id uint, delta int) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.AdjustStock",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
			attribute.Int("stock.delta", delta),
		),
	)
	defer span.End()

	ok, err := r.next.AdjustStock(ctx, id, delta)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("stock.applied", ok))
	return ok, nil
}

// recordError marks the span failed. Not-found is a normal lookup outcome and keeps the span OK.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, domain.ErrProductNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
