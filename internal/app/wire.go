//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	baskethttp "github.com/tair/storefront/internal/basket/delivery/http"
	basketcommand "github.com/tair/storefront/internal/basket/usecase/command"
	basketquery "github.com/tair/storefront/internal/basket/usecase/query"
	"github.com/tair/storefront/internal/health"
	producthttp "github.com/tair/storefront/internal/product/delivery/http"
	productcommand "github.com/tair/storefront/internal/product/usecase/command"
	productquery "github.com/tair/storefront/internal/product/usecase/query"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/cache"
	"github.com/tair/storefront/pkg/config"
	"github.com/tair/storefront/pkg/metrics"
)

var StoreSet = wire.NewSet(
	store.New,
	wire.Bind(new(store.Transactor), new(*store.Store)),
	ProvideProductRepository,
	ProvideBasketRepository,
)

var MetricsSet = wire.NewSet(
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	metrics.NewHTTPMetrics,
	metrics.NewBasketMetrics,
)

var ProductSet = wire.NewSet(
	productcommand.NewCreateProductHandler,
	productcommand.NewUpdateProductHandler,
	productcommand.NewDeleteProductHandler,
	productquery.NewGetProductHandler,
	productquery.NewListProductsHandler,
	productquery.NewGetStatsHandler,
	producthttp.NewProductHandler,
)

var BasketSet = wire.NewSet(
	basketcommand.NewAddItemHandler,
	basketcommand.NewRemoveItemHandler,
	basketcommand.NewReconcileBasketHandler,
	basketquery.NewListBasketHandler,
	basketquery.NewGetSummaryHandler,
	baskethttp.NewBasketHandler,
)

var ServerSet = wire.NewSet(
	ProvideValidator,
	ProvideHealthChecker,
	health.NewInterceptors,
	health.NewGRPCServer,
	NewRouter,
	NewApp,
)

// InitializeApp wires the storefront service
func InitializeApp(
	cfg *config.Config,
	db *gorm.DB,
	publisher kafka.EventPublisher,
	responseCache *cache.ResponseCache,
	limiter *cache.RateLimiter,
	registry *prometheus.Registry,
) (*App, error) {
	wire.Build(StoreSet, MetricsSet, ProductSet, BasketSet, ServerSet)
	return nil, nil
}
