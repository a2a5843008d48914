package app

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"google.golang.org/grpc"

	_ "github.com/tair/storefront/docs"
	baskethttp "github.com/tair/storefront/internal/basket/delivery/http"
	basketdomain "github.com/tair/storefront/internal/basket/domain"
	basketcommand "github.com/tair/storefront/internal/basket/usecase/command"
	"github.com/tair/storefront/internal/health"
	producthttp "github.com/tair/storefront/internal/product/delivery/http"
	productdomain "github.com/tair/storefront/internal/product/domain"
	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/pkg/cache"
	"github.com/tair/storefront/pkg/config"
	"github.com/tair/storefront/pkg/middleware"
)

// App is the fully wired storefront service
type App struct {
	Store     *store.Store
	Handler   http.Handler
	GRPC      *grpc.Server
	Reconcile *basketcommand.ReconcileBasketHandler
}

func NewApp(
	s *store.Store,
	handler http.Handler,
	grpcServer *grpc.Server,
	reconcile *basketcommand.ReconcileBasketHandler,
) *App {
	return &App{Store: s, Handler: handler, GRPC: grpcServer, Reconcile: reconcile}
}

// NewRouter mounts every HTTP route and wraps the router with the response
// cache, the rate limiter and CORS.
func NewRouter(
	cfg *config.Config,
	products *producthttp.ProductHandler,
	basket *baskethttp.BasketHandler,
	checker *health.Checker,
	responseCache *cache.ResponseCache,
	limiter *cache.RateLimiter,
	gatherer prometheus.Gatherer,
) http.Handler {
	router := mux.NewRouter()
	mwConfig := middleware.DefaultConfig(cfg.RequestTimeout)
	middleware.Register(router, mwConfig)

	products.RegisterRoutes(router)
	basket.RegisterRoutes(router)
	checker.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	producthttp.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return middleware.CORS(mwConfig, limiter.Middleware(responseCache.Middleware(router)))
}

func ProvideProductRepository(s *store.Store) productdomain.ProductRepository {
	return s.Products
}

func ProvideBasketRepository(s *store.Store) basketdomain.BasketRepository {
	return s.Basket
}

func ProvideValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func ProvideHealthChecker(s *store.Store, cfg *config.Config) *health.Checker {
	return health.NewChecker(s, cfg.ServiceName)
}
