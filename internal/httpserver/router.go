package httpserver

import (
	"context"
	"errors"
	"time"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/gateway"
	"storefront/internal/logger"
	"storefront/internal/mode"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Storefront is the data surface the handlers need. *gateway.Gateway
// implements it.
type Storefront interface {
	CurrentMockUser() *domain.User

	ListProducts(ctx context.Context, spec catalog.FilterSpec) (gateway.Result[[]domain.Product], error)
	FeaturedProducts(ctx context.Context) (gateway.Result[[]domain.Product], error)
	GetProduct(ctx context.Context, id string) (gateway.Result[*domain.Product], error)

	ProductReviews(ctx context.Context, productID string) (gateway.Result[[]domain.Review], error)
	AddReview(ctx context.Context, in gateway.ReviewInput) (gateway.Result[*domain.Review], error)
	UpdateReview(ctx context.Context, in gateway.ReviewUpdate) (gateway.Result[*domain.Review], error)

	CartItems(ctx context.Context, userID string) (gateway.Result[[]domain.CartItem], error)
	CartCount(ctx context.Context, userID string) (gateway.Result[int], error)
	AddToCart(ctx context.Context, in gateway.AddToCartInput) (gateway.Result[*domain.CartItem], error)
	UpdateCartItem(ctx context.Context, userID, itemID string, quantity int) (gateway.Result[struct{}], error)
	RemoveCartItem(ctx context.Context, userID, itemID string) (gateway.Result[struct{}], error)

	ListOrders(ctx context.Context, userID string) (gateway.Result[[]domain.Order], error)
	GetOrder(ctx context.Context, userID, orderID string) (gateway.Result[*domain.Order], error)
	CreateOrder(ctx context.Context, in gateway.CheckoutInput) (gateway.Result[*domain.Order], error)

	Addresses(ctx context.Context, userID string) (gateway.Result[[]domain.Address], error)
	SaveAddress(ctx context.Context, in gateway.AddressInput) (gateway.Result[*domain.Address], error)
	DeleteAddress(ctx context.Context, userID, id string) (gateway.Result[struct{}], error)
	SetDefaultAddress(ctx context.Context, userID, id string) (gateway.Result[struct{}], error)
}

// Pinger reports database reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles the collaborators used by the router.
type Deps struct {
	Store          Storefront
	Mode           *mode.State
	Verifier       *auth.Verifier
	DB             Pinger
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Store == nil {
		return nil, errors.New("httpserver: store is required")
	}
	if deps.Mode == nil {
		deps.Mode = mode.Fixed(mode.Live)
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(log), securityHeaders())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", idempotencyHeader},
			ExposeHeaders:    []string{"X-Data-Source", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB, deps.Mode.Active()))

	api := router.Group("/api")
	if deps.RateLimitRPS > 0 {
		burst := deps.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		api.Use(rateLimit(newIPLimiter(rate.Limit(deps.RateLimitRPS), burst)))
	}
	api.Use(authenticate(deps.Verifier, deps.Store.CurrentMockUser))

	gw := deps.Store
	api.GET("/mode", modeStatusHandler(deps.Mode))
	api.GET("/products", listProductsHandler(gw))
	api.GET("/products/featured", featuredProductsHandler(gw))
	api.GET("/products/:id", getProductHandler(gw))
	api.GET("/products/:id/reviews", productReviewsHandler(gw))

	member := api.Group("", requireUser())
	member.PUT("/mode", setModeHandler(deps.Mode))
	member.GET("/me", meHandler)
	member.POST("/products/:id/reviews", addReviewHandler(gw))
	member.PUT("/reviews/:id", updateReviewHandler(gw))

	member.GET("/cart", cartHandler(gw))
	member.GET("/cart/count", cartCountHandler(gw))
	member.POST("/cart", addToCartHandler(gw))
	member.PATCH("/cart/:id", updateCartItemHandler(gw))
	member.DELETE("/cart/:id", removeCartItemHandler(gw))

	member.GET("/orders", listOrdersHandler(gw))
	member.GET("/orders/:id", getOrderHandler(gw))
	member.POST("/orders", createOrderHandler(gw))

	member.GET("/addresses", listAddressesHandler(gw))
	member.POST("/addresses", saveAddressHandler(gw))
	member.PUT("/addresses/:id", saveAddressHandler(gw))
	member.DELETE("/addresses/:id", deleteAddressHandler(gw))
	member.POST("/addresses/:id/default", setDefaultAddressHandler(gw))

	return router, nil
}
