package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/notification"
	sessionrepo "wardrobe-storefront/internal/repository/session"
	cartsvc "wardrobe-storefront/internal/service/cart"
	inquirysvc "wardrobe-storefront/internal/service/inquiry"
	productsvc "wardrobe-storefront/internal/service/product"
	vendorsvc "wardrobe-storefront/internal/service/vendor"
	"wardrobe-storefront/internal/theme"
	"wardrobe-storefront/internal/validation"
)

type productService interface {
	List(ctx context.Context, spec catalog.FilterSpec) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Suggest(ctx context.Context, query string) ([]string, error)
	Facets(ctx context.Context) (catalog.Facets, error)
	Quote(ctx context.Context, id string, req cart.Request) (*productsvc.Quote, error)
}

type sessionService interface {
	Create(ctx context.Context, systemDark bool) (*sessionrepo.Session, error)
	Lookup(ctx context.Context, id string) (*sessionrepo.Session, error)
	Notifications(ctx context.Context, id string) (notification.State, error)
	MarkRead(ctx context.Context, id, notificationID string) (notification.State, error)
	MarkAllRead(ctx context.Context, id string) (notification.State, error)
	RemoveNotification(ctx context.Context, id, notificationID string) (notification.State, error)
	ClearNotifications(ctx context.Context, id string) (notification.State, error)
	Theme(ctx context.Context, id string) (theme.State, error)
	SetTheme(ctx context.Context, id, name string, systemDark *bool) (theme.State, error)
	ToggleTheme(ctx context.Context, id string) (theme.State, error)
	SetSystemPreference(ctx context.Context, id string, dark bool) (theme.State, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	AddItem(ctx context.Context, sessionID, productID string, req cart.Request) (cart.State, error)
	SetQuantity(ctx context.Context, sessionID, productID, txType string, quantity int) (cart.State, error)
	RemoveItem(ctx context.Context, sessionID, productID, txType string) (cart.State, error)
	Clear(ctx context.Context, sessionID string) (cart.State, error)
	Checkout(ctx context.Context, sessionID string, in cartsvc.CheckoutInput) (*domain.Order, error)
	Orders(ctx context.Context, sessionID string) ([]domain.Order, error)
	Order(ctx context.Context, sessionID, orderID string) (*domain.Order, error)
}

type vendorService interface {
	Apply(ctx context.Context, in vendorsvc.ApplyInput) (*domain.VendorApplication, error)
	Get(ctx context.Context, id string) (*domain.VendorApplication, error)
	Pay(ctx context.Context, id string) (*domain.VendorApplication, error)
}

type inquiryService interface {
	Submit(ctx context.Context, in inquirysvc.SubmitInput) (*domain.Inquiry, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	ProductSvc  productService
	SessionSvc  sessionService
	CartSvc     cartService
	VendorSvc   vendorService
	InquirySvc  inquiryService
	CORSOrigins []string
	ReadyChecks []ReadyCheck
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(readyChecks(db, deps.ReadyChecks)))

	h := &handlers{logger: logger, deps: deps}

	router.GET("/products", h.listProducts)
	router.GET("/products/suggestions", h.suggestProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/products/:id/quote", h.quoteProduct)
	router.GET("/facets", h.facets)

	router.POST("/sessions", h.createSession)

	me := router.Group("/me", sessionMiddleware(deps.SessionSvc))
	me.GET("/cart", h.getCart)
	me.DELETE("/cart", h.clearCart)
	me.POST("/cart/items", h.addCartItem)
	me.PUT("/cart/items/:productId/:type", h.setCartQuantity)
	me.DELETE("/cart/items/:productId/:type", h.removeCartItem)
	me.POST("/cart/checkout", h.checkout)
	me.GET("/orders", h.listOrders)
	me.GET("/orders/:id", h.getOrder)

	me.GET("/notifications", h.listNotifications)
	me.POST("/notifications/read", h.markAllNotificationsRead)
	me.POST("/notifications/:id/read", h.markNotificationRead)
	me.DELETE("/notifications/:id", h.removeNotification)
	me.DELETE("/notifications", h.clearNotifications)

	me.GET("/theme", h.getTheme)
	me.PUT("/theme", h.setTheme)
	me.POST("/theme/toggle", h.toggleTheme)
	me.POST("/theme/system", h.setSystemTheme)

	router.POST("/vendors/applications", h.applyVendor)
	router.GET("/vendors/applications/:id", h.getVendorApplication)
	router.POST("/vendors/applications/:id/payment", h.payVendorFee)
	router.POST("/contact", h.submitInquiry)

	return router, nil
}

// corsConfig allows every origin when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders: []string{sessionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}
