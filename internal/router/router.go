package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ktmart/marketplace-api/internal/config"
	"github.com/ktmart/marketplace-api/internal/handler"
	"github.com/ktmart/marketplace-api/internal/middleware"
	"github.com/ktmart/marketplace-api/internal/model"
)

// Handlers collects the per-resource handlers the router wires up.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Bookings *handler.BookingHandler
	Users    *handler.UserHandler
	Payments *handler.PaymentHandler
}

// Register wires every route of the API onto the provided Echo instance.
// Public catalog reads go through the Redis response cache; the bookings
// listing and the role-grant routes sit behind the bearer-token guard,
// with the grants additionally restricted to admins.  rdb may be nil, in
// which case the cache middleware is a passthrough.
func Register(e *echo.Echo, cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client, h Handlers) {
	e.Use(echomw.CORS())

	e.GET("/", handler.Root)

	// Public catalog, cached.
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/brands", h.Catalog.GetBrands, cache)
	e.GET("/products/:name", h.Catalog.GetProductsByBrand, cache)
	e.GET("/products", h.Catalog.GetProducts, cache)
	e.GET("/product/:id", h.Catalog.GetProduct, cache)
	e.GET("/advertisies", h.Catalog.GetAdvertised, cache)

	// Seller product mutations.
	e.POST("/products", h.Catalog.CreateProduct)
	e.DELETE("/products/:id", h.Catalog.DeleteProduct)
	e.PATCH("/products/:id", h.Catalog.PatchProductStatus)

	// Bookings.  The listing by email is identity-scoped and guarded.
	auth := middleware.JWTAuth(cfg.JWTSecret)
	e.POST("/bookings", h.Bookings.Create)
	e.GET("/bookings", h.Bookings.ByEmail, auth)
	e.GET("/bookings/:id", h.Bookings.ByID)

	// Users and role checks.  Role grants require an admin requester.
	admin := middleware.RequireRole(string(model.RoleAdmin))
	e.POST("/users", h.Users.Create)
	e.GET("/users", h.Users.All)
	e.GET("/users/buyers", h.Users.Buyers)
	e.GET("/sellers", h.Users.Sellers)
	e.GET("/users/admin/:email", h.Users.IsAdmin)
	e.GET("/users/buyer/:email", h.Users.IsBuyer)
	e.GET("/users/seller/:email", h.Users.IsSeller)
	e.GET("/users/:email", h.Users.ByEmail)
	e.DELETE("/users/:id", h.Users.Delete)
	e.PUT("/users/admin/:id", h.Users.GrantAdmin, auth, admin)
	e.PUT("/users/sellers/:id", h.Users.GrantSeller, auth, admin)

	// Token issuance.
	e.GET("/jwt", h.Users.Token)

	// Payments.
	e.POST("/create-payment-intent", h.Payments.CreateIntent)
	e.POST("/payments", h.Payments.Create)
}
