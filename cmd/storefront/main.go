package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jkariuki/lapstore/docs"
	"github.com/jkariuki/lapstore/internal/cart"
	"github.com/jkariuki/lapstore/internal/catalog"
	"github.com/jkariuki/lapstore/internal/config"
	"github.com/jkariuki/lapstore/internal/httpx"
	"github.com/jkariuki/lapstore/internal/order"
	"github.com/jkariuki/lapstore/internal/user"
)

// @title Lapstore API
// @version 1.0
// @description Storefront for a laptop retailer: catalog, cart, checkout and order management.
// @BasePath /
func main() {
	cfg := config.Load()

	db, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[storefront] postgres: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	products := catalog.NewCachedRepo(catalog.NewPGRepo(db), rdb)
	users := user.NewService(user.NewPGRepo(db))
	cartRepo := cart.NewPGRepo(db)
	carts := cart.NewService(cartRepo, products)
	orders := order.NewService(order.NewPGRepo(db), cartRepo)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	registerRoutes(r, cfg, users, products, carts, orders)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("[storefront] listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("[storefront] server: %v", err)
	}
}

func registerRoutes(r *gin.Engine, cfg config.Config,
	users *user.Service, products catalog.Repository,
	carts *cart.Service, orders *order.Service) {

	r.GET("/healthz", healthHandler())

	r.POST("/api/auth/register", registerHandler(users))
	r.POST("/api/auth/login", loginHandler(users, cfg))
	r.POST("/api/auth/logout", logoutHandler())

	r.GET("/api/products", listProductsHandler(products))
	r.GET("/api/products/:slug", getProductHandler(products))
	r.GET("/api/categories", listCategoriesHandler(products))
	r.GET("/api/trending", trendingHandler(products))

	// anonymous visitors get an empty cart, not a 401
	open := r.Group("/api/cart", httpx.OptionalUser(cfg.SessionSecret))
	open.GET("/count", cartCountHandler(carts))
	open.GET("", cartSummaryHandler(carts))

	api := r.Group("/api", httpx.RequireUser(cfg.SessionSecret, true))
	api.POST("/cart/items", addToCartAPIHandler(carts))
	api.GET("/orders", listOrdersHandler(orders))
	api.GET("/orders/:id", getOrderHandler(orders))

	// browser form flows redirect instead of returning JSON
	forms := r.Group("", httpx.RequireUser(cfg.SessionSecret, false))
	forms.POST("/cart/add", addToCartFormHandler(carts))
	forms.POST("/cart/update", updateCartItemHandler(carts))
	forms.POST("/cart/remove", removeCartItemHandler(carts))
	forms.POST("/checkout", checkoutHandler(orders))

	admin := r.Group("/api/admin", httpx.RequireUser(cfg.SessionSecret, true), httpx.RequireAdmin())
	admin.POST("/products", createProductHandler(products))
	admin.PATCH("/products/:id", updateProductHandler(products))
	admin.POST("/products/:id/archive", archiveProductHandler(products))
	admin.PATCH("/orders/:id/status", updateOrderStatusHandler(orders))
	admin.POST("/orders/:id/paid", markOrderPaidHandler(orders))
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
