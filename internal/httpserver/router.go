package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", createOrderHandler(deps.OrderSvc))
	orders.GET("", listOrdersHandler(deps.OrderSvc))
	orders.GET("/email/:email", ordersByEmailHandler(deps.OrderSvc))
	orders.GET("/:id", orderByIDHandler(deps.OrderSvc))
	orders.PATCH("/:id", updateOrderFlagsHandler(deps.OrderSvc))
	orders.DELETE("/:id", deleteOrderHandler(deps.OrderSvc))
	orders.POST("/remove-item", removeLineHandler(deps.OrderSvc))
	orders.POST("/notify-progress", notifyProgressHandler(deps.OrderSvc))

	products := api.Group("/products")
	products.GET("", listProductsHandler(deps.CatalogSvc))
	products.GET("/:id", productByIDHandler(deps.CatalogSvc))
	products.POST("", createProductHandler(deps.CatalogSvc))
	products.PUT("/:id", updateProductHandler(deps.CatalogSvc))
	products.DELETE("/:id", deleteProductHandler(deps.CatalogSvc))

	api.GET("/admin/stats", statsHandler(deps.StatsSvc))

	return router
}
