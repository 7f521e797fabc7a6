// Package router wires repositories, services and handlers into the gin
// engine and declares the whole route table with its role gating.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/handler"
	"github.com/NicolasGomez268/PuntoTecno/internal/middleware"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
	"github.com/NicolasGomez268/PuntoTecno/internal/service"
)

// New builds the fully wired gin engine. notifier may be nil (notifications
// disabled); transition may be nil (all status transitions allowed).
func New(db *gorm.DB, rdb *redis.Client, cfg *config.Config, notifier service.Notifier, transition service.TransitionPolicy, log zerolog.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg)
	customerSvc := service.NewCustomerService(customerRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, rdb, log)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, log)
	catalogSvc := service.NewCatalogService(serviceRepo)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, cfg, notifier, transition, log)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, inventorySvc, cfg, log)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(authSvc)
	customerH := handler.NewCustomerHandler(customerSvc, orderSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	productH := handler.NewProductHandler(productSvc, inventorySvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	serviceH := handler.NewServiceHandler(catalogSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	saleH := handler.NewSaleHandler(saleSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(),
		middleware.RateLimiter(rdb, 300, time.Minute),
	)

	r.GET("/health", healthH.Check)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	// Public: the in-store price checker scans SKUs without logging in.
	v1.GET("/price/:sku", productH.PriceBySKU)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", middleware.LoginRateLimiter(rdb), authH.Refresh)
	}

	authed := v1.Group("", middleware.JWTAuth(cfg.JWTSecret))
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	anyStaff := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)

	profile := authed.Group("/auth")
	{
		profile.GET("/profile", authH.Profile)
		profile.PUT("/profile", authH.UpdateProfile)
		profile.POST("/change-password", authH.ChangePassword)
	}

	users := authed.Group("/users", adminOnly)
	{
		users.GET("", userH.List)
		users.POST("", userH.Create)
		users.PUT("/:id", userH.Update)
		users.DELETE("/:id", userH.Deactivate)
		users.PATCH("/:id/reactivate", userH.Reactivate)
	}

	customers := authed.Group("/customers", anyStaff)
	{
		customers.GET("", customerH.List)
		customers.POST("", customerH.Create)
		customers.GET("/:id", customerH.Get)
		customers.PUT("/:id", customerH.Update)
		customers.DELETE("/:id", customerH.Delete)
		customers.GET("/:id/orders", customerH.Orders)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", anyStaff, categoryH.List)
		categories.GET("/:id", anyStaff, categoryH.Get)
		categories.POST("", adminOnly, categoryH.Create)
		categories.PUT("/:id", adminOnly, categoryH.Update)
		categories.DELETE("/:id", adminOnly, categoryH.Delete)
	}

	products := authed.Group("/products")
	{
		products.GET("", anyStaff, productH.List)
		products.GET("/low-stock", anyStaff, productH.LowStock)
		products.GET("/statistics", anyStaff, productH.Statistics)
		products.GET("/:id", anyStaff, productH.Get)
		products.GET("/:id/stock", anyStaff, productH.Stock)
		products.POST("", adminOnly, productH.Create)
		products.PUT("/:id", adminOnly, productH.Update)
		products.DELETE("/:id", adminOnly, productH.Delete)
		products.POST("/:id/stock", adminOnly, productH.ApplyMovement)
	}

	inventory := authed.Group("/inventory", anyStaff)
	{
		inventory.GET("/movements", inventoryH.Movements)
	}

	services := authed.Group("/services")
	{
		services.GET("", anyStaff, serviceH.List)
		services.GET("/:id", anyStaff, serviceH.Get)
		services.POST("", adminOnly, serviceH.Create)
		services.PUT("/:id", adminOnly, serviceH.Update)
		services.DELETE("/:id", adminOnly, serviceH.Delete)
	}

	orders := authed.Group("/orders", anyStaff)
	{
		orders.GET("", orderH.List)
		orders.POST("", orderH.Create)
		orders.GET("/dashboard", orderH.Dashboard)
		orders.GET("/my-orders", orderH.MyOrders)
		orders.GET("/daily-load", orderH.DailyLoad)
		orders.GET("/:id", orderH.Get)
		orders.PUT("/:id", orderH.Update)
		orders.POST("/:id/status", orderH.ChangeStatus)
		orders.POST("/:id/payments", orderH.AddPayment)
		orders.GET("/:id/ticket", orderH.Ticket)
	}

	sales := authed.Group("/sales", anyStaff)
	{
		sales.GET("", saleH.List)
		sales.POST("", saleH.Create)
		sales.GET("/dashboard", saleH.Dashboard)
		sales.GET("/daily-report", saleH.DailyReport)
		sales.GET("/:id", saleH.Get)
		sales.GET("/:id/ticket", saleH.Ticket)
	}

	return r
}
