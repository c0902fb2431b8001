package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/cache"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/config"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/handler"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/infra"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	pixClient *infra.PixClient,
	pixBreaker *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	dayRepo := repository.NewBusinessDayRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	payableRepo := repository.NewPayableRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	currentDay := cache.NewCurrentDay(rdb, time.Duration(cfg.CurrentDayCacheTTL)*time.Second)

	authSvc := service.NewAuthService(userRepo, cfg)
	daySvc := service.NewBusinessDayService(dayRepo, cashierRepo, currentDay, dispatcher, cfg.StoreID)
	cashierSvc := service.NewCashierService(cashierRepo, dayRepo, currentDay, cfg.StoreID)
	productSvc := service.NewProductService(productRepo, rdb)
	loyaltySvc := service.NewLoyaltyService(customerRepo)
	orderSvc := service.NewOrderService(orderRepo, cashierSvc, cashierRepo, productRepo, customerRepo, pixClient, pixBreaker, dispatcher)
	payableSvc := service.NewPayableService(payableRepo, cashierSvc)
	dashboardSvc := service.NewDashboardService(orderRepo, payableRepo)
	storeSvc := service.NewStoreService(daySvc, cashierRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	dayH := handler.NewBusinessDayHandler(daySvc)
	cashierH := handler.NewCashierHandler(cashierSvc, authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	customersH := handler.NewCustomersHandler(loyaltySvc)
	payablesH := handler.NewPayablesHandler(payableSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, storeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, pixBreaker))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth so a shelf kiosk can scan without a session
	r.GET("/v1/price/:barcode", productsH.PriceLookup)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyStaff := middleware.RequireRole("cashier", "supervisor", "admin")
		supervisorUp := middleware.RequireRole("supervisor", "admin")
		adminOnly := middleware.RequireRole("admin")

		// Business day lifecycle — opening and closing are supervisor actions
		day := v1.Group("/business-day")
		{
			day.GET("/current", anyStaff, dayH.Current)
			day.GET("", supervisorUp, dayH.List)
			day.GET("/:id/summary", supervisorUp, dayH.Summary)
			day.POST("/open", supervisorUp, dayH.Open)
			day.POST("/:id/close", supervisorUp, dayH.Close)
		}

		// Till sessions
		cashier := v1.Group("/cashier")
		{
			cashier.POST("/open", anyStaff, cashierH.Open)
			cashier.POST("/:id/close", anyStaff, cashierH.Close)
			cashier.GET("/status/:terminalId", anyStaff, cashierH.TerminalStatus)
			cashier.POST("/:id/withdrawal", anyStaff, cashierH.Withdrawal)
			cashier.POST("/:id/deposit", anyStaff, cashierH.Deposit)
			cashier.GET("/:id/summary", anyStaff, cashierH.Summary)
			cashier.GET("/history", supervisorUp, cashierH.History)
		}

		// Orders — cancellation needs supervisor approval
		v1.POST("/orders", anyStaff, ordersH.Register)
		v1.GET("/orders", anyStaff, ordersH.List)
		v1.GET("/orders/:id", anyStaff, ordersH.Get)
		v1.POST("/orders/:id/cancel", supervisorUp, ordersH.Cancel)

		// Catalog — all staff read, admin writes
		v1.GET("/products", anyStaff, productsH.List)
		v1.GET("/products/:id", anyStaff, productsH.Get)
		v1.PATCH("/products/:id/stock", supervisorUp, productsH.AdjustStock)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		v1.GET("/categories", anyStaff, productsH.ListCategories)
		v1.POST("/categories", adminOnly, productsH.CreateCategory)

		// Loyalty
		customers := v1.Group("/customers", anyStaff)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.GET("/:id/history", customersH.History)
			customers.POST("/:id/redeem", customersH.Redeem)
		}

		// Supplier bills
		payables := v1.Group("/payables", supervisorUp)
		{
			payables.POST("", payablesH.Create)
			payables.GET("", payablesH.List)
			payables.POST("/:id/pay", payablesH.Pay)
		}

		// Dashboards
		v1.GET("/dashboard/today", supervisorUp, dashboardH.Today)
		v1.GET("/store/state", anyStaff, dashboardH.StoreState)

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
