package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"myduka.app/pos/internal/config"
	"myduka.app/pos/internal/http/handlers"
	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/modules/auth"
	"myduka.app/pos/internal/modules/payments"
	"myduka.app/pos/internal/modules/products"
	"myduka.app/pos/internal/modules/sales"
)

// NewRouter wires repositories, services and handlers. The payment provider
// comes from the caller so tools and tests can substitute it.
func NewRouter(logger *slog.Logger, db *gorm.DB, cfg *config.Config, provider payments.Provider) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: false,
	}))
	r.Use(middleware.ErrorHandler(logger))

	// modules
	userRepo := auth.NewRepo(db)
	authSvc := auth.NewService(userRepo)
	tokens := auth.NewTokenService(cfg.JWTSecretKey, cfg.JWTTTL)

	productRepo := products.NewRepo(db)
	saleRepo := sales.NewRepo(db)

	paymentRepo := payments.NewRepo(db)
	paymentSvc := payments.NewService(paymentRepo, provider)
	paymentSvc.SetLogger(logger)
	reconciler := payments.NewReconcileService(paymentRepo)
	reconciler.SetLogger(logger)

	// handlers
	authH := handlers.NewAuthHandlers(authSvc, tokens)
	userH := handlers.NewUserHandlers(authSvc)
	productH := handlers.NewProductHandlers(productRepo)
	saleH := handlers.NewSaleHandlers(saleRepo, productRepo)
	paymentH := handlers.NewPaymentHandlers(paymentSvc, paymentRepo)
	callbackH := handlers.NewCallbackHandler(logger, reconciler)
	dashboardH := handlers.NewDashboardHandlers(db)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/token", authH.Token)
	}

	// invoked by the provider, deliberately outside RequireAuth
	r.POST("/payments/callback", callbackH.Handle)

	protected := r.Group("/", middleware.RequireAuth(tokens))
	{
		protected.GET("/products", productH.List)
		protected.POST("/products", productH.Create)
		protected.PUT("/products/:id", productH.Update)
		protected.DELETE("/products/:id", productH.Delete)

		protected.GET("/sales", saleH.List)
		protected.POST("/sales", saleH.Create)

		protected.GET("/users", userH.List)

		protected.GET("/payments", paymentH.List)
		protected.POST("/payments/initiate", paymentH.Initiate)
		protected.GET("/payments/status/:saleId", paymentH.Status)

		protected.GET("/dashboard/summary", dashboardH.Summary)
	}

	return r
}
