package handlers

import (
	"time"

	"github.com/SscSPs/expense_ledger/cmd/docs"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/SscSPs/expense_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, apiLimiter)

	jobs := r.Group("/internal/jobs", middleware.JobTokenMiddleware(cfg.JobToken))
	RegisterJobRoutes(jobs, services.Subscription, services.Report, utcNow)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if apiLimiter != nil {
		v1.Use(middleware.RateLimit(apiLimiter))
	}

	org := v1.Group("/organizations/:organizationID")
	RegisterCurrencyRateRoutes(org, service.CurrencyRate)
	RegisterExpenseRoutes(org, service.Expense)
	RegisterLoanRoutes(org, service.Loan)
	RegisterSubscriptionRoutes(org, service.Subscription)
	RegisterReportRoutes(org, service.Report, utcNow)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func utcNow() time.Time {
	return time.Now().UTC()
}
