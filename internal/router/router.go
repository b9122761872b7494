package router

import (
	"fmt"
	"strings"

	"github.com/bec-billdesk/internal/cache"
	"github.com/bec-billdesk/internal/config"
	publichandlers "github.com/bec-billdesk/internal/http/handlers/public"
	"github.com/bec-billdesk/internal/http/response"
	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routing tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "billdesk"
	}
	redisClient := cache.Client()
	lookupRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:lookup", redisPrefix),
		WindowSeconds: cfg.Security.LookupRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LookupRateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/info", publicHandler.GetInfo)

		// The locator is anonymous on purpose: a parent or teller quoting
		// a challan number has no session. Rate limited by IP.
		apiV1.POST("/payments/lookup",
			RateLimitMiddleware(redisClient, lookupRule, KeyByIP),
			publicHandler.LookupPayment,
		)

		student := apiV1.Group("")
		student.Use(StudentJWTAuthMiddleware(cfg.JWT.SecretKey, c.StudentRepo))
		{
			student.POST("/payments", publicHandler.CreatePayment)
			student.POST("/payments/verify", publicHandler.VerifyPayment)
			student.GET("/payments", publicHandler.ListPayments)
			student.GET("/payments/:id", publicHandler.GetPayment)
			student.GET("/fees", publicHandler.ListFees)
			student.GET("/fees/pending", publicHandler.ListPendingFees)
			student.GET("/fees/paid", publicHandler.ListPaidFees)
		}
	}

	return r
}
