package router

import (
	"fmt"
	"strings"

	"github.com/aurelia-jewelry/aurelia/internal/cache"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	publichandlers "github.com/aurelia-jewelry/aurelia/internal/http/handlers/public"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the storefront API.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "au"
	}
	redisClient := cache.Client()
	placeOrderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:place_order", redisPrefix),
		WindowSeconds: cfg.Security.PlaceOrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PlaceOrderRateLimit.MaxAttempts,
		Message:       "too many order attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey))
	{
		productGroup := apiV1.Group("/products")
		{
			productGroup.GET("", publicHandler.ListProducts)
			productGroup.GET("/:slug", publicHandler.GetProduct)
		}

		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", publicHandler.GetCart)
			cartGroup.POST("/items", publicHandler.AddCartItem)
			cartGroup.PUT("/items/:line_id", publicHandler.UpdateCartItem)
			cartGroup.DELETE("/items/:line_id", publicHandler.RemoveCartItem)
			cartGroup.DELETE("", publicHandler.ClearCart)
			cartGroup.POST("/validate", publicHandler.ValidateCart)
		}

		checkoutGroup := apiV1.Group("/checkout")
		{
			checkoutGroup.GET("", publicHandler.GetCheckout)
			checkoutGroup.POST("/advance", publicHandler.AdvanceCheckout)
			checkoutGroup.POST("/back", publicHandler.BackCheckout)
			checkoutGroup.PUT("/shipping", publicHandler.UpdateShipping)
			checkoutGroup.POST("/place-order",
				RateLimitMiddleware(redisClient, placeOrderRule, KeyByIP),
				publicHandler.PlaceOrder)
		}
	}

	return r
}
