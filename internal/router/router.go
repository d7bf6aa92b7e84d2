package router

import (
	"fmt"
	"strings"

	"github.com/gamevault-next/internal/cache"
	"github.com/gamevault-next/internal/config"
	"github.com/gamevault-next/internal/constants"
	adminhandlers "github.com/gamevault-next/internal/http/handlers/admin"
	publichandlers "github.com/gamevault-next/internal/http/handlers/public"
	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（封面图等上传文件）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/games", publicHandler.ListGames)
			public.GET("/games/:id", publicHandler.GetGame)
			public.GET("/genres", publicHandler.ListGenres)
			public.GET("/top-sellers", publicHandler.TopSellers)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserProfile)
			user.PUT("/me/profile", publicHandler.UserUpdateProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:game_id", publicHandler.UpdateCartItemQuantity)
			user.DELETE("/cart/items/:game_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/checkout", publicHandler.Checkout)
			user.POST("/purchases", publicHandler.PurchaseGame)
			user.POST("/coupons/preview", publicHandler.PreviewCoupon)
			user.GET("/wallet", publicHandler.WalletBalance)
			user.POST("/wallet/topup", publicHandler.WalletAddFunds)
			user.GET("/wallet/topups", publicHandler.WalletTopups)
			user.GET("/library", publicHandler.Library)
			user.GET("/library/:game_id", publicHandler.OwnsGame)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRequiredMiddleware())
		{
			// 游戏与促销管理
			admin.GET("/games", adminHandler.ListGames)
			admin.POST("/games", adminHandler.CreateGame)
			admin.PUT("/games/:id", adminHandler.UpdateGame)
			admin.DELETE("/games/:id", adminHandler.DeleteGame)
			admin.POST("/promotions", adminHandler.CreatePromotion)
			admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)

			// 优惠码管理
			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
			admin.GET("/coupon-usages", adminHandler.ListCouponUsages)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
