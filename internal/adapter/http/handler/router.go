package handler

import (
	"time"

	"multiwallet-trader/internal/adapter/http/dto"
	"multiwallet-trader/internal/adapter/http/middleware"
	redisStore "multiwallet-trader/internal/adapter/storage/redis"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Registry       ports.WalletRegistry
	Balances       ports.BalanceReader
	State          ports.StateService
	Trades         ports.TradeService
	Events         ports.EventStream
	AuthSvc        ports.AuthService          // nil = operator login disabled
	TokenSvc       ports.TokenService         // required when AuthSvc is set
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Config         dto.ConfigResponse
	Heartbeat      time.Duration // log stream heartbeat
	OpenAPISpec    []byte        // served at /swagger/spec
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: chain RPC plus configured stores)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec(deps.OpenAPISpec))
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	if deps.AuthSvc != nil {
		authHandler := NewAuthHandler(deps.AuthSvc)
		v1.POST("/auth/login", rl("auth_login"), authHandler.Login)
	}

	// --- Operator routes (JWT when login is enabled) ---
	api := v1.Group("")
	if deps.AuthSvc != nil {
		api.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}
	api.Use(middleware.AuditTrail(deps.Events))

	api.GET("/config", Config(deps.Config))

	walletHandler := NewWalletHandler(deps.Registry, deps.Config.DefaultBuy)
	wallets := api.Group("/wallets")
	{
		wallets.GET("", rl("read"), walletHandler.List)
		wallets.POST("/generate", rl("wallets"), walletHandler.Generate)
		wallets.POST("/import", rl("wallets"), walletHandler.Import)
		wallets.PUT("/overrides", rl("wallets"), walletHandler.UpdateOverrides)
		wallets.POST("/dev/init", rl("wallets"), walletHandler.InitDev)
		wallets.POST("/dev/promote", rl("wallets"), walletHandler.PromoteDev)
		wallets.DELETE("/:identity", rl("wallets"), walletHandler.Remove)
		wallets.PUT("/:identity/name", rl("wallets"), walletHandler.Rename)
		wallets.POST("/:identity/export", rl("secrets"), walletHandler.Export)
	}

	balanceHandler := NewBalanceHandler(deps.Balances, deps.State)
	api.GET("/balances", rl("read"), balanceHandler.Balances)
	api.GET("/state", rl("read"), balanceHandler.GetState)
	api.PATCH("/state", rl("wallets"), balanceHandler.PatchState)

	logHandler := NewLogHandler(deps.Events, deps.Heartbeat, deps.Logger)
	logs := api.Group("/logs")
	{
		logs.GET("", rl("read"), logHandler.Recent)
		logs.POST("", rl("read"), logHandler.Emit)
		logs.GET("/stream", logHandler.Stream)
		logs.GET("/ws", logHandler.WebSocket)
	}

	tradeHandler := NewTradeHandler(deps.Trades)
	trades := api.Group("/trades", rl("trades"))
	{
		trades.POST("/buy", tradeHandler.Buy)
		trades.POST("/sell", tradeHandler.Sell)
		trades.POST("/buy-one", tradeHandler.BuyOne)
		trades.POST("/sell-one", tradeHandler.SellOne)
		trades.POST("/collect-fees", tradeHandler.CollectFees)
		trades.POST("/create", tradeHandler.Create)
	}
	api.POST("/transfers/native", rl("transfers"), tradeHandler.TransferNative)
	api.POST("/sweeps/native", rl("transfers"), tradeHandler.SweepNative)
	api.POST("/transfers/token", rl("transfers"), tradeHandler.TransferToken)
	api.POST("/sweeps/token", rl("transfers"), tradeHandler.SweepToken)
	api.GET("/tokens/:mint", rl("read"), tradeHandler.TokenInfo)
	api.GET("/tx/:signature", rl("read"), tradeHandler.TxStatus)

	return r
}
