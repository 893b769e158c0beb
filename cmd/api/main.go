package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"multiwallet-trader/config"
	"multiwallet-trader/docs"
	"multiwallet-trader/internal/adapter/chain"
	"multiwallet-trader/internal/adapter/gateway"
	"multiwallet-trader/internal/adapter/http/dto"
	httpHandler "multiwallet-trader/internal/adapter/http/handler"
	fileStorage "multiwallet-trader/internal/adapter/storage/file"
	pgStorage "multiwallet-trader/internal/adapter/storage/postgres"
	redisStorage "multiwallet-trader/internal/adapter/storage/redis"
	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/internal/metrics"
	"multiwallet-trader/internal/service"
	"multiwallet-trader/pkg/logger"
	"multiwallet-trader/pkg/ratelimit"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "hash-password: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load(os.Getenv("MWT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting Multiwallet Trader")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server exited")
}

// hashPassword prints the Argon2id hash for auth.password_hash. The password is
// read from the first argument or, without one, from stdin.
func hashPassword(args []string) error {
	var password string
	if len(args) > 0 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("empty password")
	}

	hash, err := service.NewArgon2HashService().Hash(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func run(cfg *config.Config, log zerolog.Logger) (err error) {
	ctx := context.Background()
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	events := service.NewEventBus(service.DefaultEventCapacity, logger.Component(log, "events"))

	// Rate-limited backends
	gatewayLimiter := ratelimit.New("gateway", cfg.Gateway.MinGap, ratelimit.WithWaitObserver(metrics.ObserveLimiterWait))
	chainLimiter := ratelimit.New("rpc", cfg.RPC.MinGap, ratelimit.WithWaitObserver(metrics.ObserveLimiterWait))

	chainClient := chain.NewClient(chain.Config{
		URL:            cfg.RPC.URL,
		MetadataURL:    cfg.RPC.MetadataURL,
		Commitment:     cfg.RPC.Commitment,
		RetryBackoff:   cfg.RPC.RetryBackoff,
		MaxRetries:     cfg.RPC.MaxRetries,
		ConfirmTimeout: cfg.RPC.ConfirmTimeout,
		PollInterval:   cfg.RPC.PollInterval,
	}, chainLimiter, logger.Component(log, "chain"))
	tradeGateway := gateway.NewPumpPortal(gateway.Config{
		TradeURL:   cfg.Gateway.TradeURL,
		Backoff:    cfg.Gateway.Backoff,
		MaxRetries: cfg.Gateway.MaxRetries,
		Timeout:    cfg.Gateway.Timeout,

		MaxRetryAfter: cfg.Gateway.MaxRetryAfter,
	}, gatewayLimiter, events, logger.Component(log, "gateway"))
	signer := chain.NewSigner()
	keyring := chain.NewKeyring()

	healthCheckers := []ports.HealthChecker{chainClient}

	// Storage
	var (
		walletStore ports.WalletStore
		stateStore  ports.StateStore
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, func() error { pool.Close(); return nil })
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			return err
		}
		walletStore = pgStorage.NewWalletStore(pool)
		stateStore = pgStorage.NewStateStore(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	default:
		walletStore = fileStorage.NewRegistryStore(cfg.Storage.RegistryFile)
		stateStore = fileStorage.NewStateStore(cfg.Storage.StateFile, log)
		log.Info().
			Str("registry", cfg.Storage.RegistryFile).
			Str("state", cfg.Storage.StateFile).
			Msg("Using file storage")
	}

	if cfg.AES.Key != "" {
		encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
		if err != nil {
			return fmt.Errorf("initialize encryption service: %w", err)
		}
		walletStore = service.NewSealedWalletStore(walletStore, encSvc)
		log.Info().Msg("Wallet secrets are encrypted at rest")
	} else {
		log.Warn().Msg("aes.key is not set, wallet secrets are stored in plain base58")
	}

	var (
		snapshots      ports.SnapshotStore
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, rdb.Close)
		snapshots = redisStorage.NewSnapshotStore(rdb, redisStorage.DefaultSnapshotTTL)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Core services
	registry := service.NewWalletRegistry(walletStore, keyring, events, logger.Component(log, "registry"))
	stateSvc := service.NewStateService(stateStore, events, logger.Component(log, "state"))
	balances := service.NewBalanceCache(chainClient, registry, snapshots, events, service.BalanceCacheConfig{
		TTL:    cfg.Cache.BalanceTTL,
		Fanout: cfg.Cache.Fanout,
	}, logger.Component(log, "balances"))
	balances.OnRefresh(stateSvc.RecordBalances)

	executor := service.NewBatchExecutor(tradeGateway, chainClient, signer, events, service.ExecutorConfig{
		FeeBuffer:      cfg.Trading.FeeBuffer,
		MaxConcurrency: cfg.Trading.MaxConcurrency,
		ConfirmTimeout: cfg.RPC.ConfirmTimeout,
	}, logger.Component(log, "executor"))
	trades := service.NewTradeService(service.TradeDeps{
		Executor: executor,
		Registry: registry,
		Balances: balances,
		State:    stateSvc,
		Gateway:  tradeGateway,
		Chain:    chainClient,
		Signer:   signer,
		Keys:     keyring,
		Events:   events,
	}, service.TradeConfig{
		DefaultBuy:         cfg.Trading.DefaultBuy,
		Slippage:           cfg.Trading.Slippage,
		PriorityFee:        cfg.Trading.PriorityFee,
		Pool:               cfg.Trading.Pool,
		CreatePool:         cfg.Trading.CreatePool,
		DefaultConcurrency: cfg.Trading.DefaultConcurrency,
		BatchRetries:       cfg.Trading.BatchRetries,
		SweepKeep:          cfg.Trading.SweepKeep,
		ConfirmTimeout:     cfg.RPC.ConfirmTimeout,
	}, logger.Component(log, "trades"))

	var (
		authSvc  ports.AuthService
		tokenSvc ports.TokenService
	)
	if cfg.Auth.Enabled() {
		jwtSvc := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.Expiry, cfg.Auth.Issuer)
		impl, err := service.NewAuthService(cfg.Auth.Operator, cfg.Auth.PasswordHash, service.NewArgon2HashService(), jwtSvc, log)
		if err != nil {
			return fmt.Errorf("initialize auth: %w", err)
		}
		authSvc, tokenSvc = impl, jwtSvc
		log.Info().Str("operator", cfg.Auth.Operator).Msg("Operator login enabled")
	} else {
		log.Warn().Msg("Operator login disabled, bind the server to a trusted interface")
	}

	doc, err := registry.List(ctx)
	if err != nil {
		return fmt.Errorf("load wallet registry: %w", err)
	}
	log.Info().Bool("dev", doc.Dev != nil).Int("buyers", len(doc.Buyers)).Msg("Wallet registry loaded")

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Registry:       registry,
		Balances:       balances,
		State:          stateSvc,
		Trades:         trades,
		Events:         events,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Config: dto.ConfigResponse{
			DefaultBuy:         cfg.Trading.DefaultBuy,
			FeeBuffer:          cfg.Trading.FeeBuffer,
			Slippage:           cfg.Trading.Slippage,
			PriorityFee:        cfg.Trading.PriorityFee,
			Pool:               cfg.Trading.Pool,
			DefaultConcurrency: cfg.Trading.DefaultConcurrency,
			MaxConcurrency:     cfg.Trading.MaxConcurrency,
			SweepKeep:          cfg.Trading.SweepKeep,
			AutoRefreshSeconds: int(cfg.Trading.AutoRefresh / time.Second),
			AuthEnabled:        authSvc != nil,
		},
		OpenAPISpec: docs.OpenAPI,
		Logger:      log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	events.Publish(domain.CategoryUI, "server started", map[string]string{"addr": addr})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	// Batches run detached from request contexts; the timeout bounds how long
	// in-flight confirmations may hold the process.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
