package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	RPC      RPCConfig      `mapstructure:"rpc"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Trading  TradingConfig  `mapstructure:"trading"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AES      AESConfig      `mapstructure:"aes"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// RPCConfig configures the Solana JSON-RPC backend.
type RPCConfig struct {
	URL            string          `mapstructure:"url"`
	MetadataURL    string          `mapstructure:"metadata_url"`
	Commitment     string          `mapstructure:"commitment"`
	MinGap         time.Duration   `mapstructure:"min_gap"`
	RetryBackoff   []time.Duration `mapstructure:"retry_backoff"`
	MaxRetries     int             `mapstructure:"max_retries"`
	ConfirmTimeout time.Duration   `mapstructure:"confirm_timeout"`
	PollInterval   time.Duration   `mapstructure:"poll_interval"`
}

// GatewayConfig configures the external trade-building backend.
type GatewayConfig struct {
	TradeURL   string          `mapstructure:"trade_url"`
	MinGap     time.Duration   `mapstructure:"min_gap"`
	Backoff    []time.Duration `mapstructure:"backoff"`
	MaxRetries int             `mapstructure:"max_retries"`
	Timeout    time.Duration   `mapstructure:"timeout"`
	// MaxRetryAfter caps how long one Retry-After may stall a worker.
	MaxRetryAfter time.Duration `mapstructure:"max_retry_after"`
}

// TradingConfig holds trade defaults. Amounts are in SOL.
type TradingConfig struct {
	DefaultBuy         float64       `mapstructure:"default_buy"`
	FeeBuffer          float64       `mapstructure:"fee_buffer"`
	Slippage           float64       `mapstructure:"slippage"`
	PriorityFee        float64       `mapstructure:"priority_fee"`
	Pool               string        `mapstructure:"pool"`
	CreatePool         string        `mapstructure:"create_pool"`
	DefaultConcurrency int           `mapstructure:"default_concurrency"`
	MaxConcurrency     int           `mapstructure:"max_concurrency"`
	BatchRetries       int           `mapstructure:"batch_retries"`
	SweepKeep          float64       `mapstructure:"sweep_keep"`
	AutoRefresh        time.Duration `mapstructure:"auto_refresh"` // UI balance poll hint
}

type CacheConfig struct {
	BalanceTTL time.Duration `mapstructure:"balance_ttl"`
	Fanout     int           `mapstructure:"fanout"`
}

// StorageConfig selects where the wallet registry and state documents live.
type StorageConfig struct {
	Driver       string `mapstructure:"driver"` // file, postgres
	RegistryFile string `mapstructure:"registry_file"`
	StateFile    string `mapstructure:"state_file"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection URL with credentials escaped.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex key; empty keeps secrets in plain base58
}

// AuthConfig protects the control API with an operator login.
type AuthConfig struct {
	Operator     string        `mapstructure:"operator"`
	PasswordHash string        `mapstructure:"password_hash"` // argon2id encoded
	JWTSecret    string        `mapstructure:"jwt_secret"`
	Expiry       time.Duration `mapstructure:"expiry"`
	Issuer       string        `mapstructure:"issuer"`
}

// Enabled reports whether operator login is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != "" && a.PasswordHash != ""
}

// Load reads configuration from a .env file, the config file and environment variables.
// Environment variables override file values. Prefix: MWT_.
// Nested keys use underscore: MWT_RPC_URL, MWT_TRADING_FEE_BUFFER, etc.
func Load(path string) (*Config, error) {
	// .env is optional; existing environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("MWT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment names used by earlier deployments of the bot.
	legacy := map[string][]string{
		"rpc.url":                     {"MWT_RPC_URL", "HELIUS_RPC_URL", "RPC_PROVIDER"},
		"trading.default_buy":         {"MWT_TRADING_DEFAULT_BUY", "DEFAULT_BUY_SOL"},
		"trading.fee_buffer":          {"MWT_TRADING_FEE_BUFFER", "FEE_BUFFER_SOL"},
		"trading.slippage":            {"MWT_TRADING_SLIPPAGE", "DEFAULT_SLIPPAGE_PERCENT"},
		"trading.priority_fee":        {"MWT_TRADING_PRIORITY_FEE", "DEFAULT_PRIORITY_FEE_SOL"},
		"trading.pool":                {"MWT_TRADING_POOL", "DEFAULT_POOL"},
		"trading.default_concurrency": {"MWT_TRADING_DEFAULT_CONCURRENCY", "DEFAULT_CONCURRENCY"},
		"trading.max_concurrency":     {"MWT_TRADING_MAX_CONCURRENCY", "MAX_CONCURRENCY"},
		"storage.state_file":          {"MWT_STORAGE_STATE_FILE", "STATE_FILE"},
	}
	for key, envs := range legacy {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("rpc.url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("rpc.commitment", "confirmed")
	v.SetDefault("rpc.min_gap", "170ms")
	v.SetDefault("rpc.retry_backoff", []string{"500ms", "1s", "2s"})
	v.SetDefault("rpc.max_retries", 3)
	v.SetDefault("rpc.confirm_timeout", "90s")
	v.SetDefault("rpc.poll_interval", "1200ms")

	v.SetDefault("gateway.trade_url", "https://pumpportal.fun/api/trade-local")
	v.SetDefault("gateway.min_gap", "300ms")
	v.SetDefault("gateway.backoff", []string{"500ms", "1s", "2s", "3s", "5s"})
	v.SetDefault("gateway.max_retries", 8)
	v.SetDefault("gateway.timeout", "30s")
	v.SetDefault("gateway.max_retry_after", "30s")

	v.SetDefault("trading.default_buy", 0.02)
	v.SetDefault("trading.fee_buffer", 0.03)
	v.SetDefault("trading.slippage", 10.0)
	v.SetDefault("trading.priority_fee", 0.00001)
	v.SetDefault("trading.pool", "auto")
	v.SetDefault("trading.create_pool", "pump")
	v.SetDefault("trading.default_concurrency", 4)
	v.SetDefault("trading.max_concurrency", 6)
	v.SetDefault("trading.batch_retries", 3)
	v.SetDefault("trading.sweep_keep", 0.01)
	v.SetDefault("trading.auto_refresh", "60s")

	v.SetDefault("cache.balance_ttl", "10s")
	v.SetDefault("cache.fanout", 6)

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.registry_file", "wallets/registry.json")
	v.SetDefault("storage.state_file", "data/state.json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "multiwallet_trader")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("aes.key", "")

	v.SetDefault("auth.operator", "operator")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.expiry", "12h")
	v.SetDefault("auth.issuer", "multiwallet-trader")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Trading.MaxConcurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("trading.max_concurrency must be >= 1, got %d", c.Trading.MaxConcurrency))
	}
	if c.Trading.DefaultConcurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("trading.default_concurrency must be >= 1, got %d", c.Trading.DefaultConcurrency))
	}
	if c.Trading.FeeBuffer < 0 {
		err = multierr.Append(err, fmt.Errorf("trading.fee_buffer must not be negative"))
	}
	if c.Gateway.MaxRetryAfter < 0 {
		err = multierr.Append(err, fmt.Errorf("gateway.max_retry_after must not be negative"))
	}
	if c.Gateway.MaxRetries < 0 {
		err = multierr.Append(err, fmt.Errorf("gateway.max_retries must not be negative"))
	}
	if len(c.Gateway.Backoff) == 0 {
		err = multierr.Append(err, fmt.Errorf("gateway.backoff must list at least one delay"))
	}
	if c.Cache.Fanout < 1 {
		err = multierr.Append(err, fmt.Errorf("cache.fanout must be >= 1, got %d", c.Cache.Fanout))
	}
	switch c.Storage.Driver {
	case "file", "postgres":
	default:
		err = multierr.Append(err, fmt.Errorf("storage.driver must be file or postgres, got %q", c.Storage.Driver))
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
