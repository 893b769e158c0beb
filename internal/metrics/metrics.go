package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mwt_trades_total", Help: "Trade items finished, by side and outcome"},
		[]string{"side", "outcome"},
	)
	TradeAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mwt_trade_attempts_total", Help: "Build/sign/submit attempts per trade item"},
		[]string{"side"},
	)
	BatchInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "mwt_batch_items_inflight", Help: "Trade items currently executing"},
	)
	GatewayRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mwt_gateway_retries_total", Help: "Trade gateway retries by HTTP status"},
		[]string{"status"},
	)
	RPCRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mwt_rpc_requests_total", Help: "Chain RPC calls by method and outcome"},
		[]string{"method", "outcome"},
	)
	BalanceRefreshSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mwt_balance_refresh_seconds",
			Help:    "Duration of full balance refreshes",
			Buckets: prometheus.DefBuckets,
		},
	)
	BalanceCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mwt_balance_cache_total", Help: "Balance cache lookups by result"},
		[]string{"result"},
	)
	HTTPRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mwt_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	LimiterWaitSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mwt_limiter_wait_seconds",
			Help:    "Time spent waiting for a backend pacing slot",
			Buckets: []float64{0, .05, .1, .2, .3, .5, 1, 2, 5},
		},
		[]string{"limiter"},
	)
	EventSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "mwt_event_subscribers", Help: "Live event stream subscribers"},
	)
)

func init() {
	prometheus.MustRegister(
		TradesTotal, TradeAttempts, BatchInflight, GatewayRetries, RPCRequests,
		BalanceRefreshSeconds, BalanceCacheHits, HTTPRequests, LimiterWaitSeconds, EventSubscribers,
	)
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveLimiterWait is a ratelimit wait observer.
func ObserveLimiterWait(name string, wait time.Duration) {
	LimiterWaitSeconds.WithLabelValues(name).Observe(wait.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
