package keeper

import (
	"math/big"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricValue converts an Int to the nearest float64 for gauge and
// counter emission. Reserves and volumes may exceed 63 bits, so the
// conversion goes through big.Float rather than Int64, which panics
// past 2^63-1.
func metricValue(x sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(x.BigInt()).Float64()
	return f
}

// AMMMetrics holds all Prometheus metrics for the amm module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal   *prometheus.CounterVec
	SwapVolume   *prometheus.CounterVec
	RoutedSwaps  *prometheus.CounterVec
	SwapFailures *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	PoolShareSupply  *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal       prometheus.Gauge
	PoolCreationRate prometheus.Counter

	// Oracle metrics
	OracleUpdates prometheus.Counter
	TWAPValue     *prometheus.GaugeVec

	// Circuit breaker metrics
	PausedGauge prometheus.Gauge
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers amm metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "token_in", "token_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			RoutedSwaps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "routed_swaps_total",
					Help:      "Total multi-hop swaps by hop count",
				},
				[]string{"hops"},
			),
			SwapFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "swap_failures_total",
					Help:      "Swaps rejected, by reason",
				},
				[]string{"reason"},
			),

			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool_id", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pool_id", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			PoolShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pool_share_supply",
					Help:      "Outstanding pool shares per pool",
				},
				[]string{"pool_id"},
			),

			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Total number of liquidity pools",
				},
			),
			PoolCreationRate: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),

			OracleUpdates: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "oracle_updates_total",
					Help:      "Total TWAP oracle checkpoint operations",
				},
			),
			TWAPValue: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "twap_price",
					Help:      "Time-weighted average price",
				},
				[]string{"pool_id"},
			),

			PausedGauge: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "cascade",
					Subsystem: "amm",
					Name:      "paused",
					Help:      "Circuit breaker status (0=open, 1=paused)",
				},
			),
		}
	})
	return ammMetrics
}

// GetAMMMetrics returns the singleton amm metrics instance
func GetAMMMetrics() *AMMMetrics {
	if ammMetrics == nil {
		return NewAMMMetrics()
	}
	return ammMetrics
}
