package keeper

import (
	"context"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/amm/x/amm/types"
)

// Operation labels
const (
	opCreatePool      = "create_pool"
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	OperationsTotal  *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec

	SwapVolume      *prometheus.CounterVec
	SwapFeesCharged *prometheus.CounterVec

	PoolReserves  *prometheus.GaugeVec
	LPTokenSupply *prometheus.GaugeVec
	PoolsTotal    prometheus.Gauge
	PoolsCreated  prometheus.Counter
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "operations_total",
					Help:      "Total number of pool operations by outcome",
				},
				[]string{"op", "pair", "status"},
			),
			RejectionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "rejections_total",
					Help:      "Rejected pool operations by error class",
				},
				[]string{"op", "class"},
			),
			OperationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "operation_duration_seconds",
					Help:      "Time to apply a pool operation",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"op"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "swap",
					Name:      "volume_total",
					Help:      "Total swap input in base units",
				},
				[]string{"pair", "asset_in"},
			),
			SwapFeesCharged: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "swap",
					Name:      "fees_total",
					Help:      "Total swap fees retained by pools in base units",
				},
				[]string{"pair", "asset_in"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pair", "asset"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "liquidity_supply",
					Help:      "Outstanding liquidity shares per pool",
				},
				[]string{"pair"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "pool",
					Name:      "created_total",
					Help:      "Committed pool creations since start",
				},
			),
		}
	})
	return ammMetrics
}

func (m *AMMMetrics) recordSuccess(op string, pool types.LiquidityPool) {
	pair := pool.Assets.String()
	m.OperationsTotal.WithLabelValues(op, pair, "success").Inc()
	m.PoolReserves.WithLabelValues(pair, pool.Assets.AssetA.String()).Set(pool.ReserveA.Float64())
	m.PoolReserves.WithLabelValues(pair, pool.Assets.AssetB.String()).Set(pool.ReserveB.Float64())
	m.LPTokenSupply.WithLabelValues(pair).Set(pool.TotalLiquidity.Float64())
}

func (m *AMMMetrics) recordFailure(op string, pair types.TradingPair, err error) {
	m.OperationsTotal.WithLabelValues(op, pair.String(), "failed").Inc()
	m.RejectionsTotal.WithLabelValues(op, types.ClassifyError(err).String()).Inc()
}

// SyncMetrics refreshes the pool count from ctx and counts the pool creations
// among committed. Hosts call it after each commit.
func (k Keeper) SyncMetrics(ctx context.Context, committed sdk.Events) error {
	for _, ev := range committed {
		if ev.Type == types.EventTypeCreatePool {
			k.metrics.PoolsCreated.Inc()
		}
	}

	pools := 0
	err := k.IteratePools(ctx, func(types.LiquidityPool) bool {
		pools++
		return false
	})
	if err != nil {
		return err
	}
	k.metrics.PoolsTotal.Set(float64(pools))
	return nil
}
