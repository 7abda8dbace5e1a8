package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// GetOracle returns the TWAP observation for a pool.
func (k Keeper) GetOracle(ctx context.Context, poolID uint64) (types.OracleObservation, bool) {
	store := k.getStore(ctx)
	bz := store.Get(OracleKey(poolID))
	if bz == nil {
		return types.OracleObservation{}, false
	}
	var obs types.OracleObservation
	if err := json.Unmarshal(bz, &obs); err != nil {
		return types.OracleObservation{}, false
	}
	return obs, true
}

// SetOracle writes a TWAP observation.
func (k Keeper) SetOracle(ctx context.Context, obs types.OracleObservation) error {
	bz, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("SetOracle: marshal pool %d: %w", obs.PoolId, err)
	}
	k.getStore(ctx).Set(OracleKey(obs.PoolId), bz)
	return nil
}

// GetAllOracles returns every stored observation.
func (k Keeper) GetAllOracles(ctx context.Context) []types.OracleObservation {
	var all []types.OracleObservation
	k.IteratePools(ctx, func(pool types.Pool) bool {
		if obs, found := k.GetOracle(ctx, pool.Id); found {
			all = append(all, obs)
		}
		return false
	})
	return all
}

// InitOracle starts tracking a pool's time-weighted average price over a
// fixed window. A zero window takes the parameter default. The pool must
// already hold liquidity so the first window has a defined price.
func (k Keeper) InitOracle(ctx sdk.Context, poolID uint64, window uint32) error {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if !pool.ReserveA.IsPositive() || !pool.ReserveB.IsPositive() {
		return types.ErrInsufficientLiquidity.Wrapf("pool %d has no liquidity to observe", poolID)
	}
	if _, exists := k.GetOracle(ctx, poolID); exists {
		return types.ErrOracleExists.Wrapf("pool %d", poolID)
	}
	if window == 0 {
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}
		window = params.TwapWindowSeconds
	}

	cumA, cumB, now, err := k.CurrentCumulativePrices(ctx, poolID)
	if err != nil {
		return err
	}
	return k.SetOracle(ctx, types.NewOracleObservation(pool, window, cumA, cumB, now))
}

// UpdateOracle closes the current window: it reads the accumulators,
// derives the average price over the elapsed span and re-anchors the
// observation. Fails with ErrPeriodNotElapsed until a full window has
// passed, which is what makes the average manipulation-resistant.
func (k Keeper) UpdateOracle(ctx sdk.Context, poolID uint64) error {
	obs, found := k.GetOracle(ctx, poolID)
	if !found {
		return types.ErrOracleNotInitialized.Wrapf("pool %d", poolID)
	}

	cumA, cumB, now, err := k.CurrentCumulativePrices(ctx, poolID)
	if err != nil {
		return err
	}
	elapsed := elapsedSeconds(now, obs.BlockTimestampLast)
	if elapsed < obs.WindowSeconds {
		return types.ErrPeriodNotElapsed.Wrapf(
			"%d of %d seconds elapsed for pool %d", elapsed, obs.WindowSeconds, poolID)
	}

	lastA, err := obs.PriceACumulativeWord()
	if err != nil {
		return err
	}
	lastB, err := obs.PriceBCumulativeWord()
	if err != nil {
		return err
	}
	avgA, err := types.UQDivUint64(types.CumulativeDelta(cumA, lastA), uint64(elapsed))
	if err != nil {
		return err
	}
	avgB, err := types.UQDivUint64(types.CumulativeDelta(cumB, lastB), uint64(elapsed))
	if err != nil {
		return err
	}

	obs.Checkpoint(cumA, cumB, avgA, avgB, now)
	if err := k.SetOracle(ctx, obs); err != nil {
		return err
	}

	k.Logger(ctx).Debug("oracle updated", "pool_id", poolID, "elapsed", elapsed)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOracleUpdate,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
		),
	)

	metrics := GetAMMMetrics()
	metrics.OracleUpdates.Inc()
	metrics.TWAPValue.WithLabelValues(strconv.FormatUint(poolID, 10)).Set(metricValue(types.DecodeUQ112(avgA)))
	return nil
}

// ConsultOracle prices amountIn of tokenIn at the last completed
// window's average. Before the first completed window it returns zero,
// mirroring an accumulator that has not yet produced an average.
func (k Keeper) ConsultOracle(ctx sdk.Context, poolID uint64, tokenIn string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return sdkmath.Int{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	if !pool.HasAsset(tokenIn) {
		return sdkmath.Int{}, types.ErrInvalidAsset.Wrapf("denom %s not in pool %d", tokenIn, poolID)
	}
	if amountIn.IsNil() || amountIn.IsNegative() {
		return sdkmath.Int{}, types.ErrInvalidInput.Wrap("consult amount must be non-negative")
	}

	obs, found := k.GetOracle(ctx, poolID)
	if !found {
		return sdkmath.Int{}, types.ErrOracleNotInitialized.Wrapf("pool %d", poolID)
	}
	if !obs.Updated {
		return sdkmath.ZeroInt(), nil
	}

	avg, err := obs.PriceAAverageWord()
	if tokenIn == pool.TokenB {
		avg, err = obs.PriceBAverageWord()
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	return types.DecodeUQ112(types.UQMulInt(avg, amountIn)), nil
}
