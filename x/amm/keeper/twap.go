package keeper

import (
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// Price accumulation follows the classic cumulative-price design: each
// pool carries two UQ112.112 accumulator words that grow by spot price
// times elapsed seconds. Timestamps are uint32 and wrap around 2^32;
// accumulators wrap around 2^256. Consumers only ever subtract two
// readings, so both wraps cancel out as long as a window never spans a
// full uint32 cycle.

// blockTimestamp reduces the block time to the uint32 the accumulators
// are clocked by.
func blockTimestamp(ctx sdk.Context) uint32 {
	return uint32(uint64(ctx.BlockTime().Unix()) % (1 << 32))
}

// elapsedSeconds returns now - last with uint32 wraparound.
func elapsedSeconds(now, last uint32) uint32 {
	return now - last
}

// accumulatePrices folds the time since the last update into the pool's
// price accumulators, using the reserves as they stood over that span.
// Callers invoke it before mutating reserves. The first update of a
// fresh pool only stamps the clock.
func (k Keeper) accumulatePrices(ctx sdk.Context, pool *types.Pool) error {
	now := blockTimestamp(ctx)
	elapsed := elapsedSeconds(now, pool.BlockTimestampLast)
	if elapsed == 0 {
		return nil
	}

	if pool.ReserveA.IsPositive() && pool.ReserveB.IsPositive() {
		priceA, err := types.FractionUQ112(pool.ReserveB, pool.ReserveA)
		if err != nil {
			return err
		}
		priceB, err := types.FractionUQ112(pool.ReserveA, pool.ReserveB)
		if err != nil {
			return err
		}

		cumA, err := pool.PriceACumulativeWord()
		if err != nil {
			return err
		}
		cumB, err := pool.PriceBCumulativeWord()
		if err != nil {
			return err
		}
		cumA.Add(cumA, types.UQMulUint64(priceA, uint64(elapsed)))
		cumB.Add(cumB, types.UQMulUint64(priceB, uint64(elapsed)))
		pool.SetCumulatives(cumA, cumB)
	}

	pool.BlockTimestampLast = now
	return nil
}

// CurrentCumulativePrices returns the accumulators extrapolated to the
// current block time without writing anything, so readers in the same
// block as the last trade still see time-weighted values.
func (k Keeper) CurrentCumulativePrices(ctx sdk.Context, poolID uint64) (priceA, priceB *big.Int, timestamp uint32, err error) {
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return nil, nil, 0, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}

	cumA, err := pool.PriceACumulativeWord()
	if err != nil {
		return nil, nil, 0, err
	}
	cumB, err := pool.PriceBCumulativeWord()
	if err != nil {
		return nil, nil, 0, err
	}

	now := blockTimestamp(ctx)
	elapsed := elapsedSeconds(now, pool.BlockTimestampLast)
	if elapsed > 0 && pool.ReserveA.IsPositive() && pool.ReserveB.IsPositive() {
		spotA, err := types.FractionUQ112(pool.ReserveB, pool.ReserveA)
		if err != nil {
			return nil, nil, 0, err
		}
		spotB, err := types.FractionUQ112(pool.ReserveA, pool.ReserveB)
		if err != nil {
			return nil, nil, 0, err
		}
		cumA.Add(cumA, types.UQMulUint64(spotA, uint64(elapsed)))
		cumB.Add(cumB, types.UQMulUint64(spotB, uint64(elapsed)))
	}

	return types.WrapCumulative(cumA), types.WrapCumulative(cumB), now, nil
}
