package keeper

import (
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// mintProtocolFee mints the protocol's share of swap fees accrued since
// the last liquidity event. Growth in sqrt(k) beyond the checkpointed
// KLast is entirely fee income; the protocol takes the share dilution
// equivalent to one sixth of it:
//
//	minted = S * (rootK - rootKLast) / (rootK*5 + rootKLast)
//
// Runs on every add/remove before share amounts are computed, so
// providers entering and leaving both settle the pending fee first.
// Returns whether the protocol fee is switched on so callers know to
// refresh KLast afterwards.
func (k Keeper) mintProtocolFee(ctx sdk.Context, pool *types.Pool) (bool, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return false, err
	}
	feeOn := params.ProtocolFeeEnabled

	if !feeOn {
		if !pool.KLast.IsZero() {
			pool.KLast = sdkmath.ZeroInt()
		}
		return false, nil
	}
	if pool.KLast.IsZero() {
		return true, nil
	}

	rootK := types.Isqrt(pool.ReserveA.Mul(pool.ReserveB))
	rootKLast := types.Isqrt(pool.KLast)
	if rootK.LTE(rootKLast) {
		return true, nil
	}

	numerator := pool.TotalShares.Mul(rootK.Sub(rootKLast))
	denominator := rootK.MulRaw(types.ProtocolFeeGrowthFactor).Add(rootKLast)
	minted := numerator.Quo(denominator)
	if !minted.IsPositive() {
		return true, nil
	}

	collector, err := k.FeeCollectorAddress(ctx)
	if err != nil {
		return true, err
	}
	if err := k.mintShares(ctx, pool, collector, minted); err != nil {
		return true, err
	}

	k.Logger(ctx).Debug("protocol fee minted",
		"pool_id", pool.Id, "shares", minted.String(), "collector", collector.String())
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProtocolFee,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyRecipient, collector.String()),
			sdk.NewAttribute(types.AttributeKeyShares, minted.String()),
		),
	)
	return true, nil
}

// refreshKLast checkpoints k after a liquidity event, or clears it when
// the protocol fee is off so stale checkpoints never tax future growth.
func refreshKLast(pool *types.Pool, feeOn bool) {
	if feeOn {
		pool.KLast = pool.ReserveA.Mul(pool.ReserveB)
	} else {
		pool.KLast = sdkmath.ZeroInt()
	}
}
