package keeper

import (
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// Swap is the low-level exchange primitive. Output is paid out of the
// vault first, the optional callback then runs with the funds in hand,
// and only afterwards does the pool check what came back:
//
//	(balA*1000 - inA*3) * (balB*1000 - inB*3) >= resA * resB * 1000^2
//
// which is the constant-product rule with a 0.3% fee charged on actual
// inputs. Inputs are inferred from vault balance growth, so callers
// pre-fund the vault (routed trades) or repay inside the callback
// (flash swaps); either way denoms that take a transfer cut are priced
// on what actually arrived.
func (k Keeper) Swap(
	ctx sdk.Context,
	sender sdk.AccAddress,
	poolID uint64,
	amountAOut, amountBOut sdkmath.Int,
	recipient sdk.AccAddress,
	callback types.SwapCallback,
	callbackData []byte,
) error {
	if err := k.errIfPaused(ctx); err != nil {
		return err
	}
	if amountAOut.IsNil() || amountBOut.IsNil() || amountAOut.IsNegative() || amountBOut.IsNegative() {
		return types.ErrInvalidInput.Wrap("output amounts must be non-negative")
	}
	if !amountAOut.IsPositive() && !amountBOut.IsPositive() {
		return types.ErrInsufficientOutputAmount.Wrap("no output requested")
	}

	return k.withPoolLock(ctx, poolID, func(ctx sdk.Context) error {
		pool, found := k.GetPool(ctx, poolID)
		if !found {
			return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
		}
		if amountAOut.GTE(pool.ReserveA) || amountBOut.GTE(pool.ReserveB) {
			return types.ErrInsufficientLiquidity.Wrapf(
				"pool %d cannot pay %s %s and %s %s", pool.Id,
				amountAOut, pool.TokenA, amountBOut, pool.TokenB)
		}

		// Fold elapsed time into the accumulators at pre-trade reserves.
		if err := k.accumulatePrices(ctx, &pool); err != nil {
			return err
		}

		vault := k.PoolAddress(pool.Id)
		var payout sdk.Coins
		if amountAOut.IsPositive() {
			payout = payout.Add(sdk.NewCoin(pool.TokenA, amountAOut))
		}
		if amountBOut.IsPositive() {
			payout = payout.Add(sdk.NewCoin(pool.TokenB, amountBOut))
		}
		if err := k.bankKeeper.SendCoins(ctx, vault, recipient, payout); err != nil {
			return types.ErrInsufficientLiquidity.Wrapf("payout transfer: %s", err)
		}

		if callback != nil {
			if err := callback.OnSwapReceived(ctx, pool.Id, sender, amountAOut, amountBOut, callbackData); err != nil {
				return err
			}
		}

		balanceA := k.PoolBalance(ctx, pool.Id, pool.TokenA)
		balanceB := k.PoolBalance(ctx, pool.Id, pool.TokenB)

		amountAIn := inputFromBalance(balanceA, pool.ReserveA, amountAOut)
		amountBIn := inputFromBalance(balanceB, pool.ReserveB, amountBOut)
		if !amountAIn.IsPositive() && !amountBIn.IsPositive() {
			return types.ErrInsufficientInputAmount.Wrap("nothing was paid in")
		}

		adjustedA := balanceA.MulRaw(types.FeeDenominator).Sub(amountAIn.MulRaw(types.FeeDenominator - types.FeeNumerator))
		adjustedB := balanceB.MulRaw(types.FeeDenominator).Sub(amountBIn.MulRaw(types.FeeDenominator - types.FeeNumerator))
		feeScale := sdkmath.NewInt(types.FeeDenominator * types.FeeDenominator)
		if adjustedA.Mul(adjustedB).LT(pool.ReserveA.Mul(pool.ReserveB).Mul(feeScale)) {
			return types.ErrInvariantViolation.Wrapf("pool %d product shrank after fees", pool.Id)
		}

		pool.ReserveA = balanceA
		pool.ReserveB = balanceB
		if err := ValidateReserve(pool.ReserveA); err != nil {
			return err
		}
		if err := ValidateReserve(pool.ReserveB); err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		k.Logger(ctx).Debug("swap executed",
			"pool_id", pool.Id, "sender", sender.String(),
			"amount_a_in", amountAIn.String(), "amount_b_in", amountBIn.String(),
			"amount_a_out", amountAOut.String(), "amount_b_out", amountBOut.String())
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyTrader, sender.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmountAIn, amountAIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountBIn, amountBIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountAOut, amountAOut.String()),
				sdk.NewAttribute(types.AttributeKeyAmountBOut, amountBOut.String()),
			),
		)

		metrics := GetAMMMetrics()
		poolLabel := strconv.FormatUint(pool.Id, 10)
		metrics.SwapsTotal.WithLabelValues(poolLabel, pool.TokenA, pool.TokenB).Inc()
		if amountAIn.IsPositive() {
			metrics.SwapVolume.WithLabelValues(poolLabel, pool.TokenA).Add(metricValue(amountAIn))
		}
		if amountBIn.IsPositive() {
			metrics.SwapVolume.WithLabelValues(poolLabel, pool.TokenB).Add(metricValue(amountBIn))
		}
		metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenA).Set(metricValue(pool.ReserveA))
		metrics.PoolReserves.WithLabelValues(poolLabel, pool.TokenB).Set(metricValue(pool.ReserveB))
		return nil
	})
}

// inputFromBalance recovers how much was paid in: anything above what
// the reserve should have dropped to after the payout.
func inputFromBalance(balance, reserve, amountOut sdkmath.Int) sdkmath.Int {
	expected := reserve.Sub(amountOut)
	if balance.GT(expected) {
		return balance.Sub(expected)
	}
	return sdkmath.ZeroInt()
}

// Sync forces stored reserves to match the vault's live balances,
// folding in any tokens donated directly to the vault.
func (k Keeper) Sync(ctx sdk.Context, poolID uint64) error {
	return k.withPoolLock(ctx, poolID, func(ctx sdk.Context) error {
		pool, found := k.GetPool(ctx, poolID)
		if !found {
			return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
		}
		if err := k.accumulatePrices(ctx, &pool); err != nil {
			return err
		}

		pool.ReserveA = k.PoolBalance(ctx, pool.Id, pool.TokenA)
		pool.ReserveB = k.PoolBalance(ctx, pool.Id, pool.TokenB)
		if err := ValidateReserve(pool.ReserveA); err != nil {
			return err
		}
		if err := ValidateReserve(pool.ReserveB); err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSync,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyReserveA, pool.ReserveA.String()),
				sdk.NewAttribute(types.AttributeKeyReserveB, pool.ReserveB.String()),
			),
		)
		return nil
	})
}

// Skim pays any vault balance above the stored reserves to recipient,
// the counterpart of Sync for recovering over-deliveries.
func (k Keeper) Skim(ctx sdk.Context, poolID uint64, recipient sdk.AccAddress) error {
	return k.withPoolLock(ctx, poolID, func(ctx sdk.Context) error {
		pool, found := k.GetPool(ctx, poolID)
		if !found {
			return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
		}

		excessA := k.PoolBalance(ctx, pool.Id, pool.TokenA).Sub(pool.ReserveA)
		excessB := k.PoolBalance(ctx, pool.Id, pool.TokenB).Sub(pool.ReserveB)

		var excess sdk.Coins
		if excessA.IsPositive() {
			excess = excess.Add(sdk.NewCoin(pool.TokenA, excessA))
		}
		if excessB.IsPositive() {
			excess = excess.Add(sdk.NewCoin(pool.TokenB, excessB))
		}
		if excess.IsZero() {
			return nil
		}
		if err := k.bankKeeper.SendCoins(ctx, k.PoolAddress(pool.Id), recipient, excess); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSkim,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			),
		)
		return nil
	})
}
