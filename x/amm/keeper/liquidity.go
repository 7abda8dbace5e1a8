package keeper

import (
	"context"
	"strconv"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// GetLiquidity returns the shares provider holds in a pool.
func (k Keeper) GetLiquidity(ctx context.Context, poolID uint64, provider sdk.AccAddress) sdkmath.Int {
	store := k.getStore(ctx)
	bz := store.Get(LiquidityKey(poolID, provider))
	if bz == nil {
		return sdkmath.ZeroInt()
	}
	var shares sdkmath.Int
	if err := shares.Unmarshal(bz); err != nil {
		return sdkmath.ZeroInt()
	}
	return shares
}

func (k Keeper) setLiquidity(ctx context.Context, poolID uint64, provider sdk.AccAddress, shares sdkmath.Int) error {
	store := k.getStore(ctx)
	key := LiquidityKey(poolID, provider)
	if shares.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := shares.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// IterateLiquidity walks every share record of a pool.
func (k Keeper) IterateLiquidity(ctx context.Context, poolID uint64, cb func(provider sdk.AccAddress, shares sdkmath.Int) bool) {
	store := k.getStore(ctx)
	prefix := LiquidityKeyByPoolPrefix(poolID)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		provider := sdk.AccAddress(iterator.Key()[len(prefix):])
		var shares sdkmath.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		if cb(provider, shares) {
			break
		}
	}
}

// mintShares credits new shares to an account and grows the pool total.
func (k Keeper) mintShares(ctx sdk.Context, pool *types.Pool, to sdk.AccAddress, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return types.ErrInsufficientLiquidityMinted.Wrap("cannot mint non-positive shares")
	}
	held := k.GetLiquidity(ctx, pool.Id, to)
	if err := k.setLiquidity(ctx, pool.Id, to, held.Add(amount)); err != nil {
		return err
	}
	pool.TotalShares = pool.TotalShares.Add(amount)
	return nil
}

// burnShares debits shares from an account and shrinks the pool total.
func (k Keeper) burnShares(ctx sdk.Context, pool *types.Pool, from sdk.AccAddress, amount sdkmath.Int) error {
	held := k.GetLiquidity(ctx, pool.Id, from)
	if held.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("account holds %s of %s requested", held, amount)
	}
	if err := k.setLiquidity(ctx, pool.Id, from, held.Sub(amount)); err != nil {
		return err
	}
	pool.TotalShares = pool.TotalShares.Sub(amount)
	return nil
}

// AddLiquidity deposits both pool assets in ratio and mints shares.
// Desired amounts cap the deposit; whichever side the current price
// scales down must still clear its minimum. The very first deposit sets
// the price and burns MinimumLiquidity shares to the module account so
// the pool can never be fully drained.
//
// Realized deposit amounts are measured as vault balance deltas, which
// keeps the accounting honest for denoms that take a transfer cut.
func (k Keeper) AddLiquidity(
	ctx sdk.Context,
	provider sdk.AccAddress,
	poolID uint64,
	amountADesired, amountBDesired, amountAMin, amountBMin sdkmath.Int,
	deadline int64,
) (amountA, amountB, shares sdkmath.Int, err error) {
	if err := k.errIfPaused(ctx); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}
	if err := checkDeadline(ctx, deadline); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}

	err = k.withPoolLock(ctx, poolID, func(ctx sdk.Context) error {
		pool, found := k.GetPool(ctx, poolID)
		if !found {
			return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
		}

		if err := k.accumulatePrices(ctx, &pool); err != nil {
			return err
		}

		amountA, amountB = amountADesired, amountBDesired
		if pool.ReserveA.IsPositive() && pool.ReserveB.IsPositive() {
			amountBOptimal, err := Quote(amountADesired, pool.ReserveA, pool.ReserveB)
			if err != nil {
				return err
			}
			if amountBOptimal.LTE(amountBDesired) {
				if amountBOptimal.LT(amountBMin) {
					return types.ErrInsufficientBAmount.Wrapf("matched %s below minimum %s", amountBOptimal, amountBMin)
				}
				amountA, amountB = amountADesired, amountBOptimal
			} else {
				amountAOptimal, err := Quote(amountBDesired, pool.ReserveB, pool.ReserveA)
				if err != nil {
					return err
				}
				if amountAOptimal.GT(amountADesired) {
					return types.ErrInvalidInput.Wrap("deposit cannot match pool ratio")
				}
				if amountAOptimal.LT(amountAMin) {
					return types.ErrInsufficientAAmount.Wrapf("matched %s below minimum %s", amountAOptimal, amountAMin)
				}
				amountA, amountB = amountAOptimal, amountBDesired
			}
		}

		feeOn, err := k.mintProtocolFee(ctx, &pool)
		if err != nil {
			return err
		}

		vault := k.PoolAddress(pool.Id)
		balABefore := k.PoolBalance(ctx, pool.Id, pool.TokenA)
		balBBefore := k.PoolBalance(ctx, pool.Id, pool.TokenB)

		deposit := sdk.NewCoins(
			sdk.NewCoin(pool.TokenA, amountA),
			sdk.NewCoin(pool.TokenB, amountB),
		)
		if err := k.bankKeeper.SendCoins(ctx, provider, vault, deposit); err != nil {
			return types.ErrInsufficientLiquidity.Wrapf("deposit transfer: %s", err)
		}

		receivedA := k.PoolBalance(ctx, pool.Id, pool.TokenA).Sub(balABefore)
		receivedB := k.PoolBalance(ctx, pool.Id, pool.TokenB).Sub(balBBefore)
		if !receivedA.IsPositive() || !receivedB.IsPositive() {
			return types.ErrInsufficientInputAmount.Wrap("deposit arrived empty")
		}

		if pool.TotalShares.IsZero() {
			minted := types.Isqrt(receivedA.Mul(receivedB)).SubRaw(types.MinimumLiquidity)
			if !minted.IsPositive() {
				return types.ErrInsufficientLiquidityMinted.Wrap("first deposit below minimum liquidity")
			}
			// Permanently locked floor held by the module account.
			if err := k.mintShares(ctx, &pool, k.ModuleAddress(), sdkmath.NewInt(types.MinimumLiquidity)); err != nil {
				return err
			}
			shares = minted
		} else {
			byA, err := SafeMulDiv(receivedA, pool.TotalShares, pool.ReserveA)
			if err != nil {
				return err
			}
			byB, err := SafeMulDiv(receivedB, pool.TotalShares, pool.ReserveB)
			if err != nil {
				return err
			}
			shares = sdkmath.MinInt(byA, byB)
		}
		if err := k.mintShares(ctx, &pool, provider, shares); err != nil {
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
		refreshKLast(&pool, feeOn)

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		amountA, amountB = receivedA, receivedB
		k.Logger(ctx).Info("liquidity added",
			"pool_id", pool.Id, "provider", provider.String(),
			"amount_a", amountA.String(), "amount_b", amountB.String(), "shares", shares.String())
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)

		metrics := GetAMMMetrics()
		poolLabel := strconv.FormatUint(pool.Id, 10)
		metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.TokenA).Add(metricValue(amountA))
		metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.TokenB).Add(metricValue(amountB))
		metrics.PoolShareSupply.WithLabelValues(poolLabel).Set(metricValue(pool.TotalShares))
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}
	return amountA, amountB, shares, nil
}

// RemoveLiquidity burns shares for a pro-rata slice of the vault's live
// balances, so accumulated dust is paid out alongside reserves. It stays
// available while the module is paused.
func (k Keeper) RemoveLiquidity(
	ctx sdk.Context,
	provider sdk.AccAddress,
	poolID uint64,
	shares, amountAMin, amountBMin sdkmath.Int,
	deadline int64,
) (amountA, amountB sdkmath.Int, err error) {
	if err := checkDeadline(ctx, deadline); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	err = k.withPoolLock(ctx, poolID, func(ctx sdk.Context) error {
		pool, found := k.GetPool(ctx, poolID)
		if !found {
			return types.ErrPoolNotFound.Wrapf("pool %d", poolID)
		}

		if err := k.accumulatePrices(ctx, &pool); err != nil {
			return err
		}
		feeOn, err := k.mintProtocolFee(ctx, &pool)
		if err != nil {
			return err
		}

		balanceA := k.PoolBalance(ctx, pool.Id, pool.TokenA)
		balanceB := k.PoolBalance(ctx, pool.Id, pool.TokenB)

		amountA, err = SafeMulDiv(shares, balanceA, pool.TotalShares)
		if err != nil {
			return err
		}
		amountB, err = SafeMulDiv(shares, balanceB, pool.TotalShares)
		if err != nil {
			return err
		}
		if !amountA.IsPositive() || !amountB.IsPositive() {
			return types.ErrInsufficientLiquidityBurned.Wrap("shares too small for a payout")
		}
		if amountA.LT(amountAMin) {
			return types.ErrInsufficientAAmount.Wrapf("payout %s below minimum %s", amountA, amountAMin)
		}
		if amountB.LT(amountBMin) {
			return types.ErrInsufficientBAmount.Wrapf("payout %s below minimum %s", amountB, amountBMin)
		}

		if err := k.burnShares(ctx, &pool, provider, shares); err != nil {
			return err
		}

		withdrawal := sdk.NewCoins(
			sdk.NewCoin(pool.TokenA, amountA),
			sdk.NewCoin(pool.TokenB, amountB),
		)
		if err := k.bankKeeper.SendCoins(ctx, k.PoolAddress(pool.Id), provider, withdrawal); err != nil {
			return types.ErrInsufficientLiquidity.Wrapf("withdrawal transfer: %s", err)
		}

		pool.ReserveA = k.PoolBalance(ctx, pool.Id, pool.TokenA)
		pool.ReserveB = k.PoolBalance(ctx, pool.Id, pool.TokenB)
		refreshKLast(&pool, feeOn)

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		k.Logger(ctx).Info("liquidity removed",
			"pool_id", pool.Id, "provider", provider.String(),
			"amount_a", amountA.String(), "amount_b", amountB.String(), "shares", shares.String())
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)

		metrics := GetAMMMetrics()
		poolLabel := strconv.FormatUint(pool.Id, 10)
		metrics.LiquidityRemoved.WithLabelValues(poolLabel, pool.TokenA).Add(metricValue(amountA))
		metrics.LiquidityRemoved.WithLabelValues(poolLabel, pool.TokenB).Add(metricValue(amountB))
		metrics.PoolShareSupply.WithLabelValues(poolLabel).Set(metricValue(pool.TotalShares))
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return amountA, amountB, nil
}
