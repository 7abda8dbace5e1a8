package keeper

import (
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// Quote converts an amount of one asset to the other at the current
// reserve ratio, with no fee. Used to match liquidity deposits.
func Quote(amountA, reserveA, reserveB sdkmath.Int) (sdkmath.Int, error) {
	if amountA.IsNil() || !amountA.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientInputAmount.Wrap("quote amount must be positive")
	}
	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrap("quote requires funded reserves")
	}
	return SafeMulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut returns the maximum output for a given input after the
// 0.3% fee: out = in*997*resOut / (resIn*1000 + in*997), rounded down
// in the pool's favor.
func GetAmountOut(amountIn, reserveIn, reserveOut sdkmath.Int) (sdkmath.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientInputAmount.Wrap("input must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrap("pool side is empty")
	}
	amountInWithFee := amountIn.MulRaw(types.FeeNumerator)
	denominator := reserveIn.MulRaw(types.FeeDenominator).Add(amountInWithFee)
	return SafeMulDiv(amountInWithFee, reserveOut, denominator)
}

// GetAmountIn returns the minimum input that yields a given output:
// in = resIn*out*1000 / ((resOut-out)*997) + 1, rounded up so the
// invariant check cannot fail by one unit.
func GetAmountIn(amountOut, reserveIn, reserveOut sdkmath.Int) (sdkmath.Int, error) {
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientOutputAmount.Wrap("output must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrap("pool side is empty")
	}
	if amountOut.GTE(reserveOut) {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrapf("output %s drains the %s reserve", amountOut, reserveOut)
	}
	numerator := reserveIn.Mul(amountOut).MulRaw(types.FeeDenominator)
	denominator := reserveOut.Sub(amountOut).MulRaw(types.FeeNumerator)
	amountIn, err := SafeMulDiv(numerator, sdkmath.OneInt(), denominator)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return amountIn.AddRaw(1), nil
}

// validatePath resolves a denom path to its pools, rejecting short
// paths, unknown pairs, paths longer than the hop cap, and routes that
// visit the same pool twice (which the per-pool lock would deadlock on
// anyway).
func (k Keeper) validatePath(ctx sdk.Context, path []string) ([]types.Pool, error) {
	if len(path) < 2 {
		return nil, types.ErrInvalidPath.Wrap("path needs at least two denoms")
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if uint32(len(path)-1) > params.MaxRouteHops {
		return nil, types.ErrInvalidPath.Wrapf("%d hops exceed the cap of %d", len(path)-1, params.MaxRouteHops)
	}

	pools := make([]types.Pool, 0, len(path)-1)
	seen := make(map[uint64]struct{}, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		if path[i] == path[i+1] {
			return nil, types.ErrInvalidPath.Wrapf("hop %d repeats denom %s", i, path[i])
		}
		pool, found := k.GetPoolByTokens(ctx, path[i], path[i+1])
		if !found {
			return nil, types.ErrPoolNotFound.Wrapf("no pool for %s/%s", path[i], path[i+1])
		}
		if _, dup := seen[pool.Id]; dup {
			return nil, types.ErrInvalidPath.Wrapf("route visits pool %d twice", pool.Id)
		}
		seen[pool.Id] = struct{}{}
		pools = append(pools, pool)
	}
	return pools, nil
}

// orient returns the reserves of pool viewed from tokenIn's side.
func orient(pool types.Pool, tokenIn string) (reserveIn, reserveOut sdkmath.Int, inIsA bool) {
	if tokenIn == pool.TokenA {
		return pool.ReserveA, pool.ReserveB, true
	}
	return pool.ReserveB, pool.ReserveA, false
}

// GetAmountsOut chains GetAmountOut along a path; amounts[0] is the
// input, the last entry the deliverable output.
func (k Keeper) GetAmountsOut(ctx sdk.Context, amountIn sdkmath.Int, path []string) ([]sdkmath.Int, error) {
	pools, err := k.validatePath(ctx, path)
	if err != nil {
		return nil, err
	}
	amounts := make([]sdkmath.Int, len(path))
	amounts[0] = amountIn
	for i, pool := range pools {
		reserveIn, reserveOut, _ := orient(pool, path[i])
		amounts[i+1], err = GetAmountOut(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// GetAmountsIn chains GetAmountIn backwards along a path; the last
// entry is the requested output, amounts[0] the necessary input.
func (k Keeper) GetAmountsIn(ctx sdk.Context, amountOut sdkmath.Int, path []string) ([]sdkmath.Int, error) {
	pools, err := k.validatePath(ctx, path)
	if err != nil {
		return nil, err
	}
	amounts := make([]sdkmath.Int, len(path))
	amounts[len(path)-1] = amountOut
	for i := len(pools) - 1; i >= 0; i-- {
		reserveIn, reserveOut, _ := orient(pools[i], path[i])
		amounts[i], err = GetAmountIn(amounts[i+1], reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// executeRoute runs the hops of a pre-quoted trade. Each hop's output is
// delivered straight into the next pool's vault, so intermediate tokens
// never touch the trader's account.
func (k Keeper) executeRoute(ctx sdk.Context, trader sdk.AccAddress, path []string, pools []types.Pool, amounts []sdkmath.Int, recipient sdk.AccAddress) error {
	firstVault := k.PoolAddress(pools[0].Id)
	funding := sdk.NewCoins(sdk.NewCoin(path[0], amounts[0]))
	if err := k.bankKeeper.SendCoins(ctx, trader, firstVault, funding); err != nil {
		return types.ErrInsufficientInputAmount.Wrapf("route funding: %s", err)
	}

	for i, pool := range pools {
		hopRecipient := recipient
		if i < len(pools)-1 {
			hopRecipient = k.PoolAddress(pools[i+1].Id)
		}
		amountAOut, amountBOut := sdkmath.ZeroInt(), sdkmath.ZeroInt()
		if path[i+1] == pool.TokenA {
			amountAOut = amounts[i+1]
		} else {
			amountBOut = amounts[i+1]
		}
		if err := k.Swap(ctx, trader, pool.Id, amountAOut, amountBOut, hopRecipient, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) emitRouteEvent(ctx sdk.Context, trader sdk.AccAddress, path []string, amounts []sdkmath.Int, recipient sdk.AccAddress) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRouteSwap,
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyPath, strings.Join(path, ">")),
			sdk.NewAttribute(types.AttributeKeyHops, strconv.Itoa(len(path)-1)),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amounts[0].String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amounts[len(amounts)-1].String()),
		),
	)
	GetAMMMetrics().RoutedSwaps.WithLabelValues(strconv.Itoa(len(path) - 1)).Inc()
}

// SwapExactIn trades a fixed input along path for at least amountOutMin
// of the final denom. The whole route commits or nothing does.
func (k Keeper) SwapExactIn(
	ctx sdk.Context,
	trader sdk.AccAddress,
	path []string,
	amountIn, amountOutMin sdkmath.Int,
	recipient sdk.AccAddress,
	deadline int64,
) ([]sdkmath.Int, error) {
	if err := k.errIfPaused(ctx); err != nil {
		return nil, err
	}
	if err := checkDeadline(ctx, deadline); err != nil {
		return nil, err
	}

	var amounts []sdkmath.Int
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		pools, err := k.validatePath(ctx, path)
		if err != nil {
			return err
		}
		amounts, err = k.GetAmountsOut(ctx, amountIn, path)
		if err != nil {
			return err
		}
		if amounts[len(amounts)-1].LT(amountOutMin) {
			return types.ErrInsufficientOutputAmount.Wrapf(
				"route yields %s, minimum is %s", amounts[len(amounts)-1], amountOutMin)
		}
		if err := k.executeRoute(ctx, trader, path, pools, amounts, recipient); err != nil {
			return err
		}
		k.emitRouteEvent(ctx, trader, path, amounts, recipient)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapExactOut trades at most amountInMax of the first denom for exactly
// amountOut of the final one.
func (k Keeper) SwapExactOut(
	ctx sdk.Context,
	trader sdk.AccAddress,
	path []string,
	amountOut, amountInMax sdkmath.Int,
	recipient sdk.AccAddress,
	deadline int64,
) ([]sdkmath.Int, error) {
	if err := k.errIfPaused(ctx); err != nil {
		return nil, err
	}
	if err := checkDeadline(ctx, deadline); err != nil {
		return nil, err
	}

	var amounts []sdkmath.Int
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		pools, err := k.validatePath(ctx, path)
		if err != nil {
			return err
		}
		amounts, err = k.GetAmountsIn(ctx, amountOut, path)
		if err != nil {
			return err
		}
		if amounts[0].GT(amountInMax) {
			return types.ErrExcessiveInputAmount.Wrapf(
				"route costs %s, maximum is %s", amounts[0], amountInMax)
		}
		if err := k.executeRoute(ctx, trader, path, pools, amounts, recipient); err != nil {
			return err
		}
		k.emitRouteEvent(ctx, trader, path, amounts, recipient)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapExactInSupportingFeeOnTransfer routes a fixed input without
// trusting pre-quoted amounts: each hop reads what actually landed in
// the vault and quotes from there, so denoms that take a transfer cut
// still trade correctly. Only the final delivery is slippage-checked.
func (k Keeper) SwapExactInSupportingFeeOnTransfer(
	ctx sdk.Context,
	trader sdk.AccAddress,
	path []string,
	amountIn, amountOutMin sdkmath.Int,
	recipient sdk.AccAddress,
	deadline int64,
) (sdkmath.Int, error) {
	if err := k.errIfPaused(ctx); err != nil {
		return sdkmath.Int{}, err
	}
	if err := checkDeadline(ctx, deadline); err != nil {
		return sdkmath.Int{}, err
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientInputAmount.Wrap("input must be positive")
	}

	received := sdkmath.ZeroInt()
	err := k.atomically(ctx, func(ctx sdk.Context) error {
		pools, err := k.validatePath(ctx, path)
		if err != nil {
			return err
		}

		outDenom := path[len(path)-1]
		recipientBefore := k.bankKeeper.GetBalance(ctx, recipient, outDenom).Amount

		firstVault := k.PoolAddress(pools[0].Id)
		funding := sdk.NewCoins(sdk.NewCoin(path[0], amountIn))
		if err := k.bankKeeper.SendCoins(ctx, trader, firstVault, funding); err != nil {
			return types.ErrInsufficientInputAmount.Wrapf("route funding: %s", err)
		}

		for i, pool := range pools {
			reserveIn, reserveOut, inIsA := orient(pool, path[i])
			// What actually arrived, after any transfer cut.
			hopIn := k.PoolBalance(ctx, pool.Id, path[i]).Sub(reserveIn)
			hopOut, err := GetAmountOut(hopIn, reserveIn, reserveOut)
			if err != nil {
				return err
			}

			hopRecipient := recipient
			if i < len(pools)-1 {
				hopRecipient = k.PoolAddress(pools[i+1].Id)
			}
			amountAOut, amountBOut := sdkmath.ZeroInt(), sdkmath.ZeroInt()
			if inIsA {
				amountBOut = hopOut
			} else {
				amountAOut = hopOut
			}
			if err := k.Swap(ctx, trader, pool.Id, amountAOut, amountBOut, hopRecipient, nil, nil); err != nil {
				return err
			}
		}

		received = k.bankKeeper.GetBalance(ctx, recipient, outDenom).Amount.Sub(recipientBefore)
		if received.LT(amountOutMin) {
			return types.ErrInsufficientOutputAmount.Wrapf(
				"delivered %s, minimum is %s", received, amountOutMin)
		}
		k.emitRouteEvent(ctx, trader, path, []sdkmath.Int{amountIn, received}, recipient)
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return received, nil
}
