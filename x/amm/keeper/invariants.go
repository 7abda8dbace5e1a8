package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "vault-backing", VaultBackingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reserve-bounds", ReserveBoundsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "locked-liquidity", LockedLiquidityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "fee-checkpoint", FeeCheckpointInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := VaultBackingInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = ReserveBoundsInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = LockedLiquidityInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return FeeCheckpointInvariant(k)(ctx)
	}
}

// VaultBackingInvariant checks that every pool's vault holds at least
// the stored reserves. Each pool has its own vault, so the comparison
// is exact per pool rather than summed per denom.
func VaultBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pool := range k.GetAllPools(ctx) {
			balanceA := k.PoolBalance(ctx, pool.Id, pool.TokenA)
			balanceB := k.PoolBalance(ctx, pool.Id, pool.TokenB)

			if balanceA.LT(pool.ReserveA) {
				count++
				msg += fmt.Sprintf("pool %d: vault %s balance (%s) < reserve (%s)\n",
					pool.Id, pool.TokenA, balanceA.String(), pool.ReserveA.String())
			}
			if balanceB.LT(pool.ReserveB) {
				count++
				msg += fmt.Sprintf("pool %d: vault %s balance (%s) < reserve (%s)\n",
					pool.Id, pool.TokenB, balanceB.String(), pool.ReserveB.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "vault-backing",
			fmt.Sprintf("found %d under-backed pool vaults\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that per-provider share records sum to
// each pool's recorded total.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pool := range k.GetAllPools(ctx) {
			sum := sdkmath.ZeroInt()
			k.IterateLiquidity(ctx, pool.Id, func(_ sdk.AccAddress, shares sdkmath.Int) bool {
				sum = sum.Add(shares)
				return false
			})
			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: share records sum to %s, total is %s\n",
					pool.Id, sum.String(), pool.TotalShares.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with inconsistent share supply\n%s", count, msg),
		), broken
	}
}

// ReserveBoundsInvariant checks structural reserve constraints: nothing
// negative, nothing past the 112-bit price bound, and funded pools fund
// both sides.
func ReserveBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pool := range k.GetAllPools(ctx) {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %s\n", pool.Id, err)
				continue
			}
			if pool.ReserveA.IsPositive() != pool.ReserveB.IsPositive() {
				count++
				msg += fmt.Sprintf("pool %d: one-sided reserves (%s, %s)\n",
					pool.Id, pool.ReserveA.String(), pool.ReserveB.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserve-bounds",
			fmt.Sprintf("found %d pools with invalid reserves\n%s", count, msg),
		), broken
	}
}

// LockedLiquidityInvariant checks that every funded pool still carries
// the permanently locked minimum shares on the module account.
func LockedLiquidityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		locked := sdkmath.NewInt(types.MinimumLiquidity)
		for _, pool := range k.GetAllPools(ctx) {
			if pool.TotalShares.IsZero() {
				continue
			}
			held := k.GetLiquidity(ctx, pool.Id, k.ModuleAddress())
			if held.LT(locked) {
				count++
				msg += fmt.Sprintf("pool %d: module holds %s of %s locked shares\n",
					pool.Id, held.String(), locked.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "locked-liquidity",
			fmt.Sprintf("found %d pools missing locked liquidity\n%s", count, msg),
		), broken
	}
}

// FeeCheckpointInvariant checks that no pool's fee checkpoint exceeds its
// current reserve product. Between liquidity events only swaps touch the
// reserves and the fee makes the product grow, so a checkpoint above the
// product means state was mutated outside the keeper's paths.
func FeeCheckpointInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pool := range k.GetAllPools(ctx) {
			if pool.KLast.IsZero() {
				continue
			}
			if pool.KLast.GT(pool.ReserveA.Mul(pool.ReserveB)) {
				count++
				msg += fmt.Sprintf("pool %d: fee checkpoint %s exceeds reserve product\n",
					pool.Id, pool.KLast.String())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "fee-checkpoint",
			fmt.Sprintf("found %d pools with a stale fee checkpoint\n%s", count, msg),
		), broken
	}
}
