package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// IsPaused reports whether the module-wide circuit breaker is set.
func (k Keeper) IsPaused(ctx context.Context) bool {
	return k.getStore(ctx).Has(PausedKey)
}

// SetPaused flips the circuit breaker. While paused, swaps, liquidity
// additions and pool creation are rejected; withdrawals stay open so
// providers are never trapped.
func (k Keeper) SetPaused(ctx sdk.Context, paused bool) {
	store := k.getStore(ctx)
	if paused {
		store.Set(PausedKey, []byte{1})
	} else {
		store.Delete(PausedKey)
	}

	gauge := 0.0
	if paused {
		gauge = 1.0
	}
	GetAMMMetrics().PausedGauge.Set(gauge)

	k.Logger(ctx).Info("circuit breaker set", "paused", paused)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePaused,
			sdk.NewAttribute(types.AttributeKeyPaused, boolString(paused)),
		),
	)
}

// errIfPaused gates the state-changing entry points.
func (k Keeper) errIfPaused(ctx context.Context) error {
	if k.IsPaused(ctx) {
		return types.ErrModulePaused
	}
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
