package keeper

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// InitGenesis restores module state from a genesis snapshot. The
// snapshot is assumed Validate()d by the module layer.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	if genState.Paused {
		k.SetPaused(ctx, true)
	}

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
	}
	k.setPoolCount(ctx, genState.PoolCount)

	for _, rec := range genState.Liquidity {
		provider, err := sdk.AccAddressFromBech32(rec.Provider)
		if err != nil {
			return types.ErrInvalidAddress.Wrapf("liquidity provider: %s", err)
		}
		if err := k.setLiquidity(ctx, rec.PoolId, provider, rec.Shares); err != nil {
			return err
		}
	}

	for _, obs := range genState.Oracles {
		if err := k.SetOracle(ctx, obs); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis snapshots the full module state.
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	genState := &types.GenesisState{
		Params:    params,
		Pools:     k.GetAllPools(ctx),
		PoolCount: k.GetPoolCount(ctx),
		Oracles:   k.GetAllOracles(ctx),
		Paused:    k.IsPaused(ctx),
	}

	for _, pool := range genState.Pools {
		k.IterateLiquidity(ctx, pool.Id, func(provider sdk.AccAddress, shares sdkmath.Int) bool {
			genState.Liquidity = append(genState.Liquidity, types.LiquidityRecord{
				PoolId:   pool.Id,
				Provider: provider.String(),
				Shares:   shares,
			})
			return false
		})
	}
	return genState, nil
}
