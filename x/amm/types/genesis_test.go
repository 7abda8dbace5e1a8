package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/cascadefi/cascade/x/amm/types"
)

func fundedPool(id uint64, tokenA, tokenB string, reserve, shares int64) types.Pool {
	pool := types.NewPool(id, tokenA, tokenB, "")
	pool.ReserveA = sdkmath.NewInt(reserve)
	pool.ReserveB = sdkmath.NewInt(reserve)
	pool.TotalShares = sdkmath.NewInt(shares)
	return pool
}

func TestGenesisStateValidate(t *testing.T) {
	provider := sdk.AccAddress([]byte("genesis-provider-0000")).String()

	valid := func() types.GenesisState {
		return types.GenesisState{
			Params:    types.DefaultParams(),
			Pools:     []types.Pool{fundedPool(0, "uatom", "uusdc", 4000, 4000)},
			PoolCount: 1,
			Liquidity: []types.LiquidityRecord{
				{PoolId: 0, Provider: provider, Shares: sdkmath.NewInt(4000)},
			},
		}
	}

	require.NoError(t, valid().Validate())
	require.NoError(t, types.DefaultGenesis().Validate())

	t.Run("duplicate pool id", func(t *testing.T) {
		gs := valid()
		gs.Pools = append(gs.Pools, fundedPool(0, "uosmo", "uusdc", 100, 100))
		gs.PoolCount = 2
		require.ErrorIs(t, gs.Validate(), types.ErrInvalidPoolState)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		gs := valid()
		dup := fundedPool(1, "uatom", "uusdc", 100, 100)
		gs.Pools = append(gs.Pools, dup)
		gs.PoolCount = 2
		require.ErrorIs(t, gs.Validate(), types.ErrPoolExists)
	})

	t.Run("pool id beyond count", func(t *testing.T) {
		gs := valid()
		gs.PoolCount = 0
		require.ErrorIs(t, gs.Validate(), types.ErrInvalidPoolState)
	})

	t.Run("share records must sum to total", func(t *testing.T) {
		gs := valid()
		gs.Liquidity[0].Shares = sdkmath.NewInt(3999)
		require.ErrorIs(t, gs.Validate(), types.ErrInvalidPoolState)
	})

	t.Run("liquidity for unknown pool", func(t *testing.T) {
		gs := valid()
		gs.Liquidity = append(gs.Liquidity, types.LiquidityRecord{
			PoolId: 7, Provider: provider, Shares: sdkmath.NewInt(1),
		})
		require.ErrorIs(t, gs.Validate(), types.ErrPoolNotFound)
	})

	t.Run("oracle for unknown pool", func(t *testing.T) {
		gs := valid()
		gs.Oracles = []types.OracleObservation{{PoolId: 9, WindowSeconds: 60}}
		require.ErrorIs(t, gs.Validate(), types.ErrPoolNotFound)
	})

	t.Run("reserves without shares", func(t *testing.T) {
		gs := valid()
		gs.Pools[0].TotalShares = sdkmath.ZeroInt()
		gs.Liquidity = nil
		require.ErrorIs(t, gs.Validate(), types.ErrInvalidPoolState)
	})

	t.Run("non-canonical asset order", func(t *testing.T) {
		gs := valid()
		gs.Pools[0].TokenA, gs.Pools[0].TokenB = gs.Pools[0].TokenB, gs.Pools[0].TokenA
		require.ErrorIs(t, gs.Validate(), types.ErrInvalidPoolState)
	})
}
