package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/cascadefi/cascade/testutil/keeper"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)

	// Build up real state: two funded pools, an extra provider, trades
	// that move prices, and a closed oracle window.
	poolID := keepertest.CreateFundedPool(t, k, bank, ctx, "uatom", "uusdc",
		sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000))
	keepertest.CreateFundedPool(t, k, bank, ctx, "uosmo", "uusdc",
		sdkmath.NewInt(500_000), sdkmath.NewInt(2_000_000))

	provider := sdk.AccAddress([]byte("second-provider-00000"))
	keepertest.FundAccount(bank, provider,
		sdk.NewCoin("uatom", sdkmath.NewInt(250_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(250_000)),
	)
	_, _, _, err := k.AddLiquidity(ctx, provider, poolID,
		sdkmath.NewInt(250_000), sdkmath.NewInt(250_000),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(), 0)
	require.NoError(t, err)

	require.NoError(t, k.InitOracle(ctx, poolID, 60))

	ctx = ctx.WithBlockTime(ctx.BlockTime().Add(90 * time.Second))
	keepertest.FundAccount(bank, trader, sdk.NewCoin("uatom", sdkmath.NewInt(50_000)))
	_, err = k.SwapExactIn(ctx, trader, []string{"uatom", "uusdc"},
		sdkmath.NewInt(50_000), sdkmath.ZeroInt(), trader, 0)
	require.NoError(t, err)
	require.NoError(t, k.UpdateOracle(ctx, poolID))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Pools, 2)
	require.Equal(t, uint64(2), exported.PoolCount)
	require.Len(t, exported.Oracles, 1)

	// Replaying the export into a fresh keeper reproduces it exactly.
	k2, _, ctx2 := keepertest.AMMKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	reexported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)

	pool, found := k2.GetPool(ctx2, poolID)
	require.True(t, found)
	require.Equal(t, k2.GetLiquidity(ctx2, poolID, provider), sdkmath.NewInt(250_000))
	require.True(t, pool.ReserveA.GT(sdkmath.NewInt(1_000_000)))
}
