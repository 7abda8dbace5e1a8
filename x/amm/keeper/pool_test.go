package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/cascadefi/cascade/testutil/keeper"
	"github.com/cascadefi/cascade/x/amm/types"
)

var creator = sdk.AccAddress([]byte("creator-address-00000"))

func TestCreatePool(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	pool, err := k.CreatePool(ctx, creator, "uusdc", "uatom")
	require.NoError(t, err)
	require.Equal(t, uint64(0), pool.Id)
	// Assets are stored in canonical order regardless of argument order.
	require.Equal(t, "uatom", pool.TokenA)
	require.Equal(t, "uusdc", pool.TokenB)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())
	require.Equal(t, creator.String(), pool.Creator)
	require.Equal(t, uint64(1), k.GetPoolCount(ctx))

	second, err := k.CreatePool(ctx, creator, "uosmo", "uatom")
	require.NoError(t, err)
	require.Equal(t, uint64(1), second.Id)
}

func TestCreatePoolRejectsDuplicatePair(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	_, err := k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.NoError(t, err)

	_, err = k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.ErrorIs(t, err, types.ErrPoolExists)

	// Reversed order is the same pair.
	_, err = k.CreatePool(ctx, creator, "uusdc", "uatom")
	require.ErrorIs(t, err, types.ErrPoolExists)
}

func TestCreatePoolValidation(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	_, err := k.CreatePool(ctx, creator, "uatom", "uatom")
	require.ErrorIs(t, err, types.ErrIdenticalAssets)

	_, err = k.CreatePool(ctx, creator, "", "uusdc")
	require.ErrorIs(t, err, types.ErrInvalidAsset)
}

func TestCreatePoolRespectsMaxPools(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	params.MaxPools = 1
	require.NoError(t, k.SetParams(ctx, params))

	_, err = k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.NoError(t, err)

	_, err = k.CreatePool(ctx, creator, "uosmo", "uusdc")
	require.ErrorIs(t, err, types.ErrMaxPoolsReached)
}

func TestCreatePoolWhilePaused(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	k.SetPaused(ctx, true)
	_, err := k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.ErrorIs(t, err, types.ErrModulePaused)

	k.SetPaused(ctx, false)
	_, err = k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.NoError(t, err)
}

func TestGetPoolByTokens(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)

	poolID := keepertest.CreateFundedPool(t, k, bank, ctx, "uatom", "uusdc",
		sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000))

	forward, found := k.GetPoolByTokens(ctx, "uatom", "uusdc")
	require.True(t, found)
	require.Equal(t, poolID, forward.Id)

	reversed, found := k.GetPoolByTokens(ctx, "uusdc", "uatom")
	require.True(t, found)
	require.Equal(t, poolID, reversed.Id)

	_, found = k.GetPoolByTokens(ctx, "uatom", "uosmo")
	require.False(t, found)
}

func TestGetAllPools(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)

	require.Empty(t, k.GetAllPools(ctx))

	_, err := k.CreatePool(ctx, creator, "uatom", "uusdc")
	require.NoError(t, err)
	_, err = k.CreatePool(ctx, creator, "uosmo", "uusdc")
	require.NoError(t, err)

	pools := k.GetAllPools(ctx)
	require.Len(t, pools, 2)
	require.Equal(t, uint64(0), pools[0].Id)
	require.Equal(t, uint64(1), pools[1].Id)
}
