package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/cascadefi/cascade/testutil/keeper"
	"github.com/cascadefi/cascade/x/amm/keeper"
	"github.com/cascadefi/cascade/x/amm/types"
)

func TestMsgServerFullFlow(t *testing.T) {
	k, bank, ctx := keepertest.AMMKeeper(t)
	ms := keeper.NewMsgServerImpl(*k)

	creator := sdk.AccAddress([]byte("msg-test-creator-0000"))
	keepertest.FundAccount(bank, creator,
		sdk.NewCoin("uatom", sdkmath.NewInt(1_000_000)),
		sdk.NewCoin("uusdc", sdkmath.NewInt(1_000_000)),
	)

	created, err := ms.CreatePool(ctx, &types.MsgCreatePool{
		Creator: creator.String(),
		TokenA:  "uatom",
		TokenB:  "uusdc",
	})
	require.NoError(t, err)

	added, err := ms.AddLiquidity(ctx, &types.MsgAddLiquidity{
		Provider:       creator.String(),
		PoolId:         created.PoolId,
		AmountADesired: sdkmath.NewInt(1_000_000),
		AmountBDesired: sdkmath.NewInt(1_000_000),
		AmountAMin:     sdkmath.ZeroInt(),
		AmountBMin:     sdkmath.ZeroInt(),
	})
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(999_000), added.Shares)

	keepertest.FundAccount(bank, trader, sdk.NewCoin("uatom", sdkmath.NewInt(100_000)))
	swapped, err := ms.SwapExactIn(ctx, &types.MsgSwapExactIn{
		Trader:       trader.String(),
		Path:         []string{"uatom", "uusdc"},
		AmountIn:     sdkmath.NewInt(100_000),
		AmountOutMin: sdkmath.NewInt(90_000),
	})
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(90_661), swapped.Amounts[len(swapped.Amounts)-1])

	removed, err := ms.RemoveLiquidity(ctx, &types.MsgRemoveLiquidity{
		Provider:   creator.String(),
		PoolId:     created.PoolId,
		Shares:     sdkmath.NewInt(999_000),
		AmountAMin: sdkmath.ZeroInt(),
		AmountBMin: sdkmath.ZeroInt(),
	})
	require.NoError(t, err)
	require.True(t, removed.AmountA.IsPositive())
	require.True(t, removed.AmountB.IsPositive())
}

func TestMsgServerAuthorityGate(t *testing.T) {
	k, _, ctx := keepertest.AMMKeeper(t)
	ms := keeper.NewMsgServerImpl(*k)

	intruder := sdk.AccAddress([]byte("not-the-gov-account-0")).String()

	_, err := ms.SetPaused(ctx, &types.MsgSetPaused{Authority: intruder, Paused: true})
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.False(t, k.IsPaused(ctx))

	_, err = ms.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: intruder,
		Params:    types.DefaultParams(),
	})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = ms.SetPaused(ctx, &types.MsgSetPaused{
		Authority: keepertest.TestAuthority,
		Paused:    true,
	})
	require.NoError(t, err)
	require.True(t, k.IsPaused(ctx))

	params := types.DefaultParams()
	params.MaxRouteHops = 3
	_, err = ms.UpdateParams(ctx, &types.MsgUpdateParams{
		Authority: keepertest.TestAuthority,
		Params:    params,
	})
	require.NoError(t, err)

	got, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(3), got.MaxRouteHops)
}
