package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/cascadefi/cascade/x/amm/types"
)

var (
	testAddr      = sdk.AccAddress([]byte("test-address-00000000")).String()
	testRecipient = sdk.AccAddress([]byte("test-recipient-000000")).String()
)

func TestMsgCreatePoolValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     *types.MsgCreatePool
		wantErr error
	}{
		{
			name: "valid",
			msg:  types.NewMsgCreatePool(testAddr, "uatom", "uusdc"),
		},
		{
			name:    "bad creator",
			msg:     types.NewMsgCreatePool("not-bech32", "uatom", "uusdc"),
			wantErr: types.ErrInvalidAddress,
		},
		{
			name:    "identical denoms",
			msg:     types.NewMsgCreatePool(testAddr, "uatom", "uatom"),
			wantErr: types.ErrIdenticalAssets,
		},
		{
			name:    "empty denom",
			msg:     types.NewMsgCreatePool(testAddr, "", "uusdc"),
			wantErr: types.ErrInvalidAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMsgAddLiquidityValidateBasic(t *testing.T) {
	valid := func() *types.MsgAddLiquidity {
		return types.NewMsgAddLiquidity(testAddr, 1,
			sdkmath.NewInt(1000), sdkmath.NewInt(1000),
			sdkmath.NewInt(900), sdkmath.NewInt(900), 0)
	}

	require.NoError(t, valid().ValidateBasic())

	msg := valid()
	msg.AmountADesired = sdkmath.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidInput)

	msg = valid()
	msg.AmountAMin = sdkmath.NewInt(2000)
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidInput)

	msg = valid()
	msg.Deadline = -1
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidInput)
}

func TestMsgRemoveLiquidityValidateBasic(t *testing.T) {
	valid := func() *types.MsgRemoveLiquidity {
		return types.NewMsgRemoveLiquidity(testAddr, 1,
			sdkmath.NewInt(500), sdkmath.ZeroInt(), sdkmath.ZeroInt(), 0)
	}

	require.NoError(t, valid().ValidateBasic())

	msg := valid()
	msg.Shares = sdkmath.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInsufficientShares)

	msg = valid()
	msg.Provider = "nope"
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidAddress)
}

func TestMsgSwapExactInValidateBasic(t *testing.T) {
	valid := func() *types.MsgSwapExactIn {
		return types.NewMsgSwapExactIn(testAddr, []string{"uatom", "uusdc"},
			sdkmath.NewInt(100), sdkmath.NewInt(90), testRecipient, 0)
	}

	require.NoError(t, valid().ValidateBasic())

	msg := valid()
	msg.Path = []string{"uatom"}
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidPath)

	msg = valid()
	msg.Path = []string{"uatom", "uatom"}
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidPath)

	msg = valid()
	msg.AmountIn = sdkmath.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInsufficientInputAmount)

	msg = valid()
	msg.Recipient = ""
	require.NoError(t, msg.ValidateBasic())
}

func TestMsgSwapExactOutValidateBasic(t *testing.T) {
	valid := func() *types.MsgSwapExactOut {
		return types.NewMsgSwapExactOut(testAddr, []string{"uatom", "uosmo", "uusdc"},
			sdkmath.NewInt(100), sdkmath.NewInt(120), testRecipient, 0)
	}

	require.NoError(t, valid().ValidateBasic())

	msg := valid()
	msg.AmountOut = sdkmath.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInsufficientOutputAmount)

	msg = valid()
	msg.AmountInMax = sdkmath.ZeroInt()
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidInput)
}

func TestMsgUpdateParamsValidateBasic(t *testing.T) {
	msg := types.NewMsgUpdateParams(testAddr, types.DefaultParams())
	require.NoError(t, msg.ValidateBasic())

	bad := types.DefaultParams()
	bad.TwapWindowSeconds = 0
	msg = types.NewMsgUpdateParams(testAddr, bad)
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidInput)

	msg = types.NewMsgUpdateParams("nope", types.DefaultParams())
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidAddress)
}

func TestMsgsSatisfyProtoContract(t *testing.T) {
	msgs := []sdk.Msg{
		types.NewMsgCreatePool(testAddr, "uatom", "uusdc"),
		types.NewMsgAddLiquidity(testAddr, 1,
			sdkmath.NewInt(1000), sdkmath.NewInt(1000),
			sdkmath.NewInt(1), sdkmath.NewInt(1), 0),
		types.NewMsgRemoveLiquidity(testAddr, 1,
			sdkmath.NewInt(500), sdkmath.NewInt(1), sdkmath.NewInt(1), 0),
		types.NewMsgSwapExactIn(testAddr, []string{"uatom", "uusdc"},
			sdkmath.NewInt(100), sdkmath.NewInt(1), testRecipient, 0),
		types.NewMsgSwapExactOut(testAddr, []string{"uatom", "uusdc"},
			sdkmath.NewInt(100), sdkmath.NewInt(200), testRecipient, 0),
		types.NewMsgUpdateParams(testAddr, types.DefaultParams()),
		types.NewMsgSetPaused(testAddr, true),
	}
	for _, msg := range msgs {
		require.NotEmpty(t, msg.String())
		msg.Reset()
	}

	created := types.NewMsgCreatePool(testAddr, "uatom", "uusdc")
	created.Reset()
	require.Empty(t, created.Creator)
	require.Empty(t, created.TokenA)
}
