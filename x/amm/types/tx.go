package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the transaction-handling surface of the module.
type MsgServer interface {
	CreatePool(ctx context.Context, msg *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(ctx context.Context, msg *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(ctx context.Context, msg *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	SwapExactIn(ctx context.Context, msg *MsgSwapExactIn) (*MsgSwapExactInResponse, error)
	SwapExactOut(ctx context.Context, msg *MsgSwapExactOut) (*MsgSwapExactOutResponse, error)
	UpdateParams(ctx context.Context, msg *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
}

// MsgCreatePoolResponse reports the id assigned to the new pool.
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgAddLiquidityResponse reports the deposit actually taken and the
// shares minted for it.
type MsgAddLiquidityResponse struct {
	AmountA sdkmath.Int `json:"amount_a"`
	AmountB sdkmath.Int `json:"amount_b"`
	Shares  sdkmath.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse reports the withdrawal paid out.
type MsgRemoveLiquidityResponse struct {
	AmountA sdkmath.Int `json:"amount_a"`
	AmountB sdkmath.Int `json:"amount_b"`
}

// MsgSwapExactInResponse reports the per-hop amounts; the last entry is
// what the recipient received.
type MsgSwapExactInResponse struct {
	Amounts []sdkmath.Int `json:"amounts"`
}

// MsgSwapExactOutResponse reports the per-hop amounts; the first entry is
// what the trader paid.
type MsgSwapExactOutResponse struct {
	Amounts []sdkmath.Int `json:"amounts"`
}

// MsgUpdateParamsResponse is the MsgUpdateParams return.
type MsgUpdateParamsResponse struct{}

// MsgSetPausedResponse is the MsgSetPaused return.
type MsgSetPausedResponse struct{}

// SwapCallback is invoked by the low-level swap after output has been
// optimistically paid out and before the invariant check, giving flash
// borrowers one hook to repay in. Implementations must leave the pool
// vault funded so the fee-adjusted product does not shrink.
type SwapCallback interface {
	OnSwapReceived(ctx sdk.Context, poolID uint64, sender sdk.AccAddress, amountAOut, amountBOut sdkmath.Int, data []byte) error
}
