package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	pool, err := ms.Keeper.CreatePool(ctx, creator, msg.TokenA, msg.TokenB)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	return &types.MsgCreatePoolResponse{
		PoolId: pool.Id,
	}, nil
}

// AddLiquidity handles adding liquidity to an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid provider address: %w", err)
	}

	amountA, amountB, shares, err := ms.Keeper.AddLiquidity(
		ctx, provider, msg.PoolId,
		msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin,
		msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
		Shares:  shares,
	}, nil
}

// RemoveLiquidity handles removing liquidity from a pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid provider address: %w", err)
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(
		ctx, provider, msg.PoolId,
		msg.Shares, msg.AmountAMin, msg.AmountBMin,
		msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// SwapExactIn handles fixed-input swaps, routed or single-hop
func (ms msgServer) SwapExactIn(goCtx context.Context, msg *types.MsgSwapExactIn) (*types.MsgSwapExactInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactIn: validate: %w", err)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: invalid trader address: %w", err)
	}
	recipient := trader
	if msg.Recipient != "" {
		recipient, err = sdk.AccAddressFromBech32(msg.Recipient)
		if err != nil {
			return nil, fmt.Errorf("SwapExactIn: invalid recipient address: %w", err)
		}
	}

	if msg.FeeOnTransfer {
		received, err := ms.Keeper.SwapExactInSupportingFeeOnTransfer(
			ctx, trader, msg.Path, msg.AmountIn, msg.AmountOutMin, recipient, msg.Deadline)
		if err != nil {
			return nil, fmt.Errorf("SwapExactIn: %w", err)
		}
		return &types.MsgSwapExactInResponse{
			Amounts: []sdkmath.Int{msg.AmountIn, received},
		}, nil
	}

	amounts, err := ms.Keeper.SwapExactIn(
		ctx, trader, msg.Path, msg.AmountIn, msg.AmountOutMin, recipient, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("SwapExactIn: %w", err)
	}
	return &types.MsgSwapExactInResponse{Amounts: amounts}, nil
}

// SwapExactOut handles fixed-output swaps
func (ms msgServer) SwapExactOut(goCtx context.Context, msg *types.MsgSwapExactOut) (*types.MsgSwapExactOutResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactOut: validate: %w", err)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("SwapExactOut: invalid trader address: %w", err)
	}
	recipient := trader
	if msg.Recipient != "" {
		recipient, err = sdk.AccAddressFromBech32(msg.Recipient)
		if err != nil {
			return nil, fmt.Errorf("SwapExactOut: invalid recipient address: %w", err)
		}
	}

	amounts, err := ms.Keeper.SwapExactOut(
		ctx, trader, msg.Path, msg.AmountOut, msg.AmountInMax, recipient, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("SwapExactOut: %w", err)
	}
	return &types.MsgSwapExactOutResponse{Amounts: amounts}, nil
}

// UpdateParams handles governance parameter changes
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}
	if msg.Authority != ms.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := ms.SetParams(ctx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	return &types.MsgUpdateParamsResponse{}, nil
}

// SetPaused handles the governance circuit breaker
func (ms msgServer) SetPaused(goCtx context.Context, msg *types.MsgSetPaused) (*types.MsgSetPausedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetPaused: validate: %w", err)
	}
	if msg.Authority != ms.GetAuthority() {
		return nil, types.ErrUnauthorized.Wrapf("expected %s, got %s", ms.GetAuthority(), msg.Authority)
	}
	ctx := sdk.UnwrapSDKContext(goCtx)

	ms.Keeper.SetPaused(ctx, msg.Paused)
	return &types.MsgSetPausedResponse{}, nil
}
