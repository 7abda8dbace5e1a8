package types

import (
	sdkerrors "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgAddLiquidity{}
	_ sdk.Msg = &MsgRemoveLiquidity{}
)

// MsgAddLiquidity deposits both assets of a pair in ratio and mints pool
// shares. Desired amounts are upper bounds; mins bound the slippage on the
// side the pool scales down.
type MsgAddLiquidity struct {
	Provider       string      `json:"provider"`
	PoolId         uint64      `json:"pool_id"`
	AmountADesired sdkmath.Int `json:"amount_a_desired"`
	AmountBDesired sdkmath.Int `json:"amount_b_desired"`
	AmountAMin     sdkmath.Int `json:"amount_a_min"`
	AmountBMin     sdkmath.Int `json:"amount_b_min"`
	Deadline       int64       `json:"deadline"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider string, poolID uint64, amountADesired, amountBDesired, amountAMin, amountBMin sdkmath.Int, deadline int64) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider:       provider,
		PoolId:         poolID,
		AmountADesired: amountADesired,
		AmountBDesired: amountBDesired,
		AmountAMin:     amountAMin,
		AmountBMin:     amountBMin,
		Deadline:       deadline,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgAddLiquidity) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgAddLiquidity) Type() string {
	return "add_liquidity"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.AmountADesired.IsNil() || !msg.AmountADesired.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amount a must be positive")
	}
	if msg.AmountBDesired.IsNil() || !msg.AmountBDesired.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "desired amount b must be positive")
	}
	if msg.AmountAMin.IsNil() || msg.AmountAMin.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount a must not be negative")
	}
	if msg.AmountBMin.IsNil() || msg.AmountBMin.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount b must not be negative")
	}
	if msg.AmountAMin.GT(msg.AmountADesired) || msg.AmountBMin.GT(msg.AmountBDesired) {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amounts cannot exceed desired amounts")
	}
	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must not be negative")
	}
	return nil
}

// MsgRemoveLiquidity burns pool shares for a pro-rata withdrawal of both
// assets.
type MsgRemoveLiquidity struct {
	Provider   string      `json:"provider"`
	PoolId     uint64      `json:"pool_id"`
	Shares     sdkmath.Int `json:"shares"`
	AmountAMin sdkmath.Int `json:"amount_a_min"`
	AmountBMin sdkmath.Int `json:"amount_b_min"`
	Deadline   int64       `json:"deadline"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider string, poolID uint64, shares, amountAMin, amountBMin sdkmath.Int, deadline int64) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider:   provider,
		PoolId:     poolID,
		Shares:     shares,
		AmountAMin: amountAMin,
		AmountBMin: amountBMin,
		Deadline:   deadline,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Type() string {
	return "remove_liquidity"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientShares, "shares must be positive")
	}
	if msg.AmountAMin.IsNil() || msg.AmountAMin.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount a must not be negative")
	}
	if msg.AmountBMin.IsNil() || msg.AmountBMin.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum amount b must not be negative")
	}
	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must not be negative")
	}
	return nil
}
