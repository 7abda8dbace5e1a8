package types

import (
	sdkerrors "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgSwapExactIn{}
	_ sdk.Msg = &MsgSwapExactOut{}
)

// validateSwapPath checks the route shape shared by both swap messages.
// Per-hop pool existence is checked at execution time.
func validateSwapPath(path []string) error {
	if len(path) < 2 {
		return sdkerrors.Wrap(ErrInvalidPath, "path needs at least two denoms")
	}
	for i, denom := range path {
		if err := sdk.ValidateDenom(denom); err != nil {
			return sdkerrors.Wrapf(ErrInvalidPath, "hop %d: %s", i, err)
		}
		if i > 0 && denom == path[i-1] {
			return sdkerrors.Wrapf(ErrInvalidPath, "hop %d repeats denom %s", i, denom)
		}
	}
	return nil
}

// MsgSwapExactIn trades a fixed input along a route for as much output as
// the pools give, bounded below by AmountOutMin. FeeOnTransfer selects the
// balance-delta variant that tolerates denoms taking a cut in transit.
type MsgSwapExactIn struct {
	Trader        string      `json:"trader"`
	Path          []string    `json:"path"`
	AmountIn      sdkmath.Int `json:"amount_in"`
	AmountOutMin  sdkmath.Int `json:"amount_out_min"`
	Recipient     string      `json:"recipient"`
	Deadline      int64       `json:"deadline"`
	FeeOnTransfer bool        `json:"fee_on_transfer,omitempty"`
}

// NewMsgSwapExactIn creates a new MsgSwapExactIn instance
func NewMsgSwapExactIn(trader string, path []string, amountIn, amountOutMin sdkmath.Int, recipient string, deadline int64) *MsgSwapExactIn {
	return &MsgSwapExactIn{
		Trader:       trader,
		Path:         path,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Recipient:    recipient,
		Deadline:     deadline,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSwapExactIn) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSwapExactIn) Type() string {
	return "swap_exact_in"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSwapExactIn) GetSigners() []sdk.AccAddress {
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{trader}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwapExactIn) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwapExactIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.Recipient != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
		}
	}
	if err := validateSwapPath(msg.Path); err != nil {
		return err
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientInputAmount, "amount in must be positive")
	}
	if msg.AmountOutMin.IsNil() || msg.AmountOutMin.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "minimum output must not be negative")
	}
	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must not be negative")
	}
	return nil
}

// MsgSwapExactOut trades as little input as the pools require for a fixed
// output along a route, bounded above by AmountInMax.
type MsgSwapExactOut struct {
	Trader      string      `json:"trader"`
	Path        []string    `json:"path"`
	AmountOut   sdkmath.Int `json:"amount_out"`
	AmountInMax sdkmath.Int `json:"amount_in_max"`
	Recipient   string      `json:"recipient"`
	Deadline    int64       `json:"deadline"`
}

// NewMsgSwapExactOut creates a new MsgSwapExactOut instance
func NewMsgSwapExactOut(trader string, path []string, amountOut, amountInMax sdkmath.Int, recipient string, deadline int64) *MsgSwapExactOut {
	return &MsgSwapExactOut{
		Trader:      trader,
		Path:        path,
		AmountOut:   amountOut,
		AmountInMax: amountInMax,
		Recipient:   recipient,
		Deadline:    deadline,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgSwapExactOut) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSwapExactOut) Type() string {
	return "swap_exact_out"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSwapExactOut) GetSigners() []sdk.AccAddress {
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{trader}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwapExactOut) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwapExactOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Trader); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid trader address: %s", err)
	}
	if msg.Recipient != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
		}
	}
	if err := validateSwapPath(msg.Path); err != nil {
		return err
	}
	if msg.AmountOut.IsNil() || !msg.AmountOut.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientOutputAmount, "amount out must be positive")
	}
	if msg.AmountInMax.IsNil() || !msg.AmountInMax.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "maximum input must be positive")
	}
	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "deadline must not be negative")
	}
	return nil
}
