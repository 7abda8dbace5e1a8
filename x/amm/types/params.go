package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultMaxRouteHops       = uint32(5)
	DefaultTwapWindowSeconds  = uint32(3600)
	DefaultMaxPools           = uint64(10000)
	DefaultProtocolFeeEnabled = false
)

// Params are the governance-settable knobs of the module. The swap fee
// itself is a protocol constant (FeeNumerator/FeeDenominator), not a
// parameter, so quotes stay stable across parameter changes.
type Params struct {
	// ProtocolFeeEnabled switches on the 1/6 share of swap fees minted to
	// the fee collector on liquidity events.
	ProtocolFeeEnabled bool `json:"protocol_fee_enabled"`
	// FeeCollector receives protocol-fee shares. Empty means the module
	// account.
	FeeCollector string `json:"fee_collector"`
	// MaxRouteHops caps the number of swaps in one routed trade.
	MaxRouteHops uint32 `json:"max_route_hops"`
	// TwapWindowSeconds is the window used when an oracle is initialized
	// without an explicit one.
	TwapWindowSeconds uint32 `json:"twap_window_seconds"`
	// MaxPools caps how many pools the registry will create.
	MaxPools uint64 `json:"max_pools"`
}

// NewParams builds a Params value.
func NewParams(protocolFeeEnabled bool, feeCollector string, maxRouteHops, twapWindow uint32, maxPools uint64) Params {
	return Params{
		ProtocolFeeEnabled: protocolFeeEnabled,
		FeeCollector:       feeCollector,
		MaxRouteHops:       maxRouteHops,
		TwapWindowSeconds:  twapWindow,
		MaxPools:           maxPools,
	}
}

// DefaultParams returns the parameter defaults.
func DefaultParams() Params {
	return NewParams(DefaultProtocolFeeEnabled, "", DefaultMaxRouteHops, DefaultTwapWindowSeconds, DefaultMaxPools)
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.FeeCollector != "" {
		if _, err := sdk.AccAddressFromBech32(p.FeeCollector); err != nil {
			return ErrInvalidAddress.Wrapf("fee collector: %s", err)
		}
	}
	if p.MaxRouteHops < 1 {
		return ErrInvalidInput.Wrap("max route hops must allow at least one swap")
	}
	if p.TwapWindowSeconds == 0 {
		return ErrInvalidInput.Wrap("twap window must be positive")
	}
	if p.MaxPools == 0 {
		return ErrInvalidInput.Wrap("max pools must be positive")
	}
	return nil
}
