package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is the stored record for a constant-product pair. Asset denoms are
// kept in canonical (sorted) order so a pair has exactly one pool.
// Cumulative prices are decimal strings because the UQ112.112 accumulator
// words occupy the full 256-bit range.
type Pool struct {
	Id                 uint64      `json:"id"`
	TokenA             string      `json:"token_a"`
	TokenB             string      `json:"token_b"`
	Creator            string      `json:"creator"`
	ReserveA           sdkmath.Int `json:"reserve_a"`
	ReserveB           sdkmath.Int `json:"reserve_b"`
	TotalShares        sdkmath.Int `json:"total_shares"`
	KLast              sdkmath.Int `json:"k_last"`
	PriceACumulative   string      `json:"price_a_cumulative"`
	PriceBCumulative   string      `json:"price_b_cumulative"`
	BlockTimestampLast uint32      `json:"block_timestamp_last"`
}

// SortAssets returns the pair in canonical order.
func SortAssets(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewPool returns an empty pool for the given pair. Assets are sorted;
// liquidity arrives through AddLiquidity, never at creation.
func NewPool(id uint64, tokenA, tokenB, creator string) Pool {
	tokenA, tokenB = SortAssets(tokenA, tokenB)
	return Pool{
		Id:               id,
		TokenA:           tokenA,
		TokenB:           tokenB,
		Creator:          creator,
		ReserveA:         sdkmath.ZeroInt(),
		ReserveB:         sdkmath.ZeroInt(),
		TotalShares:      sdkmath.ZeroInt(),
		KLast:            sdkmath.ZeroInt(),
		PriceACumulative: "0",
		PriceBCumulative: "0",
	}
}

// HasAsset reports whether denom is one of the pool's pair.
func (p Pool) HasAsset(denom string) bool {
	return denom == p.TokenA || denom == p.TokenB
}

// OtherAsset returns the counterpart of denom in the pair.
func (p Pool) OtherAsset(denom string) (string, error) {
	switch denom {
	case p.TokenA:
		return p.TokenB, nil
	case p.TokenB:
		return p.TokenA, nil
	default:
		return "", ErrInvalidAsset.Wrapf("denom %s not in pool %d", denom, p.Id)
	}
}

// ReserveOf returns the reserve held for denom.
func (p Pool) ReserveOf(denom string) (sdkmath.Int, error) {
	switch denom {
	case p.TokenA:
		return p.ReserveA, nil
	case p.TokenB:
		return p.ReserveB, nil
	default:
		return sdkmath.Int{}, ErrInvalidAsset.Wrapf("denom %s not in pool %d", denom, p.Id)
	}
}

// PriceACumulativeWord parses the stored accumulator for token A priced in
// token B.
func (p Pool) PriceACumulativeWord() (*big.Int, error) {
	return parseCumulative(p.PriceACumulative)
}

// PriceBCumulativeWord parses the stored accumulator for token B priced in
// token A.
func (p Pool) PriceBCumulativeWord() (*big.Int, error) {
	return parseCumulative(p.PriceBCumulative)
}

// SetCumulatives stores both accumulator words, wrapped modulo 2^256.
func (p *Pool) SetCumulatives(priceA, priceB *big.Int) {
	p.PriceACumulative = WrapCumulative(priceA).String()
	p.PriceBCumulative = WrapCumulative(priceB).String()
}

func parseCumulative(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	w, ok := new(big.Int).SetString(s, 10)
	if !ok || w.Sign() < 0 {
		return nil, ErrInvalidPoolState.Wrapf("malformed cumulative price %q", s)
	}
	return w, nil
}

// Validate checks structural integrity of a stored pool record.
func (p Pool) Validate() error {
	if err := sdk.ValidateDenom(p.TokenA); err != nil {
		return ErrInvalidAsset.Wrapf("token a: %s", err)
	}
	if err := sdk.ValidateDenom(p.TokenB); err != nil {
		return ErrInvalidAsset.Wrapf("token b: %s", err)
	}
	if p.TokenA == p.TokenB {
		return ErrIdenticalAssets.Wrapf("pool %d pairs %s with itself", p.Id, p.TokenA)
	}
	if p.TokenA > p.TokenB {
		return ErrInvalidPoolState.Wrapf("pool %d assets not in canonical order", p.Id)
	}
	if p.Creator != "" {
		if _, err := sdk.AccAddressFromBech32(p.Creator); err != nil {
			return ErrInvalidAddress.Wrapf("pool %d creator: %s", p.Id, err)
		}
	}
	for _, v := range []sdkmath.Int{p.ReserveA, p.ReserveB, p.TotalShares, p.KLast} {
		if v.IsNil() || v.IsNegative() {
			return ErrInvalidPoolState.Wrapf("pool %d holds a negative or nil amount", p.Id)
		}
	}
	if p.ReserveA.BigInt().Cmp(MaxUint112) > 0 || p.ReserveB.BigInt().Cmp(MaxUint112) > 0 {
		return ErrOverflow.Wrapf("pool %d reserve exceeds 112 bits", p.Id)
	}
	if p.TotalShares.IsZero() && !(p.ReserveA.IsZero() && p.ReserveB.IsZero()) {
		return ErrInvalidPoolState.Wrapf("pool %d has reserves but no shares", p.Id)
	}
	if _, err := p.PriceACumulativeWord(); err != nil {
		return err
	}
	if _, err := p.PriceBCumulativeWord(); err != nil {
		return err
	}
	return nil
}
