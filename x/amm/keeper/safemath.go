package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/cascadefi/cascade/x/amm/types"
)

// Overflow-safe arithmetic for pool math. Intermediate products in swap
// quoting reach reserve^2 * 1000, so dedicated helpers route through
// math/big and only re-enter math.Int once the value is back in range.

var maxInt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.CmpAbs(maxInt256) >= 0 {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("addition result exceeds maximum value")
	}
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeSub subtracts two math.Int values with underflow checking
func SafeSub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.LT(b) {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("cannot subtract %s from %s", b.String(), a.String())
	}
	return a.Sub(b), nil
}

// SafeMulDiv performs (a * b) / c without the 256-bit intermediate cap
func SafeMulDiv(a, b, c sdkmath.Int) (sdkmath.Int, error) {
	if c.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidInput.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := intermediate.Quo(intermediate, c.BigInt())
	if result.CmpAbs(maxInt256) >= 0 {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("quotient exceeds maximum value")
	}
	return sdkmath.NewIntFromBigInt(result), nil
}

// ValidateReserve checks that a reserve fits the 112-bit bound the price
// accumulators assume.
func ValidateReserve(reserve sdkmath.Int) error {
	if reserve.IsNil() || reserve.IsNegative() {
		return types.ErrInvalidPoolState.Wrap("reserve must be non-negative")
	}
	if reserve.BigInt().Cmp(types.MaxUint112) > 0 {
		return types.ErrOverflow.Wrapf("reserve %s exceeds 112 bits", reserve.String())
	}
	return nil
}
