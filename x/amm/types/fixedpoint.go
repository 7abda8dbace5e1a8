package types

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// UQ112.112 binary fixed point: 112 integer bits, 112 fractional bits,
// carried in a math/big word. Reserves are bounded to 112 bits so every
// spot price is encodable, and cumulative price words wrap modulo 2^256
// exactly like the 256-bit accumulator they model. math/big is used here
// because intermediate products reach 336 bits, past the 256-bit cap of
// cosmossdk.io/math.Int.

const uq112FractionBits = 112

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)

	// MaxUint112 is the largest value a pool reserve may take.
	MaxUint112 = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 112), bigOne)

	// uq112One is 1.0 in UQ112.112 encoding.
	uq112One = new(big.Int).Lsh(bigOne, uq112FractionBits)

	// uq224One is 1.0 squared, used when inverting a price word.
	uq224One = new(big.Int).Lsh(bigOne, 2*uq112FractionBits)

	// cumulativeModulus wraps price accumulator words at 2^256.
	cumulativeModulus = new(big.Int).Lsh(bigOne, 256)
)

// EncodeUQ112 encodes an integer amount as a UQ112.112 word (x << 112).
func EncodeUQ112(x sdkmath.Int) (*big.Int, error) {
	if x.IsNil() || x.IsNegative() {
		return nil, ErrInvalidInput.Wrap("fixed point encode requires a non-negative value")
	}
	xb := x.BigInt()
	if xb.Cmp(MaxUint112) > 0 {
		return nil, ErrOverflow.Wrapf("value %s exceeds 112 bits", x.String())
	}
	return xb.Lsh(xb, uq112FractionBits), nil
}

// FractionUQ112 returns numerator/denominator as a UQ112.112 price word.
// The numerator must fit in 112 bits so the division cannot lose the
// fractional tail.
func FractionUQ112(numerator, denominator sdkmath.Int) (*big.Int, error) {
	if denominator.IsNil() || denominator.IsZero() {
		return nil, ErrInvalidInput.Wrap("fixed point division by zero")
	}
	enc, err := EncodeUQ112(numerator)
	if err != nil {
		return nil, err
	}
	return enc.Quo(enc, denominator.BigInt()), nil
}

// UQMulInt multiplies a UQ112.112 word by an integer amount at full
// precision. The result is still a UQ112.112 word.
func UQMulInt(price *big.Int, y sdkmath.Int) *big.Int {
	return new(big.Int).Mul(price, y.BigInt())
}

// UQMulUint64 multiplies a UQ112.112 word by an unsigned scalar, used for
// elapsed-time weighting of price accumulators.
func UQMulUint64(price *big.Int, y uint64) *big.Int {
	return new(big.Int).Mul(price, new(big.Int).SetUint64(y))
}

// UQDivUint64 divides a UQ112.112 word by an unsigned scalar.
func UQDivUint64(price *big.Int, y uint64) (*big.Int, error) {
	if y == 0 {
		return nil, ErrInvalidInput.Wrap("fixed point division by zero")
	}
	return new(big.Int).Quo(price, new(big.Int).SetUint64(y)), nil
}

// DecodeUQ112 truncates a UQ112.112 word to its integer part.
func DecodeUQ112(price *big.Int) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(new(big.Int).Rsh(price, uq112FractionBits))
}

// ReciprocalUQ112 inverts a UQ112.112 price word.
func ReciprocalUQ112(price *big.Int) (*big.Int, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, ErrInvalidInput.Wrap("cannot invert a non-positive price")
	}
	return new(big.Int).Quo(uq224One, price), nil
}

// OneUQ112 returns 1.0 in UQ112.112 encoding.
func OneUQ112() *big.Int {
	return new(big.Int).Set(uq112One)
}

// WrapCumulative reduces a price accumulator word modulo 2^256.
func WrapCumulative(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, cumulativeModulus)
}

// CumulativeDelta returns now - last under the accumulator's 2^256
// wraparound, so a single overflow between observations is harmless.
func CumulativeDelta(now, last *big.Int) *big.Int {
	d := new(big.Int).Sub(now, last)
	return d.Mod(d, cumulativeModulus)
}

// Isqrt computes the integer square root with the Babylonian iteration.
// The explicit loop keeps the rounding behavior exactly reproducible.
func Isqrt(y sdkmath.Int) sdkmath.Int {
	if y.IsNil() || !y.IsPositive() {
		return sdkmath.ZeroInt()
	}
	yb := y.BigInt()
	if yb.Cmp(bigThree) <= 0 {
		return sdkmath.OneInt()
	}
	z := new(big.Int).Set(yb)
	x := new(big.Int).Quo(yb, bigTwo)
	x.Add(x, bigOne)
	for x.Cmp(z) < 0 {
		z.Set(x)
		t := new(big.Int).Quo(yb, x)
		t.Add(t, x)
		x = t.Quo(t, bigTwo)
	}
	return sdkmath.NewIntFromBigInt(z)
}
