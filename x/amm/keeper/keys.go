package keeper

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByTokensKeyPrefix is the prefix for indexing pools by token pair
	PoolByTokensKeyPrefix = []byte{0x03}

	// LiquidityKeyPrefix is the prefix for liquidity position store keys
	LiquidityKeyPrefix = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}

	// PausedKey is the key for the module-wide circuit breaker flag
	PausedKey = []byte{0x06}

	// ReentrancyLockKeyPrefix is the prefix for per-pool reentrancy locks
	ReentrancyLockKeyPrefix = []byte{0x07}

	// OracleKeyPrefix is the prefix for TWAP oracle observations
	OracleKeyPrefix = []byte{0x08}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolKeyPrefix, poolIDBytes...)
}

// PoolByTokensKey returns the store key for indexing a pool by its token
// pair; the pair is canonicalized so either order resolves the same pool.
func PoolByTokensKey(tokenA, tokenB string) []byte {
	tokenA, tokenB = types.SortAssets(tokenA, tokenB)
	key := append(PoolByTokensKeyPrefix, []byte(tokenA)...)
	key = append(key, []byte("/")...)
	key = append(key, []byte(tokenB)...)
	return key
}

// LiquidityKey returns the store key for a provider's shares in a pool
func LiquidityKey(poolID uint64, provider sdk.AccAddress) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	key := append(LiquidityKeyPrefix, poolIDBytes...)
	key = append(key, provider.Bytes()...)
	return key
}

// LiquidityKeyByPoolPrefix returns the prefix for all share records in a pool
func LiquidityKeyByPoolPrefix(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(LiquidityKeyPrefix, poolIDBytes...)
}

// ReentrancyLockKey returns the store key for a pool's reentrancy lock
func ReentrancyLockKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(ReentrancyLockKeyPrefix, poolIDBytes...)
}

// OracleKey returns the store key for a pool's TWAP observation
func OracleKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(OracleKeyPrefix, poolIDBytes...)
}
