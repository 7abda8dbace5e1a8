package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// GetPoolCount returns the number of pools created so far; pool ids are
// assigned densely from zero.
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(PoolCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setPoolCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	store.Set(PoolCountKey, bz)
}

// SetPool writes a pool record and its pair index.
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(PoolKey(pool.Id), bz)

	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, pool.Id)
	store.Set(PoolByTokensKey(pool.TokenA, pool.TokenB), idBz)
	return nil
}

// GetPool returns a pool by id.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, false
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, false
	}
	return pool, true
}

// GetPoolByTokens returns the pool for a pair in either asset order.
func (k Keeper) GetPoolByTokens(ctx context.Context, tokenA, tokenB string) (types.Pool, bool) {
	store := k.getStore(ctx)
	bz := store.Get(PoolByTokensKey(tokenA, tokenB))
	if bz == nil {
		return types.Pool{}, false
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

// IteratePools walks all pools in id order; the callback returns true to
// stop early.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			continue
		}
		if cb(pool) {
			break
		}
	}
}

// GetAllPools returns every pool record.
func (k Keeper) GetAllPools(ctx context.Context) []types.Pool {
	var pools []types.Pool
	k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools
}

// CreatePool registers an empty pool for a distinct pair and returns it.
// The pool starts with zero reserves and zero shares; the first
// AddLiquidity sets the opening price.
func (k Keeper) CreatePool(ctx sdk.Context, creator sdk.AccAddress, tokenA, tokenB string) (types.Pool, error) {
	if err := k.errIfPaused(ctx); err != nil {
		return types.Pool{}, err
	}
	if err := sdk.ValidateDenom(tokenA); err != nil {
		return types.Pool{}, types.ErrInvalidAsset.Wrapf("token a: %s", err)
	}
	if err := sdk.ValidateDenom(tokenB); err != nil {
		return types.Pool{}, types.ErrInvalidAsset.Wrapf("token b: %s", err)
	}
	if tokenA == tokenB {
		return types.Pool{}, types.ErrIdenticalAssets.Wrapf("cannot pool %s with itself", tokenA)
	}
	if _, exists := k.GetPoolByTokens(ctx, tokenA, tokenB); exists {
		return types.Pool{}, types.ErrPoolExists.Wrapf("pair %s/%s", tokenA, tokenB)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	count := k.GetPoolCount(ctx)
	if count >= params.MaxPools {
		return types.Pool{}, types.ErrMaxPoolsReached.Wrapf("registry holds %d pools", count)
	}

	pool := types.NewPool(count, tokenA, tokenB, creator.String())
	if err := k.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}
	k.setPoolCount(ctx, count+1)

	k.Logger(ctx).Info("pool created",
		"pool_id", pool.Id, "token_a", pool.TokenA, "token_b", pool.TokenB)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(pool.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyTokenA, pool.TokenA),
			sdk.NewAttribute(types.AttributeKeyTokenB, pool.TokenB),
		),
	)
	metrics := GetAMMMetrics()
	metrics.PoolCreationRate.Inc()
	metrics.PoolsTotal.Set(float64(count + 1))

	return pool, nil
}
