package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// withPoolLock runs fn against a branched store with the pool's
// reentrancy lock held. The branch commits, events included, only when
// fn returns nil; on error or panic every partial write is discarded
// along with the lock itself.
//
// The lock is keyed on the pool id alone, so a flash-swap callback that
// re-enters the same pool through any entry point observes the lock and
// fails with ErrLocked. Distinct pools lock independently, which lets a
// routed trade hold hops sequentially.
func (k Keeper) withPoolLock(ctx sdk.Context, poolID uint64, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()

	store := k.getStore(cacheCtx)
	lockKey := ReentrancyLockKey(poolID)
	if store.Has(lockKey) {
		return types.ErrLocked.Wrapf("pool %d is busy", poolID)
	}
	store.Set(lockKey, []byte{1})

	if err := fn(cacheCtx); err != nil {
		return err
	}

	k.getStore(cacheCtx).Delete(lockKey)
	write()
	return nil
}

// atomically runs fn against a branched store without taking a lock,
// used by the router to make an entire multi-hop trade all-or-nothing
// while each hop still takes its own pool lock.
func (k Keeper) atomically(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

// checkDeadline rejects operations whose deadline has passed. A zero
// deadline means no limit.
func checkDeadline(ctx sdk.Context, deadline int64) error {
	if deadline > 0 && ctx.BlockTime().Unix() > deadline {
		return types.ErrExpired.Wrapf("deadline %d passed at block time %d", deadline, ctx.BlockTime().Unix())
	}
	return nil
}
