package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LiquidityRecord attributes pool shares to a provider. The permanently
// locked minimum liquidity is attributed to the module account, so share
// records always sum to the pool's total.
type LiquidityRecord struct {
	PoolId   uint64      `json:"pool_id"`
	Provider string      `json:"provider"`
	Shares   sdkmath.Int `json:"shares"`
}

// GenesisState is the module's full exported state.
type GenesisState struct {
	Params    Params              `json:"params"`
	Pools     []Pool              `json:"pools"`
	PoolCount uint64              `json:"pool_count"`
	Liquidity []LiquidityRecord   `json:"liquidity"`
	Oracles   []OracleObservation `json:"oracles"`
	Paused    bool                `json:"paused"`
}

// DefaultGenesis returns the module's default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if uint64(len(gs.Pools)) > gs.Params.MaxPools {
		return ErrMaxPoolsReached.Wrapf("%d pools exceed the cap of %d", len(gs.Pools), gs.Params.MaxPools)
	}

	poolIDs := make(map[uint64]Pool, len(gs.Pools))
	pairs := make(map[string]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if pool.Id >= gs.PoolCount {
			return ErrInvalidPoolState.Wrapf("pool id %d not below pool count %d", pool.Id, gs.PoolCount)
		}
		if _, ok := poolIDs[pool.Id]; ok {
			return ErrInvalidPoolState.Wrapf("duplicate pool id %d", pool.Id)
		}
		poolIDs[pool.Id] = pool
		pair := fmt.Sprintf("%s/%s", pool.TokenA, pool.TokenB)
		if _, ok := pairs[pair]; ok {
			return ErrPoolExists.Wrapf("duplicate pool for pair %s", pair)
		}
		pairs[pair] = struct{}{}
	}

	shareSums := make(map[uint64]sdkmath.Int, len(gs.Pools))
	seenShares := make(map[string]struct{}, len(gs.Liquidity))
	for _, rec := range gs.Liquidity {
		if _, err := sdk.AccAddressFromBech32(rec.Provider); err != nil {
			return ErrInvalidAddress.Wrapf("liquidity provider: %s", err)
		}
		if rec.Shares.IsNil() || !rec.Shares.IsPositive() {
			return ErrInvalidInput.Wrapf("liquidity record for pool %d must hold positive shares", rec.PoolId)
		}
		if _, ok := poolIDs[rec.PoolId]; !ok {
			return ErrPoolNotFound.Wrapf("liquidity record references pool %d", rec.PoolId)
		}
		key := fmt.Sprintf("%d/%s", rec.PoolId, rec.Provider)
		if _, ok := seenShares[key]; ok {
			return ErrInvalidPoolState.Wrapf("duplicate liquidity record %s", key)
		}
		seenShares[key] = struct{}{}
		sum, ok := shareSums[rec.PoolId]
		if !ok {
			sum = sdkmath.ZeroInt()
		}
		shareSums[rec.PoolId] = sum.Add(rec.Shares)
	}
	for id, pool := range poolIDs {
		sum, ok := shareSums[id]
		if !ok {
			sum = sdkmath.ZeroInt()
		}
		if !sum.Equal(pool.TotalShares) {
			return ErrInvalidPoolState.Wrapf("pool %d share records sum to %s, total is %s", id, sum, pool.TotalShares)
		}
	}

	seenOracles := make(map[uint64]struct{}, len(gs.Oracles))
	for _, obs := range gs.Oracles {
		if err := obs.Validate(); err != nil {
			return err
		}
		if _, ok := poolIDs[obs.PoolId]; !ok {
			return ErrPoolNotFound.Wrapf("oracle references pool %d", obs.PoolId)
		}
		if _, ok := seenOracles[obs.PoolId]; ok {
			return ErrOracleExists.Wrapf("duplicate oracle for pool %d", obs.PoolId)
		}
		seenOracles[obs.PoolId] = struct{}{}
	}

	return nil
}
