package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/cascadefi/cascade/x/amm/types"
)

// Keeper of the amm store. Every pool holds its tokens in a dedicated
// vault address derived from the pool id, so reserves can always be
// reconciled against live bank balances.
type Keeper struct {
	storeKey   storetypes.StoreKey
	cdc        codec.BinaryCodec
	bankKeeper types.BankKeeper

	// authority is the account allowed to update params and pause the
	// module, typically the gov module account.
	authority string
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	authority string,
) *Keeper {
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(fmt.Errorf("invalid amm authority address %q: %w", authority, err))
	}
	return &Keeper{
		storeKey:   key,
		cdc:        cdc,
		bankKeeper: bankKeeper,
		authority:  authority,
	}
}

// GetAuthority returns the module's authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-scoped logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// ModuleAddress returns the module's own account address, holder of the
// permanently locked minimum liquidity and default protocol fee collector.
func (k Keeper) ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// PoolAddress returns the vault address holding pool poolID's tokens.
func (k Keeper) PoolAddress(poolID uint64) sdk.AccAddress {
	return authtypes.NewModuleAddress(fmt.Sprintf("%s/pool/%d", types.ModuleName, poolID))
}

// PoolBalance reads the vault's live balance for denom. This is the
// ground truth that sync, skim and the balance-delta swap paths compare
// against stored reserves.
func (k Keeper) PoolBalance(ctx sdk.Context, poolID uint64, denom string) sdkmath.Int {
	return k.bankKeeper.GetBalance(ctx, k.PoolAddress(poolID), denom).Amount
}
