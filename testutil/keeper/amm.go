package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/cascadefi/cascade/x/amm/keeper"
	"github.com/cascadefi/cascade/x/amm/types"
)

// bankBalancesPrefix keeps mock balances clear of the module's own key
// space.
var bankBalancesPrefix = []byte{0xF0}

// BankMock is a bank backend that stores balances in the KVStore of
// whatever context it is handed, so transfers branch and roll back with
// CacheContext exactly like the real bank keeper. Per-denom transfer
// fees let tests exercise the fee-on-transfer paths: the fee is shaved
// off the amount the recipient receives, in basis points.
type BankMock struct {
	storeKey     storetypes.StoreKey
	base         sdk.Context
	transferFees map[string]int64
}

// NewBankMock creates an empty bank over the given store key. The base
// context is what Mint writes through; keeper calls supply their own.
func NewBankMock(storeKey storetypes.StoreKey) *BankMock {
	return &BankMock{
		storeKey:     storeKey,
		transferFees: make(map[string]int64),
	}
}

func (b *BankMock) balancesOf(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	store := sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey)
	bz := store.Get(append(bankBalancesPrefix, addr.Bytes()...))
	if bz == nil {
		return sdk.NewCoins()
	}
	var coins sdk.Coins
	if err := json.Unmarshal(bz, &coins); err != nil {
		panic(err)
	}
	return coins
}

func (b *BankMock) setBalances(ctx context.Context, addr sdk.AccAddress, coins sdk.Coins) {
	store := sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey)
	bz, err := json.Marshal(coins)
	if err != nil {
		panic(err)
	}
	store.Set(append(bankBalancesPrefix, addr.Bytes()...), bz)
}

// Mint credits coins to an address out of thin air, through the base
// context.
func (b *BankMock) Mint(addr sdk.AccAddress, coins sdk.Coins) {
	b.setBalances(b.base, addr, b.balancesOf(b.base, addr).Add(coins...))
}

// SetTransferFee makes denom take a cut of feeBps basis points on every
// transfer, deducted from what the recipient receives.
func (b *BankMock) SetTransferFee(denom string, feeBps int64) {
	b.transferFees[denom] = feeBps
}

// GetBalance implements types.BankKeeper.
func (b *BankMock) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.balancesOf(ctx, addr).AmountOf(denom))
}

// SpendableCoins implements types.BankKeeper.
func (b *BankMock) SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	return b.balancesOf(ctx, addr)
}

// SendCoins implements types.BankKeeper.
func (b *BankMock) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	from := b.balancesOf(ctx, fromAddr)
	if !amt.IsAllLTE(from) {
		return fmt.Errorf("insufficient funds: %s holds %s, wants to send %s", fromAddr, from, amt)
	}
	b.setBalances(ctx, fromAddr, from.Sub(amt...))

	received := sdk.NewCoins()
	for _, coin := range amt {
		amount := coin.Amount
		if feeBps := b.transferFees[coin.Denom]; feeBps > 0 {
			fee := amount.MulRaw(feeBps).QuoRaw(10000)
			amount = amount.Sub(fee)
		}
		if amount.IsPositive() {
			received = received.Add(sdk.NewCoin(coin.Denom, amount))
		}
	}
	b.setBalances(ctx, toAddr, b.balancesOf(ctx, toAddr).Add(received...))
	return nil
}

// SendCoinsFromAccountToModule implements types.BankKeeper.
func (b *BankMock) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount implements types.BankKeeper.
func (b *BankMock) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

var _ types.BankKeeper = (*BankMock)(nil)

// TestAuthority is the governance address used by test keepers.
var TestAuthority = authtypes.NewModuleAddress("gov").String()

// AMMKeeper creates a test keeper backed by an in-memory store and the
// BankMock, with genesis applied and block time set.
func AMMKeeper(t testing.TB) (*keeper.Keeper, *BankMock, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	bank := NewBankMock(storeKey)
	k := keeper.NewKeeper(
		cdc,
		storeKey,
		bank,
		TestAuthority,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(time.Unix(1_700_000_000, 0))
	bank.base = ctx

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, bank, ctx
}

// FundAccount mints coins for an account.
func FundAccount(bank *BankMock, addr sdk.AccAddress, coins ...sdk.Coin) {
	bank.Mint(addr, sdk.NewCoins(coins...))
}

// CreateFundedPool creates a pool for tokenA/tokenB and seeds it with the
// given amounts from a fresh provider. Returns the pool id.
func CreateFundedPool(t testing.TB, k *keeper.Keeper, bank *BankMock, ctx sdk.Context, tokenA, tokenB string, amountA, amountB sdkmath.Int) uint64 {
	t.Helper()

	creator := sdk.AccAddress([]byte("pool-creator-addr-0000"))
	pool, err := k.CreatePool(ctx, creator, tokenA, tokenB)
	require.NoError(t, err)

	bank.Mint(creator, sdk.NewCoins(sdk.NewCoin(tokenA, amountA), sdk.NewCoin(tokenB, amountB)))
	// Amounts are given in the caller's order; the pool stores assets
	// canonically sorted.
	a, b := amountA, amountB
	if pool.TokenA != tokenA {
		a, b = amountB, amountA
	}
	_, _, _, err = k.AddLiquidity(ctx, creator, pool.Id, a, b, sdkmath.ZeroInt(), sdkmath.ZeroInt(), 0)
	require.NoError(t, err)

	return pool.Id
}
