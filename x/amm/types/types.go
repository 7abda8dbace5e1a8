package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// AMM economic constants. The swap fee is expressed as the 997/1000
// multiplier pair so quoting stays in exact integer arithmetic.
const (
	// FeeNumerator is the per-swap input multiplier after the 0.3% fee.
	FeeNumerator = 997

	// FeeDenominator scales reserve terms in fee-adjusted formulas.
	FeeDenominator = 1000

	// MinimumLiquidity is the quantity of shares permanently locked on the
	// first mint of a pool. It is added to total shares but assigned to no
	// account, so the share price can never be manipulated back to zero.
	MinimumLiquidity = 1000

	// ProtocolFeeGrowthFactor sets the protocol's cut of sqrt(k) growth.
	// minted = S * (rootK - rootKLast) / (rootK * factor + rootKLast),
	// i.e. 1/6 of the growth with factor = 5.
	ProtocolFeeGrowthFactor = 5
)

// Event types emitted by the AMM module
const (
	EventTypePoolCreated     = "amm_pool_created"
	EventTypeAddLiquidity    = "amm_add_liquidity"
	EventTypeRemoveLiquidity = "amm_remove_liquidity"
	EventTypeSwap            = "amm_swap"
	EventTypeSync            = "amm_sync"
	EventTypeSkim            = "amm_skim"
	EventTypeRouteSwap       = "amm_route_swap"
	EventTypeProtocolFee     = "amm_protocol_fee"
	EventTypeOracleUpdate    = "amm_oracle_update"
	EventTypePaused          = "amm_paused"
)

// Event attribute keys
const (
	AttributeKeyPoolID     = "pool_id"
	AttributeKeyCreator    = "creator"
	AttributeKeyProvider   = "provider"
	AttributeKeyTrader     = "trader"
	AttributeKeyRecipient  = "recipient"
	AttributeKeyTokenA     = "token_a"
	AttributeKeyTokenB     = "token_b"
	AttributeKeyTokenIn    = "token_in"
	AttributeKeyTokenOut   = "token_out"
	AttributeKeyAmountA    = "amount_a"
	AttributeKeyAmountB    = "amount_b"
	AttributeKeyAmountAIn  = "amount_a_in"
	AttributeKeyAmountBIn  = "amount_b_in"
	AttributeKeyAmountAOut = "amount_a_out"
	AttributeKeyAmountBOut = "amount_b_out"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyShares     = "shares"
	AttributeKeyReserveA   = "reserve_a"
	AttributeKeyReserveB   = "reserve_b"
	AttributeKeyPath       = "path"
	AttributeKeyHops       = "hops"
	AttributeKeyPaused     = "paused"
)
