package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrIdenticalAssets             = errors.Register(ModuleName, 2, "identical assets")
	ErrPoolExists                  = errors.Register(ModuleName, 3, "pool already exists")
	ErrPoolNotFound                = errors.Register(ModuleName, 4, "pool not found")
	ErrInvalidPath                 = errors.Register(ModuleName, 5, "invalid swap path")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 6, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 7, "insufficient liquidity burned")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 8, "insufficient output amount")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 9, "insufficient input amount")
	ErrExcessiveInputAmount        = errors.Register(ModuleName, 10, "excessive input amount")
	ErrInsufficientAAmount         = errors.Register(ModuleName, 11, "insufficient A amount")
	ErrInsufficientBAmount         = errors.Register(ModuleName, 12, "insufficient B amount")
	ErrExpired                     = errors.Register(ModuleName, 13, "deadline expired")
	ErrLocked                      = errors.Register(ModuleName, 14, "pool is locked")
	ErrInvariantViolation          = errors.Register(ModuleName, 15, "constant product invariant violated")
	ErrPeriodNotElapsed            = errors.Register(ModuleName, 16, "oracle period not elapsed")
	ErrInvalidAsset                = errors.Register(ModuleName, 17, "asset is not part of the pool")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 18, "insufficient liquidity in pool")
	ErrInsufficientShares          = errors.Register(ModuleName, 19, "insufficient liquidity shares")
	ErrInvalidInput                = errors.Register(ModuleName, 20, "invalid input")
	ErrOverflow                    = errors.Register(ModuleName, 21, "arithmetic overflow")
	ErrInvalidPoolState            = errors.Register(ModuleName, 22, "invalid pool state")
	ErrUnauthorized                = errors.Register(ModuleName, 23, "unauthorized")
	ErrModulePaused                = errors.Register(ModuleName, 24, "module is paused")
	ErrOracleNotInitialized        = errors.Register(ModuleName, 25, "oracle not initialized")
	ErrOracleExists                = errors.Register(ModuleName, 26, "oracle already initialized")
	ErrInvalidAddress              = errors.Register(ModuleName, 27, "invalid address")
	ErrMaxPoolsReached             = errors.Register(ModuleName, 28, "maximum number of pools reached")
)
