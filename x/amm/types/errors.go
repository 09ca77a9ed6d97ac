package types

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrPoolNotFound                = errorsmod.Register(ModuleName, 2, "liquidity pool not found")
	ErrPoolAlreadyExists           = errorsmod.Register(ModuleName, 3, "liquidity pool already exists")
	ErrInvalidTradingPair          = errorsmod.Register(ModuleName, 4, "invalid trading pair")
	ErrInvalidAsset                = errorsmod.Register(ModuleName, 5, "invalid asset id")
	ErrInsufficientLiquidity       = errorsmod.Register(ModuleName, 6, "insufficient liquidity")
	ErrInsufficientReserves        = errorsmod.Register(ModuleName, 7, "insufficient reserves")
	ErrReserveOverflow             = errorsmod.Register(ModuleName, 8, "reserve overflow")
	ErrLiquidityOverflow           = errorsmod.Register(ModuleName, 9, "liquidity overflow")
	ErrInvalidAssetIn              = errorsmod.Register(ModuleName, 10, "asset in is not part of the trading pair")
	ErrInvalidAssetOut             = errorsmod.Register(ModuleName, 11, "asset out is not part of the trading pair")
	ErrInsufficientAmountOut       = errorsmod.Register(ModuleName, 12, "output amount below minimum")
	ErrArithmeticOverflow          = errorsmod.Register(ModuleName, 13, "arithmetic overflow")
	ErrDivisionByZero              = errorsmod.Register(ModuleName, 14, "division by zero")
	ErrInsufficientLiquidityMinted = errorsmod.Register(ModuleName, 15, "insufficient liquidity minted")
	ErrZeroLiquidityBurned         = errorsmod.Register(ModuleName, 16, "zero liquidity burned")
	ErrInsufficientAmountsOut      = errorsmod.Register(ModuleName, 17, "withdrawal amounts below minimum")
	ErrInvalidPoolState            = errorsmod.Register(ModuleName, 18, "invalid pool state")
	ErrLiquidityTokenInUse         = errorsmod.Register(ModuleName, 19, "liquidity token already bound to a trading pair")
	ErrInvalidGenesis              = errorsmod.Register(ModuleName, 20, "invalid genesis state")
	ErrReservedAccount             = errorsmod.Register(ModuleName, 21, "account reserved for pool custody")
)

// ErrorClass groups errors by how a caller is expected to react to them.
type ErrorClass int

const (
	// ClassUnknown is any error not produced by this module.
	ClassUnknown ErrorClass = iota
	// ClassPrecondition is an input rejected before any arithmetic ran.
	ClassPrecondition
	// ClassArithmetic is an overflow, underflow or zero divisor.
	ClassArithmetic
	// ClassSlippage is a computed amount that missed the caller's bound.
	ClassSlippage
)

func (c ErrorClass) String() string {
	switch c {
	case ClassPrecondition:
		return "precondition"
	case ClassArithmetic:
		return "arithmetic"
	case ClassSlippage:
		return "slippage"
	default:
		return "unknown"
	}
}

var (
	preconditionErrors = []error{
		ErrPoolNotFound, ErrPoolAlreadyExists, ErrInvalidTradingPair, ErrInvalidAsset,
		ErrInvalidAssetIn, ErrInvalidAssetOut, ErrZeroLiquidityBurned, ErrLiquidityTokenInUse,
		ErrInvalidPoolState, ErrInvalidGenesis, ErrReservedAccount,
	}
	arithmeticErrors = []error{
		ErrReserveOverflow, ErrLiquidityOverflow, ErrInsufficientReserves,
		ErrInsufficientLiquidity, ErrArithmeticOverflow, ErrDivisionByZero,
	}
	slippageErrors = []error{
		ErrInsufficientAmountOut, ErrInsufficientLiquidityMinted, ErrInsufficientAmountsOut,
	}
)

// ClassifyError reports which error class err belongs to.
//
// ErrInsufficientLiquidityMinted is also returned for zero deposit amounts; it
// is classified as slippage since both cases are answered by changing the deposit.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}
	for _, target := range slippageErrors {
		if errors.Is(err, target) {
			return ClassSlippage
		}
	}
	for _, target := range arithmeticErrors {
		if errors.Is(err, target) {
			return ClassArithmetic
		}
	}
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return ClassPrecondition
		}
	}
	return ClassUnknown
}
