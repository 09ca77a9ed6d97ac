package api

import (
	"github.com/paw-chain/amm/x/amm/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// CreatePoolRequest represents a request to register a new empty pool.
type CreatePoolRequest struct {
	Creator        string        `json:"creator" binding:"required"`
	AssetA         types.AssetID `json:"asset_a" binding:"required"`
	AssetB         types.AssetID `json:"asset_b" binding:"required"`
	LiquidityToken types.AssetID `json:"liquidity_token" binding:"required"`
}

// PoolsResponse lists every pool.
type PoolsResponse struct {
	Pools []types.LiquidityPool `json:"pools"`
	Count int                   `json:"count"`
}

// AddLiquidityRequest represents a deposit. MinLiquidity defaults to zero.
type AddLiquidityRequest struct {
	Provider     string         `json:"provider" binding:"required"`
	AmountA      *types.Balance `json:"amount_a" binding:"required"`
	AmountB      *types.Balance `json:"amount_b" binding:"required"`
	MinLiquidity types.Balance  `json:"min_liquidity"`
}

// AddLiquidityResponse represents a deposit result.
type AddLiquidityResponse struct {
	LiquidityMinted types.Balance       `json:"liquidity_minted"`
	Pool            types.LiquidityPool `json:"pool"`
}

// RemoveLiquidityRequest represents a withdrawal.
type RemoveLiquidityRequest struct {
	Provider   string         `json:"provider" binding:"required"`
	Liquidity  *types.Balance `json:"liquidity" binding:"required"`
	MinAmountA types.Balance  `json:"min_amount_a"`
	MinAmountB types.Balance  `json:"min_amount_b"`
}

// RemoveLiquidityResponse represents a withdrawal result.
type RemoveLiquidityResponse struct {
	AmountA types.Balance       `json:"amount_a"`
	AmountB types.Balance       `json:"amount_b"`
	Pool    types.LiquidityPool `json:"pool"`
}

// SwapRequest represents an exact-input swap.
type SwapRequest struct {
	Trader       string         `json:"trader" binding:"required"`
	AssetIn      types.AssetID  `json:"asset_in" binding:"required"`
	AmountIn     *types.Balance `json:"amount_in" binding:"required"`
	AssetOut     types.AssetID  `json:"asset_out" binding:"required"`
	MinAmountOut types.Balance  `json:"min_amount_out"`
}

// SwapResponse represents a swap result.
type SwapResponse struct {
	AmountOut types.Balance       `json:"amount_out"`
	Pool      types.LiquidityPool `json:"pool"`
}

// QuoteResponse is a swap output computed against committed state.
type QuoteResponse struct {
	AssetIn   types.AssetID `json:"asset_in"`
	AmountIn  types.Balance `json:"amount_in"`
	AssetOut  types.AssetID `json:"asset_out"`
	AmountOut types.Balance `json:"amount_out"`
	Fee       types.Balance `json:"fee"`
}

// PriceResponse is the spot price of base in units of the other asset.
type PriceResponse struct {
	Base  types.AssetID `json:"base"`
	Quote types.AssetID `json:"quote"`
	Price string        `json:"price"`
}

// BalanceResponse is one ledger entry.
type BalanceResponse struct {
	Account string        `json:"account"`
	Asset   types.AssetID `json:"asset"`
	Amount  types.Balance `json:"amount"`
}

// FaucetRequest credits an account out of thin air.
type FaucetRequest struct {
	Account string         `json:"account" binding:"required"`
	Asset   types.AssetID  `json:"asset" binding:"required"`
	Amount  *types.Balance `json:"amount" binding:"required"`
}
