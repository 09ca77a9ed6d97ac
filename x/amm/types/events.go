package types

// Event types for the AMM module
const (
	EventTypeCreatePool    = "create_pool"
	EventTypeMintLiquidity = "mint_liquidity"
	EventTypeBurnLiquidity = "burn_liquidity"
	EventTypeSwap          = "swap"
)

// Event attribute keys
const (
	AttributeKeyPair            = "pair"
	AttributeKeyLiquidityToken  = "liquidity_token"
	AttributeKeyCreator         = "creator"
	AttributeKeyProvider        = "provider"
	AttributeKeyTrader          = "trader"
	AttributeKeyAmountA         = "amount_a"
	AttributeKeyAmountB         = "amount_b"
	AttributeKeyLiquidityMinted = "liquidity_minted"
	AttributeKeyLiquidityBurned = "liquidity_burned"
	AttributeKeyAssetIn         = "asset_in"
	AttributeKeyAssetOut        = "asset_out"
	AttributeKeyAmountIn        = "amount_in"
	AttributeKeyAmountOut       = "amount_out"
)
