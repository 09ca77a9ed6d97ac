package types

import (
	"context"
)

// PoolRegistry owns every LiquidityPool record, keyed by TradingPair.
type PoolRegistry interface {
	GetPool(ctx context.Context, pair TradingPair) (LiquidityPool, error)
	SetPool(ctx context.Context, pool LiquidityPool) error
	HasPool(ctx context.Context, pair TradingPair) bool
	GetPairByLiquidityToken(ctx context.Context, token AssetID) (TradingPair, error)
}

// AssetLedger moves real assets and liquidity shares between accounts.
type AssetLedger interface {
	Transfer(ctx context.Context, asset AssetID, from, to string, amount Balance) error
	MintShares(ctx context.Context, token AssetID, to string, amount Balance) error
	BurnShares(ctx context.Context, token AssetID, from string, amount Balance) error
}

// LedgerViewer exposes the balances needed by the module invariants.
type LedgerViewer interface {
	GetBalance(ctx context.Context, account string, asset AssetID) Balance
	TotalSupply(ctx context.Context, asset AssetID) Balance
}

// BankKeeper is the ledger the AMM keeper is wired against.
type BankKeeper interface {
	AssetLedger
	LedgerViewer
}
