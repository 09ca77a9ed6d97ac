package types

import (
	"fmt"
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetID identifies a fungible asset by its denomination.
type AssetID string

// Validate checks the asset id against SDK denomination rules.
func (a AssetID) Validate() error {
	if err := sdk.ValidateDenom(string(a)); err != nil {
		return ErrInvalidAsset.Wrapf("%q: %v", string(a), err)
	}
	return nil
}

func (a AssetID) String() string { return string(a) }

// TradingPair is the ordered pair of assets that identifies a pool.
type TradingPair struct {
	AssetA AssetID `json:"asset_a"`
	AssetB AssetID `json:"asset_b"`
}

// NewTradingPair returns the pair (a, b) without normalizing the order.
func NewTradingPair(a, b AssetID) TradingPair {
	return TradingPair{AssetA: a, AssetB: b}
}

// Validate checks both assets and rejects a pair of identical assets.
func (p TradingPair) Validate() error {
	if err := p.AssetA.Validate(); err != nil {
		return ErrInvalidTradingPair.Wrapf("asset a: %v", err)
	}
	if err := p.AssetB.Validate(); err != nil {
		return ErrInvalidTradingPair.Wrapf("asset b: %v", err)
	}
	if p.AssetA == p.AssetB {
		return ErrInvalidTradingPair.Wrapf("identical assets %s", p.AssetA)
	}
	return nil
}

// Contains reports whether asset is one side of the pair.
func (p TradingPair) Contains(asset AssetID) bool {
	return p.AssetA == asset || p.AssetB == asset
}

func (p TradingPair) String() string {
	return fmt.Sprintf("%s/%s", p.AssetA, p.AssetB)
}

// Amounts is a pair of balances positionally aligned with a TradingPair.
type Amounts struct {
	AmountA Balance `json:"amount_a"`
	AmountB Balance `json:"amount_b"`
}

// NewAmounts returns Amounts{a, b}.
func NewAmounts(a, b Balance) Amounts {
	return Amounts{AmountA: a, AmountB: b}
}

// LiquidityPool is the state of one trading pair's pool.
type LiquidityPool struct {
	Assets         TradingPair `json:"assets"`
	ReserveA       Balance     `json:"reserve_a"`
	ReserveB       Balance     `json:"reserve_b"`
	TotalLiquidity Balance     `json:"total_liquidity"`
	LiquidityToken AssetID     `json:"liquidity_token"`
}

// NewLiquidityPool returns an empty pool for pair whose shares are denominated
// in liquidityToken.
func NewLiquidityPool(pair TradingPair, liquidityToken AssetID) LiquidityPool {
	return LiquidityPool{
		Assets:         pair,
		ReserveA:       ZeroBalance(),
		ReserveB:       ZeroBalance(),
		TotalLiquidity: ZeroBalance(),
		LiquidityToken: liquidityToken,
	}
}

// Reserves returns the pool reserves aligned with Assets.
func (p LiquidityPool) Reserves() Amounts {
	return NewAmounts(p.ReserveA, p.ReserveB)
}

// ReserveOf returns the reserve held for asset.
func (p LiquidityPool) ReserveOf(asset AssetID) (Balance, error) {
	switch asset {
	case p.Assets.AssetA:
		return p.ReserveA, nil
	case p.Assets.AssetB:
		return p.ReserveB, nil
	default:
		return Balance{}, ErrInvalidAsset.Wrapf("%s is not part of pool %s", asset, p.Assets)
	}
}

// IsEmpty reports whether the pool holds no reserves and no liquidity.
func (p LiquidityPool) IsEmpty() bool {
	return p.ReserveA.IsZero() && p.ReserveB.IsZero() && p.TotalLiquidity.IsZero()
}

// ConstantProduct returns ReserveA * ReserveB without overflow.
func (p LiquidityPool) ConstantProduct() *big.Int {
	return new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
}

// Validate checks field validity and that the pool is either fully empty or
// fully funded.
func (p LiquidityPool) Validate() error {
	if err := p.Assets.Validate(); err != nil {
		return err
	}
	if err := p.LiquidityToken.Validate(); err != nil {
		return ErrInvalidPoolState.Wrapf("liquidity token: %v", err)
	}
	if p.Assets.Contains(p.LiquidityToken) {
		return ErrInvalidPoolState.Wrapf("liquidity token %s is a pool asset", p.LiquidityToken)
	}
	return p.ValidateReserves()
}

// ValidateReserves checks only the reserve/liquidity invariants.
func (p LiquidityPool) ValidateReserves() error {
	zeroA, zeroB, zeroL := p.ReserveA.IsZero(), p.ReserveB.IsZero(), p.TotalLiquidity.IsZero()
	if zeroA == zeroB && zeroB == zeroL {
		return nil
	}
	return ErrInvalidPoolState.Wrapf(
		"pool %s partially funded: reserve_a=%s reserve_b=%s total_liquidity=%s",
		p.Assets, p.ReserveA, p.ReserveB, p.TotalLiquidity,
	)
}
