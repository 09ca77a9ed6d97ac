package types

import (
	"cosmossdk.io/math"
)

// The swap fee is fixed at 3/1000 (0.3%) of the input amount.
const (
	SwapFeeNumerator   = 3
	SwapFeeDenominator = 1000
)

// maxSpotPriceBits bounds reserves fed into LegacyDec so the quotient stays in range.
const maxSpotPriceBits = 192

var (
	feeNumerator   = NewBalance(SwapFeeNumerator)
	feeDenominator = NewBalance(SwapFeeDenominator)
)

// SwapFee returns floor(amountIn * 3 / 1000).
//
// The product is split as (q*d + r) * n / d = q*n + r*n/d so no intermediate
// value can exceed amountIn.
func SwapFee(amountIn Balance) (Balance, error) {
	q, _ := amountIn.CheckedQuo(feeDenominator)
	r, _ := amountIn.CheckedRem(feeDenominator)

	whole, ok := q.CheckedMul(feeNumerator)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("fee on %s", amountIn)
	}
	partial, _ := r.CheckedMul(feeNumerator)
	partial, _ = partial.CheckedQuo(feeDenominator)

	fee, ok := whole.CheckedAdd(partial)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("fee on %s", amountIn)
	}
	return fee, nil
}

// GetAmountOut prices a swap of amountIn against the given reserves with the
// constant-product rule, charging the fee on the input:
//
//	out = floor((in - fee) * reserveOut / (reserveIn + in - fee))
//
// Every division floors, so any rounding stays in the pool.
func GetAmountOut(amountIn, reserveIn, reserveOut Balance) (Balance, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return Balance{}, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	fee, err := SwapFee(amountIn)
	if err != nil {
		return Balance{}, err
	}
	amountInAfterFee, ok := amountIn.CheckedSub(fee)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("fee %s exceeds amount %s", fee, amountIn)
	}

	numerator, ok := amountInAfterFee.CheckedMul(reserveOut)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("numerator: %s * %s", amountInAfterFee, reserveOut)
	}
	denominator, ok := reserveIn.CheckedAdd(amountInAfterFee)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("denominator: %s + %s", reserveIn, amountInAfterFee)
	}
	amountOut, ok := numerator.CheckedQuo(denominator)
	if !ok {
		return Balance{}, ErrDivisionByZero.Wrap("zero swap denominator")
	}
	return amountOut, nil
}

// swapSides resolves which reserve is paid in and which is paid out.
// inIsA is true when assetIn is the pool's first asset.
func swapSides(pool LiquidityPool, assetIn, assetOut AssetID) (inIsA bool, err error) {
	if !pool.Assets.Contains(assetIn) {
		return false, ErrInvalidAssetIn.Wrapf("%s not in %s", assetIn, pool.Assets)
	}
	if !pool.Assets.Contains(assetOut) {
		return false, ErrInvalidAssetOut.Wrapf("%s not in %s", assetOut, pool.Assets)
	}
	if assetIn == assetOut {
		return false, ErrInvalidAssetOut.Wrapf("asset out equals asset in (%s)", assetIn)
	}
	return pool.Assets.AssetA == assetIn, nil
}

// QuoteSwap returns what Swap would deliver for amountIn without the slippage
// bound and without producing a new pool state.
func QuoteSwap(pool LiquidityPool, assetIn AssetID, amountIn Balance, assetOut AssetID) (Balance, error) {
	inIsA, err := swapSides(pool, assetIn, assetOut)
	if err != nil {
		return Balance{}, err
	}
	if inIsA {
		return GetAmountOut(amountIn, pool.ReserveA, pool.ReserveB)
	}
	return GetAmountOut(amountIn, pool.ReserveB, pool.ReserveA)
}

// Swap exchanges amountIn of assetIn for assetOut and returns the updated pool
// together with the amount delivered.
//
// The whole amountIn, fee included, is added to the input reserve. Both
// reserve updates are computed before either is applied; on any error the
// input pool is returned unchanged.
func Swap(pool LiquidityPool, assetIn AssetID, amountIn Balance, assetOut AssetID, minAmountOut Balance) (LiquidityPool, Balance, error) {
	inIsA, err := swapSides(pool, assetIn, assetOut)
	if err != nil {
		return pool, Balance{}, err
	}

	reserveIn, reserveOut := pool.ReserveB, pool.ReserveA
	if inIsA {
		reserveIn, reserveOut = pool.ReserveA, pool.ReserveB
	}

	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return pool, Balance{}, err
	}
	if amountOut.LT(minAmountOut) {
		return pool, Balance{}, ErrInsufficientAmountOut.Wrapf("got %s, minimum %s", amountOut, minAmountOut)
	}

	newReserveIn, ok := reserveIn.CheckedAdd(amountIn)
	if !ok {
		return pool, Balance{}, ErrReserveOverflow.Wrapf("%s: %s + %s", assetIn, reserveIn, amountIn)
	}
	newReserveOut, ok := reserveOut.CheckedSub(amountOut)
	if !ok {
		return pool, Balance{}, ErrInsufficientReserves.Wrapf("%s: %s - %s", assetOut, reserveOut, amountOut)
	}

	next := pool
	if inIsA {
		next.ReserveA, next.ReserveB = newReserveIn, newReserveOut
	} else {
		next.ReserveA, next.ReserveB = newReserveOut, newReserveIn
	}
	return next, amountOut, nil
}

// SpotPrice returns the marginal price of base quoted in the other asset of
// the pool, reserveQuote / reserveBase, ignoring the fee.
func SpotPrice(pool LiquidityPool, base AssetID) (math.LegacyDec, error) {
	if !pool.Assets.Contains(base) {
		return math.LegacyDec{}, ErrInvalidAsset.Wrapf("%s not in %s", base, pool.Assets)
	}
	reserveBase, reserveQuote := pool.ReserveB, pool.ReserveA
	if pool.Assets.AssetA == base {
		reserveBase, reserveQuote = pool.ReserveA, pool.ReserveB
	}
	if reserveBase.IsZero() || reserveQuote.IsZero() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	if reserveBase.BitLen() > maxSpotPriceBits || reserveQuote.BitLen() > maxSpotPriceBits {
		return math.LegacyDec{}, ErrArithmeticOverflow.Wrapf("reserves too large for a decimal price")
	}
	quote := math.LegacyNewDecFromBigInt(reserveQuote.BigInt())
	return quote.Quo(math.LegacyNewDecFromBigInt(reserveBase.BigInt())), nil
}
