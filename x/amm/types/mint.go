package types

// CalculateLiquidityMinted returns the liquidity shares owed for depositing
// amounts into a pool with the given reserves and total liquidity.
//
// The first deposit mints floor(sqrt(a*b)). Later deposits mint the smaller of
// the two proportional claims, so a deposit off the current reserve ratio is
// credited only for its scarcer side.
func CalculateLiquidityMinted(amounts, reserves Amounts, totalLiquidity Balance) (Balance, error) {
	if amounts.AmountA.IsZero() || amounts.AmountB.IsZero() {
		return Balance{}, ErrInsufficientLiquidityMinted.Wrap("deposit amounts must be non-zero")
	}

	if totalLiquidity.IsZero() {
		return geometricMean(amounts.AmountA, amounts.AmountB)
	}

	mintedA, err := proportionalShare(amounts.AmountA, totalLiquidity, reserves.AmountA)
	if err != nil {
		return Balance{}, err
	}
	mintedB, err := proportionalShare(amounts.AmountB, totalLiquidity, reserves.AmountB)
	if err != nil {
		return Balance{}, err
	}
	return MinBalance(mintedA, mintedB), nil
}

func geometricMean(a, b Balance) (Balance, error) {
	product, ok := a.CheckedMul(b)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("geometric mean: %s * %s", a, b)
	}
	return product.Sqrt(), nil
}

// proportionalShare returns floor(amount * total / reserve).
func proportionalShare(amount, total, reserve Balance) (Balance, error) {
	numerator, ok := amount.CheckedMul(total)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("%s * %s", amount, total)
	}
	share, ok := numerator.CheckedQuo(reserve)
	if !ok {
		return Balance{}, ErrDivisionByZero.Wrapf("zero reserve with total liquidity %s", total)
	}
	return share, nil
}

// Mint deposits amounts into pool and returns the updated pool together with
// the liquidity shares minted for the depositor.
//
// minLiquidity is the depositor's slippage bound. On any error the input pool
// is returned unchanged and nothing was applied.
func Mint(pool LiquidityPool, amounts Amounts, minLiquidity Balance) (LiquidityPool, Balance, error) {
	if err := pool.ValidateReserves(); err != nil {
		return pool, Balance{}, err
	}

	minted, err := CalculateLiquidityMinted(amounts, pool.Reserves(), pool.TotalLiquidity)
	if err != nil {
		return pool, Balance{}, err
	}
	if minted.LT(minLiquidity) {
		return pool, Balance{}, ErrInsufficientLiquidityMinted.Wrapf("minted %s, minimum %s", minted, minLiquidity)
	}

	reserveA, ok := pool.ReserveA.CheckedAdd(amounts.AmountA)
	if !ok {
		return pool, Balance{}, ErrReserveOverflow.Wrapf("%s: %s + %s", pool.Assets.AssetA, pool.ReserveA, amounts.AmountA)
	}
	reserveB, ok := pool.ReserveB.CheckedAdd(amounts.AmountB)
	if !ok {
		return pool, Balance{}, ErrReserveOverflow.Wrapf("%s: %s + %s", pool.Assets.AssetB, pool.ReserveB, amounts.AmountB)
	}
	totalLiquidity, ok := pool.TotalLiquidity.CheckedAdd(minted)
	if !ok {
		return pool, Balance{}, ErrLiquidityOverflow.Wrapf("%s + %s", pool.TotalLiquidity, minted)
	}

	next := pool
	next.ReserveA = reserveA
	next.ReserveB = reserveB
	next.TotalLiquidity = totalLiquidity
	return next, minted, nil
}
