package types

// CalculateAmountsOut returns the reserves owed for burning liquidityBurned
// shares: floor(liquidityBurned * reserve / totalLiquidity) per side.
func CalculateAmountsOut(liquidityBurned Balance, reserves Amounts, totalLiquidity Balance) (Amounts, error) {
	if liquidityBurned.IsZero() {
		return Amounts{}, ErrZeroLiquidityBurned
	}
	if totalLiquidity.IsZero() {
		return Amounts{}, ErrInsufficientLiquidity.Wrap("pool has no liquidity")
	}
	if reserves.AmountA.IsZero() || reserves.AmountB.IsZero() {
		return Amounts{}, ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}

	amountA, err := withdrawalShare(liquidityBurned, reserves.AmountA, totalLiquidity)
	if err != nil {
		return Amounts{}, err
	}
	amountB, err := withdrawalShare(liquidityBurned, reserves.AmountB, totalLiquidity)
	if err != nil {
		return Amounts{}, err
	}
	return NewAmounts(amountA, amountB), nil
}

func withdrawalShare(liquidity, reserve, total Balance) (Balance, error) {
	numerator, ok := liquidity.CheckedMul(reserve)
	if !ok {
		return Balance{}, ErrArithmeticOverflow.Wrapf("%s * %s", liquidity, reserve)
	}
	amount, ok := numerator.CheckedQuo(total)
	if !ok {
		return Balance{}, ErrDivisionByZero.Wrap("zero total liquidity")
	}
	return amount, nil
}

// Burn withdraws the reserves owed for liquidityBurned shares and returns the
// updated pool with the amounts released.
//
// minAmounts are the per-asset slippage bounds. The caller must verify that
// the burner actually holds liquidityBurned shares. On any error the input
// pool is returned unchanged.
func Burn(pool LiquidityPool, liquidityBurned Balance, minAmounts Amounts) (LiquidityPool, Amounts, error) {
	if err := pool.ValidateReserves(); err != nil {
		return pool, Amounts{}, err
	}

	out, err := CalculateAmountsOut(liquidityBurned, pool.Reserves(), pool.TotalLiquidity)
	if err != nil {
		return pool, Amounts{}, err
	}
	if out.AmountA.LT(minAmounts.AmountA) || out.AmountB.LT(minAmounts.AmountB) {
		return pool, Amounts{}, ErrInsufficientAmountsOut.Wrapf(
			"got (%s, %s), minimum (%s, %s)",
			out.AmountA, out.AmountB, minAmounts.AmountA, minAmounts.AmountB,
		)
	}

	reserveA, ok := pool.ReserveA.CheckedSub(out.AmountA)
	if !ok {
		return pool, Amounts{}, ErrInsufficientReserves.Wrapf("%s: %s - %s", pool.Assets.AssetA, pool.ReserveA, out.AmountA)
	}
	reserveB, ok := pool.ReserveB.CheckedSub(out.AmountB)
	if !ok {
		return pool, Amounts{}, ErrInsufficientReserves.Wrapf("%s: %s - %s", pool.Assets.AssetB, pool.ReserveB, out.AmountB)
	}
	totalLiquidity, ok := pool.TotalLiquidity.CheckedSub(liquidityBurned)
	if !ok {
		return pool, Amounts{}, ErrInsufficientLiquidity.Wrapf("burn %s of %s", liquidityBurned, pool.TotalLiquidity)
	}

	next := pool
	next.ReserveA = reserveA
	next.ReserveB = reserveB
	next.TotalLiquidity = totalLiquidity
	return next, out, nil
}
