package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/types"
)

func TestBurn_Proportional(t *testing.T) {
	pool := makePool(220, 110, 110)

	next, out, err := types.Burn(pool, types.NewBalance(10), types.Amounts{})
	require.NoError(t, err)
	require.Equal(t, types.NewAmounts(types.NewBalance(20), types.NewBalance(10)), out)
	require.Equal(t, makePool(200, 100, 100), next)
}

func TestBurn_FullWithdrawalEmptiesPool(t *testing.T) {
	pool := makePool(1234, 5678, 999)

	next, out, err := types.Burn(pool, types.NewBalance(999), types.Amounts{})
	require.NoError(t, err)
	require.Equal(t, types.NewAmounts(types.NewBalance(1234), types.NewBalance(5678)), out)
	require.True(t, next.IsEmpty())
	require.NoError(t, next.Validate())
}

func TestBurn_RoundsDown(t *testing.T) {
	pool := makePool(10, 7, 3)

	// 1*10/3 = 3.33, 1*7/3 = 2.33
	next, out, err := types.Burn(pool, types.NewBalance(1), types.Amounts{})
	require.NoError(t, err)
	require.Equal(t, types.NewAmounts(types.NewBalance(3), types.NewBalance(2)), out)
	require.Equal(t, makePool(7, 5, 2), next)
}

func TestBurn_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		pool    types.LiquidityPool
		burned  types.Balance
		min     types.Amounts
		wantErr error
	}{
		{
			name:    "zero burned",
			pool:    makePool(220, 110, 110),
			burned:  types.ZeroBalance(),
			wantErr: types.ErrZeroLiquidityBurned,
		},
		{
			name:    "more than total liquidity",
			pool:    makePool(220, 110, 110),
			burned:  types.NewBalance(111),
			wantErr: types.ErrInsufficientReserves,
		},
		{
			name:    "empty pool",
			pool:    types.NewLiquidityPool(testPair, lpToken),
			burned:  types.NewBalance(1),
			wantErr: types.ErrInsufficientLiquidity,
		},
		{
			name:    "below minimum a",
			pool:    makePool(220, 110, 110),
			burned:  types.NewBalance(10),
			min:     types.NewAmounts(types.NewBalance(21), types.ZeroBalance()),
			wantErr: types.ErrInsufficientAmountsOut,
		},
		{
			name:    "below minimum b",
			pool:    makePool(220, 110, 110),
			burned:  types.NewBalance(10),
			min:     types.NewAmounts(types.NewBalance(20), types.NewBalance(11)),
			wantErr: types.ErrInsufficientAmountsOut,
		},
		{
			name: "product overflow",
			pool: func() types.LiquidityPool {
				p := makePool(0, 1, 0)
				p.ReserveA = types.MaxBalance()
				p.TotalLiquidity = types.MaxBalance()
				return p
			}(),
			burned:  types.NewBalance(2),
			wantErr: types.ErrArithmeticOverflow,
		},
		{
			name:    "partially funded pool",
			pool:    makePool(0, 10, 10),
			burned:  types.NewBalance(1),
			wantErr: types.ErrInvalidPoolState,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, out, err := types.Burn(tc.pool, tc.burned, tc.min)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.pool, next, "rejected burn must return the input state")
			require.Equal(t, types.Amounts{}, out)
		})
	}
}

func TestCalculateAmountsOut(t *testing.T) {
	out, err := types.CalculateAmountsOut(
		types.NewBalance(50),
		types.NewAmounts(types.NewBalance(1_000), types.NewBalance(3_000)),
		types.NewBalance(100),
	)
	require.NoError(t, err)
	require.Equal(t, types.NewAmounts(types.NewBalance(500), types.NewBalance(1_500)), out)
}
