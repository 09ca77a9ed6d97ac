package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
	ledgerkeeper "github.com/paw-chain/amm/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/amm/x/ledger/types"
)

// AMMKeeper creates a test keeper for the AMM module backed by a real ledger
// keeper on an in-memory multistore.
func AMMKeeper(t testing.TB) (*keeper.Keeper, ledgerkeeper.Keeper, sdk.Context) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledgertypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ledger := ledgerkeeper.NewKeeper(ledgerKey)
	k := keeper.NewKeeper(ammKey, ledger)
	ledger.AppendFundRestriction(k.FundRestriction)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ledger, ctx
}

// LedgerKeeper creates a standalone ledger keeper.
func LedgerKeeper(t testing.TB) (ledgerkeeper.Keeper, sdk.Context) {
	_, ledger, ctx := AMMKeeper(t)
	return ledger, ctx
}

// CreateFundedPool creates a pool for pair and seeds it with a first deposit
// from a freshly funded provider.
func CreateFundedPool(t testing.TB, k *keeper.Keeper, ledger ledgerkeeper.Keeper, ctx sdk.Context, pair types.TradingPair, token types.AssetID, amounts types.Amounts) types.LiquidityPool {
	const provider = "seed-provider"

	_, err := k.CreatePool(ctx, provider, pair, token)
	require.NoError(t, err)
	require.NoError(t, ledger.Fund(ctx, provider, pair.AssetA, amounts.AmountA))
	require.NoError(t, ledger.Fund(ctx, provider, pair.AssetB, amounts.AmountB))

	_, err = k.AddLiquidity(ctx, provider, pair, amounts, types.ZeroBalance())
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, pair)
	require.NoError(t, err)
	return pool
}
