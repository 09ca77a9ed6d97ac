package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammkeeper "github.com/paw-chain/amm/x/amm/keeper"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
	ledgerkeeper "github.com/paw-chain/amm/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/amm/x/ledger/types"
)

const (
	// Name is the application name and the database name under the data dir.
	Name = "ammd"

	// BackendMemDB keeps all state in memory.
	BackendMemDB = "memdb"
)

// ErrInvariantBroken is returned when a state change would break a module invariant.
var ErrInvariantBroken = errors.New("invariant broken")

// App hosts the amm and ledger keepers over a versioned multistore. Every
// Execute call is atomic and commits a new version.
type App struct {
	mu     sync.RWMutex
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	logger log.Logger

	checkInvariants bool

	AMMKeeper    *ammkeeper.Keeper
	LedgerKeeper ledgerkeeper.Keeper
}

// Option configures an App.
type Option func(*App)

// WithInvariantChecks makes Execute run every AMM invariant before committing.
func WithInvariantChecks() Option {
	return func(a *App) { a.checkInvariants = true }
}

// OpenDB opens the application database under home/data.
func OpenDB(home, backend string) (dbm.DB, error) {
	if backend == BackendMemDB {
		return dbm.NewMemDB(), nil
	}
	return dbm.NewDB(Name, dbm.BackendType(backend), filepath.Join(home, "data"))
}

// New mounts the module stores on db and loads the latest version.
func New(logger log.Logger, db dbm.DB, opts ...Option) (*App, error) {
	ammKey := storetypes.NewKVStoreKey(ammtypes.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledgertypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, nil)
	cms.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, nil)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	ledger := ledgerkeeper.NewKeeper(ledgerKey)
	amm := ammkeeper.NewKeeper(ammKey, ledger)
	ledger.AppendFundRestriction(amm.FundRestriction)

	app := &App{
		db:           db,
		cms:          cms,
		logger:       logger,
		AMMKeeper:    amm,
		LedgerKeeper: ledger,
	}
	for _, opt := range opts {
		opt(app)
	}
	app.syncMetrics(nil)
	return app, nil
}

// Logger returns the application logger.
func (a *App) Logger() log.Logger { return a.logger }

// LastHeight returns the last committed version.
func (a *App) LastHeight() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cms.LastCommitID().Version
}

// Execute runs fn against a cached context and commits its writes as a new
// version when fn succeeds. Nothing is written when fn fails.
func (a *App) Execute(fn func(ctx sdk.Context) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx := a.newContext(a.cms)
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	if a.checkInvariants {
		if msg, broken := ammkeeper.AllInvariants(*a.AMMKeeper)(cacheCtx); broken {
			a.logger.Error("rejecting state change", "error", ErrInvariantBroken, "invariant", msg)
			return fmt.Errorf("%w: %s", ErrInvariantBroken, msg)
		}
	}
	write()

	id := a.cms.Commit()
	a.logger.Debug("committed", "height", id.Version)
	a.syncMetrics(cacheCtx.EventManager().Events())
	return nil
}

func (a *App) syncMetrics(committed sdk.Events) {
	ctx := a.newContext(a.cms.CacheMultiStore())
	if err := a.AMMKeeper.SyncMetrics(ctx, committed); err != nil {
		a.logger.Error("failed to refresh pool metrics", "error", err)
	}
}

// Query runs fn against a read-only snapshot of the last committed state.
func (a *App) Query(fn func(ctx sdk.Context) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return fn(a.newContext(a.cms.CacheMultiStore()))
}

// CheckInvariants runs every AMM invariant against committed state.
func (a *App) CheckInvariants() (string, bool) {
	var (
		msg    string
		broken bool
	)
	_ = a.Query(func(ctx sdk.Context) error {
		msg, broken = ammkeeper.AllInvariants(*a.AMMKeeper)(ctx)
		return nil
	})
	return msg, broken
}

// Close releases the database.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db.Close()
}

func (a *App) newContext(ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  a.cms.LastCommitID().Version + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(ms, header, false, a.logger)
}
