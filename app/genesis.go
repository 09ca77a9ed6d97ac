package app

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
	ledgertypes "github.com/paw-chain/amm/x/ledger/types"
)

// GenesisState is the genesis document keyed by module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns empty genesis states for every module.
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		ledgertypes.ModuleName: mustMarshalJSON(ledgertypes.DefaultGenesis()),
		ammtypes.ModuleName:    mustMarshalJSON(ammtypes.DefaultGenesis()),
	}
}

// InitChain loads genesis into the store. Ledger balances are applied before
// pools so the invariants can be checked on the combined state.
func (a *App) InitChain(genesis GenesisState) error {
	ledgerGen := ledgertypes.DefaultGenesis()
	if bz, ok := genesis[ledgertypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, ledgerGen); err != nil {
			return fmt.Errorf("failed to decode %s genesis: %w", ledgertypes.ModuleName, err)
		}
	}
	ammGen := ammtypes.DefaultGenesis()
	if bz, ok := genesis[ammtypes.ModuleName]; ok {
		parsed, err := ammtypes.ParseGenesis(bz)
		if err != nil {
			return err
		}
		ammGen = parsed
	}

	return a.Execute(func(ctx sdk.Context) error {
		if err := a.LedgerKeeper.InitGenesis(ctx, *ledgerGen); err != nil {
			return fmt.Errorf("%s genesis: %w", ledgertypes.ModuleName, err)
		}
		if err := a.AMMKeeper.InitGenesis(ctx, *ammGen); err != nil {
			return fmt.Errorf("%s genesis: %w", ammtypes.ModuleName, err)
		}
		return nil
	})
}

// ExportGenesis exports the committed state of every module.
func (a *App) ExportGenesis() (GenesisState, error) {
	genesis := make(GenesisState)
	err := a.Query(func(ctx sdk.Context) error {
		ledgerGen, err := a.LedgerKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		ammGen, err := a.AMMKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		genesis[ledgertypes.ModuleName] = mustMarshalJSON(ledgerGen)
		genesis[ammtypes.ModuleName] = mustMarshalJSON(ammGen)
		return nil
	})
	return genesis, err
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
