package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
	"github.com/paw-chain/amm/x/ledger/types"
)

// Keeper tracks per-account balances and per-asset supply for real assets
// and liquidity shares alike.
type Keeper struct {
	storeKey storetypes.StoreKey

	// shared by every copy of the keeper
	fundRestriction *fundRestriction
}

type fundRestriction struct {
	fn types.FundRestrictionFn
}

var _ ammtypes.BankKeeper = Keeper{}

// NewKeeper creates a new ledger Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{
		storeKey:        key,
		fundRestriction: &fundRestriction{fn: types.NoOpFundRestrictionFn},
	}
}

// AppendFundRestriction adds fn to the checks Fund runs before crediting an
// account. Every copy of the keeper sees the new restriction.
func (k Keeper) AppendFundRestriction(fn types.FundRestrictionFn) {
	k.fundRestriction.fn = k.fundRestriction.fn.Then(fn)
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetBalance returns account's balance of asset, zero if none was recorded.
// A corrupt record is logged and read as zero; state changes touching it fail
// with ErrCorruptBalance.
func (k Keeper) GetBalance(ctx context.Context, account string, asset ammtypes.AssetID) ammtypes.Balance {
	return k.readBalance(ctx, types.BalanceKey(account, asset))
}

// TotalSupply returns the amount of asset in existence. Corrupt records are
// handled as in GetBalance.
func (k Keeper) TotalSupply(ctx context.Context, asset ammtypes.AssetID) ammtypes.Balance {
	return k.readBalance(ctx, types.SupplyKey(asset))
}

func (k Keeper) readBalance(ctx context.Context, key []byte) ammtypes.Balance {
	balance, err := k.getBalance(k.getStore(ctx), key)
	if err != nil {
		k.Logger(ctx).Error("unreadable balance", "key", fmt.Sprintf("%X", key), "error", err)
		return ammtypes.ZeroBalance()
	}
	return balance
}

// IterateAccountBalances calls cb for each asset account holds until cb
// returns true. It stops at the first corrupt record.
func (k Keeper) IterateAccountBalances(ctx context.Context, account string, cb func(asset ammtypes.AssetID, amount ammtypes.Balance) (stop bool)) error {
	prefix := types.AccountBalancesPrefix(account)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		asset := ammtypes.AssetID(iterator.Key()[len(prefix):])
		amount, err := ammtypes.BalanceFromBytes(iterator.Value())
		if err != nil {
			return types.ErrCorruptBalance.Wrapf("%s balance of %s: %v", account, asset, err)
		}
		if cb(asset, amount) {
			break
		}
	}
	return nil
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// Transfer moves amount of asset from one account to another.
func (k Keeper) Transfer(ctx context.Context, asset ammtypes.AssetID, from, to string, amount ammtypes.Balance) error {
	if err := validateMovement(asset, from, to); err != nil {
		return err
	}

	store := k.getStore(ctx)
	fromKey := types.BalanceKey(from, asset)
	fromBalance, err := k.getBalance(store, fromKey)
	if err != nil {
		return err
	}
	remaining, ok := fromBalance.CheckedSub(amount)
	if !ok {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s%s", from, fromBalance, asset, amount, asset)
	}
	if from == to || amount.IsZero() {
		return nil
	}

	toKey := types.BalanceKey(to, asset)
	toBalance, err := k.getBalance(store, toKey)
	if err != nil {
		return err
	}
	received, ok := toBalance.CheckedAdd(amount)
	if !ok {
		return types.ErrSupplyOverflow.Wrapf("%s balance of %s", to, asset)
	}

	k.setBalance(store, fromKey, remaining)
	k.setBalance(store, toKey, received)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeySender, from),
			sdk.NewAttribute(types.AttributeKeyRecipient, to),
			sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// MintShares credits to with newly created units of token.
func (k Keeper) MintShares(ctx context.Context, token ammtypes.AssetID, to string, amount ammtypes.Balance) error {
	if err := k.credit(ctx, token, to, amount); err != nil {
		return err
	}
	emitSupplyEvent(ctx, types.EventTypeMint, to, token, amount)
	return nil
}

// BurnShares destroys amount of token held by from.
func (k Keeper) BurnShares(ctx context.Context, token ammtypes.AssetID, from string, amount ammtypes.Balance) error {
	if err := validateMovement(token, from); err != nil {
		return err
	}

	store := k.getStore(ctx)
	balanceKey := types.BalanceKey(from, token)
	balance, err := k.getBalance(store, balanceKey)
	if err != nil {
		return err
	}
	remaining, ok := balance.CheckedSub(amount)
	if !ok {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, burning %s", from, balance, token, amount)
	}
	supplyKey := types.SupplyKey(token)
	current, err := k.getBalance(store, supplyKey)
	if err != nil {
		return err
	}
	supply, ok := current.CheckedSub(amount)
	if !ok {
		return types.ErrInsufficientFunds.Wrapf("supply of %s below %s", token, amount)
	}

	k.setBalance(store, balanceKey, remaining)
	k.setBalance(store, supplyKey, supply)
	emitSupplyEvent(ctx, types.EventTypeBurn, from, token, amount)
	return nil
}

// Fund credits account with amount of asset from outside the ledger. It backs
// the faucet and is refused for whatever the fund restrictions reject.
func (k Keeper) Fund(ctx context.Context, account string, asset ammtypes.AssetID, amount ammtypes.Balance) error {
	if err := validateMovement(asset, account); err != nil {
		return err
	}
	if err := k.fundRestriction.fn(ctx, account, asset); err != nil {
		return err
	}
	if err := k.credit(ctx, asset, account, amount); err != nil {
		return err
	}
	emitSupplyEvent(ctx, types.EventTypeFund, account, asset, amount)
	return nil
}

func (k Keeper) credit(ctx context.Context, asset ammtypes.AssetID, to string, amount ammtypes.Balance) error {
	if err := validateMovement(asset, to); err != nil {
		return err
	}

	store := k.getStore(ctx)
	supplyKey := types.SupplyKey(asset)
	current, err := k.getBalance(store, supplyKey)
	if err != nil {
		return err
	}
	supply, ok := current.CheckedAdd(amount)
	if !ok {
		return types.ErrSupplyOverflow.Wrapf("supply of %s", asset)
	}
	// balance <= supply
	balanceKey := types.BalanceKey(to, asset)
	held, err := k.getBalance(store, balanceKey)
	if err != nil {
		return err
	}
	balance, ok := held.CheckedAdd(amount)
	if !ok {
		return types.ErrSupplyOverflow.Wrapf("%s balance of %s", to, asset)
	}

	k.setBalance(store, supplyKey, supply)
	k.setBalance(store, balanceKey, balance)
	return nil
}

func (k Keeper) getBalance(store storetypes.KVStore, key []byte) (ammtypes.Balance, error) {
	bz := store.Get(key)
	if bz == nil {
		return ammtypes.ZeroBalance(), nil
	}
	balance, err := ammtypes.BalanceFromBytes(bz)
	if err != nil {
		return ammtypes.Balance{}, types.ErrCorruptBalance.Wrapf("key %X: %v", key, err)
	}
	return balance, nil
}

// setBalance deletes zero balances so iteration only sees held assets.
func (k Keeper) setBalance(store storetypes.KVStore, key []byte, balance ammtypes.Balance) {
	if balance.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, balance.Bytes())
}

func validateMovement(asset ammtypes.AssetID, accounts ...string) error {
	if err := asset.Validate(); err != nil {
		return types.ErrInvalidAsset.Wrap(err.Error())
	}
	for _, account := range accounts {
		if err := types.ValidateAccount(account); err != nil {
			return err
		}
	}
	return nil
}

func emitSupplyEvent(ctx context.Context, eventType, account string, asset ammtypes.AssetID, amount ammtypes.Balance) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyRecipient, account),
			sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}
