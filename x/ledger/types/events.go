package types

// Event types for the ledger module
const (
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"
	EventTypeBurn     = "burn"
	EventTypeFund     = "fund"
)

// Event attribute keys
const (
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAsset     = "asset"
	AttributeKeyAmount    = "amount"
)
