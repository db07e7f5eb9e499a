package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event kinds emitted by mutating operations, consumed by external
// indexers through the events feed.
const (
	EventEditionCreated      = "edition.created"
	EventDeedMinted          = "deed.minted"
	EventDeedTransferred     = "deed.transferred"
	EventDeedApproved        = "deed.approved"
	EventDeedPurchased       = "deed.purchased"
	EventDeedSold            = "deed.sold"
	EventDeedPriceSet        = "deed.price_set"
	EventBuildingMinted      = "building.minted"
	EventBuildingTransferred = "building.transferred"
	EventBuildingPurchased   = "building.purchased"
	EventBuildingPriceSet    = "building.price_set"
	EventCurrencyMinted      = "currency.minted"
	EventCurrencyBurned      = "currency.burned"
	EventCurrencyTransferred = "currency.transferred"
	EventCurrencyApproved    = "currency.approved"
	EventLedgerPaused        = "ledger.paused"
	EventLedgerUnpaused      = "ledger.unpaused"
	EventCapabilityGranted   = "capability.granted"
	EventCapabilityRevoked   = "capability.revoked"
)

// Event carries the key identifiers of one mutating operation. Fields
// that do not apply to the kind stay nil. PrincipalID is the counterparty
// of the operation: the credited account on currency moves, the approved
// spender, the capability grantee.
type Event struct {
	ID          uint             `json:"id"`
	Kind        string           `json:"kind"`
	ActorID     uint             `json:"actor_id"`
	PrincipalID *uint            `json:"principal_id,omitempty"`
	Edition     *int             `json:"edition,omitempty"`
	Land        *int             `json:"land,omitempty"`
	Rarity      *int             `json:"rarity,omitempty"`
	BuildType   *int             `json:"build_type,omitempty"`
	AssetID     *int64           `json:"asset_id,omitempty"`
	ClassID     *int64           `json:"class_id,omitempty"`
	Quantity    *int64           `json:"quantity,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Capability  *string          `json:"capability,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
