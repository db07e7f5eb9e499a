package domain

import "time"

// Deed is a unique land-deed asset. At most MaxDeedSupply(rarity) deeds
// ever exist per (edition, land, rarity) bucket; serial is the zero-based
// position within that bucket. Deeds are never destroyed - a resale to the
// bank only reassigns ownership.
type Deed struct {
	AssetID    int64     `json:"asset_id"`
	Edition    int       `json:"edition"`
	Land       int       `json:"land"`
	Rarity     int       `json:"rarity"`
	Serial     int       `json:"serial"`
	OwnerID    uint      `json:"owner_id"`
	ApprovedID *uint     `json:"approved_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MaxDeedSupply is the hard cap of deeds per (edition, land, rarity)
// bucket: 10^rarity. Rarity 0 is unique per land.
func MaxDeedSupply(rarity int) int64 {
	cap := int64(1)
	for i := 0; i < rarity; i++ {
		cap *= 10
	}
	return cap
}

// IsApprovedFor reports whether spender may move the deed on the owner's
// behalf.
func (d Deed) IsApprovedFor(spender uint) bool {
	return d.ApprovedID != nil && *d.ApprovedID == spender
}
