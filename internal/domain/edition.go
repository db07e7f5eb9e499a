package domain

import "time"

// Edition is one immutable board configuration. Editions are append-only:
// number 0 is created at genesis and every later edition gets the next
// sequential number. Nothing ever mutates or deletes an edition, so deeds
// minted against old boards stay interpretable.
type Edition struct {
	Number         int       `json:"number"`
	Lands          int       `json:"lands"`
	RarityLevels   int       `json:"rarity_levels"`
	BuildTypes     int       `json:"build_types"`
	BuildableLands []int     `json:"buildable_lands"`
	CreatedAt      time.Time `json:"created_at"`
}

// GenesisEdition is the board configuration present from system genesis:
// the classic 40-cell topology, where the buildable cells are the
// purchasable ones.
func GenesisEdition() Edition {
	return Edition{
		Number:       0,
		Lands:        40,
		RarityLevels: 3,
		BuildTypes:   2,
		BuildableLands: []int{
			1, 3, 5, 6, 8, 9, 11, 12, 13, 14, 15, 16, 18, 19,
			21, 23, 24, 25, 26, 27, 28, 29, 31, 32, 34, 35, 37, 39,
		},
	}
}

func (e Edition) IsBuildable(land int) bool {
	for _, l := range e.BuildableLands {
		if l == land {
			return true
		}
	}
	return false
}

// ValidDeedCoordinate reports whether (land, rarity) is an allowed deed
// coordinate on this edition.
func (e Edition) ValidDeedCoordinate(land, rarity int) bool {
	return land >= 0 && land < e.Lands && rarity >= 0 && rarity < e.RarityLevels
}

// ValidBuildingCoordinate reports whether (land, buildType) is an allowed
// building coordinate on this edition. Buildings additionally require the
// land to be a buildable cell.
func (e Edition) ValidBuildingCoordinate(land, buildType int) bool {
	return e.IsBuildable(land) && buildType >= 0 && buildType < e.BuildTypes
}
