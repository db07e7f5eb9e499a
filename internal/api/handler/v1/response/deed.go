package response

type DeedExistsResponse struct {
	AssetID int64 `json:"asset_id"`
	Exists  bool  `json:"exists"`
}

type DeedCountResponse struct {
	Edition int   `json:"edition"`
	Land    int   `json:"land"`
	Rarity  int   `json:"rarity"`
	Count   int64 `json:"count"`
}

type DeedTotalSupplyResponse struct {
	TotalSupply int64 `json:"total_supply"`
}
