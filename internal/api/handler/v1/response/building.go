package response

type BuildingMintResponse struct {
	ClassID   int64 `json:"class_id"`
	Edition   int   `json:"edition"`
	Land      int   `json:"land"`
	BuildType int   `json:"build_type"`
	Quantity  int64 `json:"quantity"`
	OwnerID   uint  `json:"owner_id"`
}

type BuildingBalanceResponse struct {
	OwnerID   uint  `json:"owner_id"`
	Edition   int   `json:"edition"`
	Land      int   `json:"land"`
	BuildType int   `json:"build_type"`
	Balance   int64 `json:"balance"`
}

type BuildingSupplyResponse struct {
	Edition     int   `json:"edition"`
	Land        int   `json:"land"`
	BuildType   int   `json:"build_type"`
	TotalSupply int64 `json:"total_supply"`
}
