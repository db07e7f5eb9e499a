package response

import (
	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/domain"
)

type DeedPriceResponse struct {
	Edition int             `json:"edition"`
	Land    int             `json:"land"`
	Rarity  int             `json:"rarity"`
	Price   decimal.Decimal `json:"price"`
}

type BuildingPriceResponse struct {
	Edition   int             `json:"edition"`
	Land      int             `json:"land"`
	BuildType int             `json:"build_type"`
	Price     decimal.Decimal `json:"price"`
}

type DeedPurchaseResponse struct {
	Deed  domain.Deed     `json:"deed"`
	Price decimal.Decimal `json:"price"`
}

type BuildingPurchaseResponse struct {
	ClassID   int64           `json:"class_id"`
	Edition   int             `json:"edition"`
	Land      int             `json:"land"`
	BuildType int             `json:"build_type"`
	Quantity  int64           `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

type DeedSaleResponse struct {
	AssetID int64           `json:"asset_id"`
	Price   decimal.Decimal `json:"price"`
}

type BankReserveResponse struct {
	BankID  uint            `json:"bank_id"`
	Reserve decimal.Decimal `json:"reserve"`
}
