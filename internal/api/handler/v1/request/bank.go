package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SetDeedPriceRequest struct {
	Edition int    `json:"edition"`
	Land    int    `json:"land"`
	Rarity  int    `json:"rarity"`
	Price   string `json:"price"`
}

func (req *SetDeedPriceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.Rarity, validation.Min(0)),
		validation.Field(&req.Price, validation.Required, isBaseUnitAmount),
	)
}

type SetBuildingPriceRequest struct {
	Edition   int    `json:"edition"`
	Land      int    `json:"land"`
	BuildType int    `json:"build_type"`
	Price     string `json:"price"`
}

func (req *SetBuildingPriceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.BuildType, validation.Min(0)),
		validation.Field(&req.Price, validation.Required, isBaseUnitAmount),
	)
}

type BuyDeedRequest struct {
	Edition int `json:"edition"`
	Land    int `json:"land"`
	Rarity  int `json:"rarity"`
}

func (req *BuyDeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.Rarity, validation.Min(0)),
	)
}

type BuyBuildingRequest struct {
	Edition   int   `json:"edition"`
	Land      int   `json:"land"`
	BuildType int   `json:"build_type"`
	Quantity  int64 `json:"quantity"`
}

func (req *BuyBuildingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.BuildType, validation.Min(0)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(int64(1))),
	)
}

type SellDeedRequest struct {
	AssetID int64 `json:"asset_id"`
}

func (req *SellDeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AssetID, validation.Min(int64(0))),
	)
}
