package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MintBuildingRequest struct {
	To        uint  `json:"to"`
	Edition   int   `json:"edition"`
	Land      int   `json:"land"`
	BuildType int   `json:"build_type"`
	Quantity  int64 `json:"quantity"`
}

func (req *MintBuildingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.BuildType, validation.Min(0)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(int64(1))),
	)
}

type TransferBuildingRequest struct {
	To        uint  `json:"to"`
	Edition   int   `json:"edition"`
	Land      int   `json:"land"`
	BuildType int   `json:"build_type"`
	Quantity  int64 `json:"quantity"`
}

func (req *TransferBuildingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.BuildType, validation.Min(0)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(int64(1))),
	)
}
