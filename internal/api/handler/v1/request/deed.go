package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MintDeedRequest struct {
	To      uint `json:"to"`
	Edition int  `json:"edition"`
	Land    int  `json:"land"`
	Rarity  int  `json:"rarity"`
}

func (req *MintDeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Edition, validation.Min(0)),
		validation.Field(&req.Land, validation.Min(0)),
		validation.Field(&req.Rarity, validation.Min(0)),
	)
}

type TransferDeedRequest struct {
	To uint `json:"to"`
}

func (req *TransferDeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
	)
}

type ApproveDeedRequest struct {
	Spender uint `json:"spender"`
}

func (req *ApproveDeedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Spender, validation.Required),
	)
}
