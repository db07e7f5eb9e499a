package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MintCurrencyRequest struct {
	To     uint   `json:"to"`
	Amount string `json:"amount"`
}

func (req *MintCurrencyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Amount, validation.Required, isBaseUnitAmount),
	)
}

type BurnCurrencyRequest struct {
	Amount string `json:"amount"`
}

func (req *BurnCurrencyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, isBaseUnitAmount),
	)
}

type TransferCurrencyRequest struct {
	To     uint   `json:"to"`
	Amount string `json:"amount"`
}

func (req *TransferCurrencyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Amount, validation.Required, isBaseUnitAmount),
	)
}

type TransferFromRequest struct {
	From   uint   `json:"from"`
	To     uint   `json:"to"`
	Amount string `json:"amount"`
}

func (req *TransferFromRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.From, validation.Required),
		validation.Field(&req.To, validation.Required),
		validation.Field(&req.Amount, validation.Required, isBaseUnitAmount),
	)
}

type ApproveCurrencyRequest struct {
	Spender uint   `json:"spender"`
	Amount  string `json:"amount"`
}

// Amount zero is allowed here: approving zero revokes the allowance.
func (req *ApproveCurrencyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Spender, validation.Required),
		validation.Field(&req.Amount, validation.Required),
	)
}

type SetPausedRequest struct {
	Paused *bool `json:"paused"`
}

func (req *SetPausedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Paused, validation.NotNil),
	)
}
