package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEditionRequest struct {
	Lands          int   `json:"lands"`
	RarityLevels   int   `json:"rarity_levels"`
	BuildTypes     int   `json:"build_types"`
	BuildableLands []int `json:"buildable_lands"`
}

func (req *CreateEditionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Lands, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&req.RarityLevels, validation.Required, validation.Min(1), validation.Max(18)),
		validation.Field(&req.BuildTypes, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}
