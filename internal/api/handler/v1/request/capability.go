package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CapabilityGrantRequest struct {
	PrincipalID uint   `json:"principal_id"`
	Name        string `json:"name"`
}

func (req *CapabilityGrantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrincipalID, validation.Required),
		validation.Field(&req.Name, validation.Required),
	)
}
