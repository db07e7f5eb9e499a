package response

type CapabilitiesResponse struct {
	PrincipalID  uint     `json:"principal_id"`
	Capabilities []string `json:"capabilities"`
}
