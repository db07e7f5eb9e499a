package response

import "github.com/shopspring/decimal"

type WalletBalanceResponse struct {
	UserID  uint            `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type WalletAllowanceResponse struct {
	OwnerID   uint            `json:"owner_id"`
	SpenderID uint            `json:"spender_id"`
	Allowance decimal.Decimal `json:"allowance"`
}

type WalletSupplyResponse struct {
	TotalSupply decimal.Decimal `json:"total_supply"`
}

type WalletPausedResponse struct {
	Paused bool `json:"paused"`
}
