package domain

import "github.com/shopspring/decimal"

// Currency amounts are expressed in 18-decimal base units.
const CurrencyDecimals = 18

// DefaultDeedPrice is the fallback price of a deed coordinate that has
// never had an explicit price set: 600 tokens at rarity 0, divided by 10
// per rarity level, i.e. 600 * 10^(18-rarity) base units. Rarity 2 on the
// genesis board prices at 6 tokens.
func DefaultDeedPrice(rarity int) decimal.Decimal {
	return decimal.New(600, int32(CurrencyDecimals-rarity))
}

// DefaultBuildingPrice is the fallback price for a building unit: a flat
// 2 tokens regardless of type.
func DefaultBuildingPrice() decimal.Decimal {
	return decimal.New(2, CurrencyDecimals)
}
