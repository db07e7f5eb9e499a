package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var errInvalidBaseUnitAmount = errors.New("must be a positive whole number of base units")

// isBaseUnitAmount accepts positive integer decimal strings. Currency
// amounts travel as base units, never fractions.
var isBaseUnitAmount = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errInvalidBaseUnitAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || amount.Sign() <= 0 || !amount.IsInteger() {
		return errInvalidBaseUnitAmount
	}

	return nil
})
