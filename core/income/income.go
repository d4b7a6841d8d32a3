package income

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Income as registered by the backend.
type Income struct {
	ID              int             `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyID      int             `json:"idDivisa"`
	Rate            decimal.Decimal `json:"tasa"`
	AmountInDollars decimal.Decimal `json:"amountInDollars"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Payload is the body of an income creation request.
type Payload struct {
	Amount          decimal.Decimal `json:"amount"`
	CurrencyID      int             `json:"idDivisa"`
	Rate            decimal.Decimal `json:"tasa"`
	AmountInDollars decimal.Decimal `json:"amountInDollars"`
	Description     string          `json:"description,omitempty"`
}

// NewIncome contains information needed to create a new Income.
type NewIncome struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	CurrencyID  int             `json:"idDivisa" validate:"required,gt=0"`
	Rate        decimal.Decimal `json:"tasa" validate:"gte=0"`
	Description string          `json:"description"`
}

func (ni *NewIncome) Validate(validate *validator.Validate) error {
	return validate.Struct(ni)
}

// ConvertRequest asks for the dollar value of an amount.
// The currency is given by id or, failing that, by name or ISO code.
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyID   int             `json:"idDivisa" validate:"required_without=CurrencyName"`
	CurrencyName string          `json:"currencyName" validate:"required_without=CurrencyID"`
	Rate         decimal.Decimal `json:"tasa"`
}

func (cr *ConvertRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(cr)
}
