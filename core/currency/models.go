package currency

import "github.com/shopspring/decimal"

// Currency as registered in the academy backend ("divisa").
type Currency struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"` // ISO 4217, may be empty on legacy records
	Symbol string `json:"symbol,omitempty"`
	IsBase bool   `json:"isBase"`
}

// Amount is an amount of some currency along with its USD equivalent.
type Amount struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyName string          `json:"currencyName"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	AmountInUSD  decimal.Decimal `json:"amountInUSD"`
}
