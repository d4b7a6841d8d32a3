package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestToUSD(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		rate     decimal.Decimal
		want     decimal.Decimal
	}{
		{name: "Dollar is identity", amount: dec("100"), currency: "Dollar", rate: dec("35"), want: dec("100")},
		{name: "dólar is identity", amount: dec("100"), currency: "dólar", rate: dec("0.5"), want: dec("100")},
		{name: "DÓLAR is identity", amount: dec("100"), currency: "DÓLAR", rate: dec("7"), want: dec("100")},
		{name: "dolar without accent", amount: dec("100"), currency: "Dolar", rate: dec("7"), want: dec("100")},
		{name: "surrounding spaces", amount: dec("100"), currency: "  dollar ", rate: dec("7"), want: dec("100")},
		{name: "dollar with zero rate", amount: dec("100"), currency: "dollar", rate: decimal.Zero, want: dec("100")},
		{name: "bolivar", amount: dec("350"), currency: "Bolivar", rate: dec("35"), want: dec("10")},
		{name: "zero rate", amount: dec("100"), currency: "Bolivar", rate: decimal.Zero, want: dec("100")},
		{name: "negative rate", amount: dec("100"), currency: "Bolivar", rate: dec("-4"), want: dec("100")},
		{name: "fractional rate", amount: dec("10"), currency: "Euro", rate: dec("0.8"), want: dec("12.5")},
		{name: "zero amount", amount: decimal.Zero, currency: "Peso", rate: dec("4000"), want: decimal.Zero},
		{name: "dollar-ish names are not dollars", amount: dec("100"), currency: "Australian dollar", rate: dec("2"), want: dec("50")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToUSD(tt.amount, tt.currency, tt.rate)
			if !got.Equal(tt.want) {
				t.Errorf("ToUSD() = %v, want %v", got, tt.want)
			}
			// no hidden state
			if again := ToUSD(tt.amount, tt.currency, tt.rate); !again.Equal(got) {
				t.Errorf("ToUSD() second call = %v, first call %v", again, got)
			}
		})
	}
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "dolar", FoldName("Dólar"))
	assert.Equal(t, "dollar", FoldName(" DOLLAR "))
	assert.Equal(t, "bolivar", FoldName("Bolívar"))
	assert.Equal(t, "", FoldName("  "))
}

func TestNormalizer_IsBase(t *testing.T) {
	n := NewNormalizer("usd", DefaultLegacyBaseNames)

	tests := []struct {
		name     string
		currency Currency
		want     bool
	}{
		{name: "explicit flag", currency: Currency{Name: "Anything", Code: "VES", IsBase: true}, want: true},
		{name: "iso code", currency: Currency{Name: "US Dollar", Code: "USD"}, want: true},
		{name: "iso code wins over name", currency: Currency{Name: "Dollar", Code: "AUD"}, want: false},
		{name: "legacy name without code", currency: Currency{Name: "Dólar"}, want: true},
		{name: "other currency", currency: Currency{Name: "Bolívar", Code: "VES"}, want: false},
		{name: "other legacy name", currency: Currency{Name: "Euro"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.IsBase(tt.currency); got != tt.want {
				t.Errorf("IsBase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := DefaultNormalizer

	usd := n.Normalize(dec("120"), Currency{Name: "Dólar", Code: "USD"}, dec("36.5"))
	assert.True(t, usd.ExchangeRate.Equal(dec("1")), "rate forced to 1, got %v", usd.ExchangeRate)
	assert.True(t, usd.AmountInUSD.Equal(dec("120")))
	assert.Equal(t, "Dólar", usd.CurrencyName)

	ves := n.Normalize(dec("730"), Currency{Name: "Bolívar", Code: "VES"}, dec("36.5"))
	assert.True(t, ves.ExchangeRate.Equal(dec("36.5")))
	assert.True(t, ves.AmountInUSD.Equal(dec("20")), "got %v", ves.AmountInUSD)
}

func TestNormalizer_customLegacyNames(t *testing.T) {
	n := NewNormalizer("EUR", []string{"euro"})
	assert.True(t, n.IsBase(Currency{Name: "EURO"}))
	assert.False(t, n.IsBase(Currency{Name: "Dollar"}))
	assert.True(t, n.ToBase(dec("10"), Currency{Name: "Dollar"}, dec("0.5")).Equal(dec("20")))
}

func TestEffectiveRate(t *testing.T) {
	assert.True(t, EffectiveRate(decimal.Zero).Equal(dec("1")))
	assert.True(t, EffectiveRate(dec("-1")).Equal(dec("1")))
	assert.True(t, EffectiveRate(dec("35")).Equal(dec("35")))
}
