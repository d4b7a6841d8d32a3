package currency

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// DefaultBaseCode is the ISO code amounts are normalized to.
	DefaultBaseCode = "USD"

	// DefaultLegacyBaseNames are the display names identifying the base currency on records without a code.
	DefaultLegacyBaseNames = []string{"dollar", "dólar"}

	one = decimal.NewFromInt(1)
)

// FoldName folds a currency name for comparison: case-insensitive and diacritic-insensitive.
// e.g. "Dólar " -> "dolar"
func FoldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		stripped = strings.TrimSpace(name)
	}
	return cases.Fold().String(stripped) // a Caser must not be shared between goroutines
}

// EffectiveRate guards conversions against zero, negative or missing rates.
func EffectiveRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsPositive() {
		return rate
	}
	return one
}

// Normalizer converts amounts to the base currency.
type Normalizer struct {
	BaseCode        string
	LegacyBaseNames []string

	legacy map[string]struct{}
}

func NewNormalizer(baseCode string, legacyBaseNames []string) *Normalizer {
	if baseCode == "" {
		baseCode = DefaultBaseCode
	}
	n := &Normalizer{
		BaseCode:        strings.ToUpper(baseCode),
		LegacyBaseNames: legacyBaseNames,
		legacy:          make(map[string]struct{}, len(legacyBaseNames)),
	}
	for _, name := range legacyBaseNames {
		n.legacy[FoldName(name)] = struct{}{}
	}
	return n
}

// DefaultNormalizer normalizes to USD, recognising "dollar" & "dólar" on legacy records.
var DefaultNormalizer = NewNormalizer(DefaultBaseCode, DefaultLegacyBaseNames)

// IsBaseName reports whether a display name designates the base currency.
func (n *Normalizer) IsBaseName(name string) bool {
	_, ok := n.legacy[FoldName(name)]
	return ok
}

// IsBase reports whether c is the base currency.
// The explicit flag wins, then the ISO code; the display name is only consulted for records without a code.
func (n *Normalizer) IsBase(c Currency) bool {
	if c.IsBase {
		return true
	}
	if c.Code != "" {
		return strings.EqualFold(c.Code, n.BaseCode)
	}
	return n.IsBaseName(c.Name)
}

// ToBase converts amount of currency c at the given rate (units of c per base unit).
func (n *Normalizer) ToBase(amount decimal.Decimal, c Currency, rate decimal.Decimal) decimal.Decimal {
	if n.IsBase(c) {
		return amount
	}
	return amount.Div(EffectiveRate(rate))
}

// Normalize returns the Amount of currency c, with the rate forced to 1 for the base currency.
func (n *Normalizer) Normalize(amount decimal.Decimal, c Currency, rate decimal.Decimal) Amount {
	if n.IsBase(c) {
		rate = one
	}
	return Amount{
		Amount:       amount,
		CurrencyName: c.Name,
		ExchangeRate: rate,
		AmountInUSD:  n.ToBase(amount, c, rate),
	}
}

// ToUSD converts amount of the currency named currencyName at exchangeRate into dollars.
// "dollar" & "dólar" (any case, any accents) are converted as is.
func ToUSD(amount decimal.Decimal, currencyName string, exchangeRate decimal.Decimal) decimal.Decimal {
	return DefaultNormalizer.ToBase(amount, Currency{Name: currencyName}, exchangeRate)
}
