package income

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
)

// Form events
const (
	EventSetAmount      EventType = "set_amount"
	EventSelectCurrency EventType = "select_currency"
	EventSetRate        EventType = "set_rate"
	EventSetDescription EventType = "set_description"
)

var ErrInvalidEvent = errors.New("invalid form event")

type EventType string

// Event is a user edit of the income form.
// Value holds the raw input; Currency comes along with select_currency.
type Event struct {
	Type     EventType          `json:"type"`
	Value    string             `json:"value"`
	Currency *currency.Currency `json:"currency,omitempty"`
}

// State is the view-model of the income form.
type State struct {
	Amount      decimal.Decimal    `json:"amount"`
	Currency    *currency.Currency `json:"currency"`
	Rate        decimal.Decimal    `json:"tasa"`
	Description string             `json:"description"`
	AmountInUSD decimal.Decimal    `json:"amountInDollars"`
}

func NewState() State {
	return State{Rate: decimal.NewFromInt(1)}
}

// Reduce returns the state following ev, identifying the base currency with currency.DefaultNormalizer.
func Reduce(s State, ev Event) (State, error) {
	return ReduceWith(currency.DefaultNormalizer, s, ev)
}

// ReduceWith returns the state following ev. s is left untouched.
// Selecting the base currency resets the rate to 1, which then stays fixed.
// The dollar amount is recomputed on every transition.
func ReduceWith(n *currency.Normalizer, s State, ev Event) (State, error) {
	next := s
	switch ev.Type {
	case EventSetAmount:
		next.Amount = core.ParseAmount(ev.Value)
	case EventSelectCurrency:
		if ev.Currency == nil {
			next.Currency = nil
			break
		}
		c := *ev.Currency
		next.Currency = &c
		if n.IsBase(c) {
			next.Rate = decimal.NewFromInt(1)
		}
	case EventSetRate:
		if next.Currency != nil && n.IsBase(*next.Currency) {
			break
		}
		next.Rate = core.ParseAmount(ev.Value)
	case EventSetDescription:
		next.Description = ev.Value
	default:
		return s, errors.Wrapf(ErrInvalidEvent, "unknown event type %q", ev.Type)
	}

	next.AmountInUSD = amountInUSD(n, next)
	return next, nil
}

func amountInUSD(n *currency.Normalizer, s State) decimal.Decimal {
	if s.Currency == nil {
		return n.ToBase(s.Amount, currency.Currency{}, s.Rate)
	}
	return n.ToBase(s.Amount, *s.Currency, s.Rate)
}

// Submission returns the creation request of the income being filled in.
func (s State) Submission() NewIncome {
	ni := NewIncome{
		Amount:      s.Amount,
		Rate:        s.Rate,
		Description: s.Description,
	}
	if s.Currency != nil {
		ni.CurrencyID = s.Currency.ID
	}
	return ni
}
