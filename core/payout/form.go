package payout

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
)

// Form events
const (
	EventSetProfessor   EventType = "set_professor"
	EventAddClass       EventType = "add_class"
	EventAddBonus       EventType = "add_bonus"
	EventSetEnrollment  EventType = "set_enrollment"
	EventSetHours       EventType = "set_hours"
	EventSetRate        EventType = "set_rate"
	EventSetAmount      EventType = "set_amount"
	EventSetDescription EventType = "set_description"
	EventRemoveItem     EventType = "remove_item"
	EventSetDiscount    EventType = "set_discount"
)

var (
	ErrInvalidEvent = errors.New("invalid form event")
	ErrNoSuchItem   = errors.New("no such payout item")
)

type EventType string

// Event is a user edit of the payout form. Value holds the raw input.
type Event struct {
	Type  EventType `json:"type"`
	Index int       `json:"index"`
	Value string    `json:"value"`
}

// State is the view-model of the payout form.
type State struct {
	ProfessorID int             `json:"professorId"`
	Items       []LineItem      `json:"details"`
	Discount    decimal.Decimal `json:"discount"`
	Summary     Summary         `json:"summary"`
}

func NewState() State {
	return State{Items: []LineItem{}}
}

// Reduce returns the state following ev. s is left untouched.
// Numeric input is coerced, invalid or negative values become 0.
// Every item total and the summary are recomputed from scratch.
func Reduce(s State, ev Event) (State, error) {
	next := s
	next.Items = make([]LineItem, len(s.Items))
	copy(next.Items, s.Items)

	switch ev.Type {
	case EventSetProfessor:
		next.ProfessorID = core.ParseCount(ev.Value)
	case EventAddClass:
		next.Items = append(next.Items, LineItem{Kind: KindClass})
	case EventAddBonus:
		next.Items = append(next.Items, LineItem{Kind: KindBonus})
	case EventSetDiscount:
		next.Discount = nonNegative(core.ParseAmount(ev.Value))
	case EventRemoveItem:
		if err := checkIndex(next.Items, ev.Index); err != nil {
			return s, err
		}
		next.Items = append(next.Items[:ev.Index], next.Items[ev.Index+1:]...)
	case EventSetEnrollment, EventSetHours, EventSetRate, EventSetAmount, EventSetDescription:
		if err := checkIndex(next.Items, ev.Index); err != nil {
			return s, err
		}
		item, err := reduceItem(next.Items[ev.Index], ev)
		if err != nil {
			return s, err
		}
		next.Items[ev.Index] = item
	default:
		return s, errors.Wrapf(ErrInvalidEvent, "unknown event type %q", ev.Type)
	}

	for i := range next.Items {
		next.Items[i] = next.Items[i].Recompute()
	}
	next.Summary = Summarize(Payable(next.Items), next.Discount)
	return next, nil
}

func reduceItem(item LineItem, ev Event) (LineItem, error) {
	switch ev.Type {
	case EventSetEnrollment, EventSetHours, EventSetRate:
		if !item.IsClass() {
			return item, errors.Wrapf(ErrInvalidEvent, "%s on a %s item", ev.Type, item.Kind)
		}
	case EventSetAmount, EventSetDescription:
		if !item.IsBonus() {
			return item, errors.Wrapf(ErrInvalidEvent, "%s on a %s item", ev.Type, item.Kind)
		}
	}

	switch ev.Type {
	case EventSetEnrollment:
		if id := core.ParseCount(ev.Value); id > 0 {
			item.EnrollmentID = null.IntFrom(id)
		} else {
			item.EnrollmentID = null.Int{}
		}
	case EventSetHours:
		item.HoursTaught = nonNegative(core.ParseAmount(ev.Value))
	case EventSetRate:
		item.PayPerHour = nonNegative(core.ParseAmount(ev.Value))
	case EventSetAmount:
		item.Amount = core.ParseAmount(ev.Value)
	case EventSetDescription:
		item.Description = ev.Value
	}
	return item.Recompute(), nil
}

func checkIndex(items []LineItem, i int) error {
	if i < 0 || i >= len(items) {
		return errors.Wrapf(ErrNoSuchItem, "index %d", i)
	}
	return nil
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Submission returns the creation request of the payout being filled in.
func (s State) Submission() NewPayout {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return NewPayout{
		ProfessorID: s.ProfessorID,
		Items:       items,
		Discount:    s.Discount,
	}
}
