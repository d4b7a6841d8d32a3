package payout

import (
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
)

// Summarize computes the summary of items net of discount.
// Every item counts, payable or not: the caller filters beforehand when needed.
// The total is not floored at zero.
func Summarize(items []LineItem, discount decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Value())
	}
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// Payable returns the items sent to the backend on submission, in order.
func Payable(items []LineItem) []LineItem {
	payable := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.IsPayable() {
			payable = append(payable, item)
		}
	}
	return payable
}

// Dropped returns the indexes of the items left out on submission.
func Dropped(items []LineItem) []int {
	dropped := make([]int, 0)
	for i, item := range items {
		if !item.IsPayable() {
			dropped = append(dropped, i)
		}
	}
	return dropped
}

// ToDetail maps an item to its backend representation.
func (it LineItem) ToDetail() Detail {
	d := Detail{Status: it.Kind}
	switch it.Kind {
	case KindClass:
		d.EnrollmentID = it.EnrollmentID
		d.HoursTaught = core.NullAmount(it.HoursTaught)
		d.TotalPerStudent = core.NullAmount(it.PayPerHour)
	case KindBonus:
		d.Amount = core.NullAmount(it.Amount)
		d.Description = null.StringFrom(core.CleanString(it.Description))
	}
	return d
}

// Details filters items and maps the payable ones to their backend representation.
func Details(items []LineItem) []Detail {
	payable := Payable(items)
	details := make([]Detail, 0, len(payable))
	for _, item := range payable {
		details = append(details, item.ToDetail())
	}
	return details
}

// NewPayload builds the creation payload of a payout.
func NewPayload(professorID int, items []LineItem, discount decimal.Decimal) Payload {
	return Payload{
		ProfessorID: professorID,
		Details:     Details(items),
		Discount:    discount,
	}
}

// BuildPreview recomputes every item and summarizes the payable ones, along with what would be submitted.
func BuildPreview(req PreviewRequest) Preview {
	items := make([]LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.Recompute()
	}
	return Preview{
		Items:   items,
		Summary: Summarize(Payable(items), req.Discount),
		Payload: Details(items),
		Dropped: Dropped(items),
	}
}
