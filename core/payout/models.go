package payout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
)

// Line item kinds, sent as the detail "status".
const (
	KindClass Kind = 1
	KindBonus Kind = 2
)

var (
	errNoPayableItems     = errors.New("at least one class with hours taught or a described bonus is required")
	errEnrollmentRequired = errors.New("the enrollment of a class is required")
)

type Kind int

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindBonus:
		return "bonus"
	}
	return "unknown"
}

// LineItem is one line of a payout: either class hours taught on an enrollment
// or a flat bonus. Kind tells which fields are meaningful.
type LineItem struct {
	Kind Kind `json:"status" validate:"oneof=1 2"`

	// class
	EnrollmentID null.Int        `json:"enrollmentId"`
	HoursTaught  decimal.Decimal `json:"hoursTaught" validate:"gte=0"`
	PayPerHour   decimal.Decimal `json:"payPerHour" validate:"gte=0"`
	Total        decimal.Decimal `json:"total"`

	// bonus
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func NewClassItem(enrollmentID int, hoursTaught, payPerHour decimal.Decimal) LineItem {
	item := LineItem{
		Kind:         KindClass,
		EnrollmentID: null.IntFrom(enrollmentID),
		HoursTaught:  hoursTaught,
		PayPerHour:   payPerHour,
	}
	return item.Recompute()
}

func NewBonusItem(description string, amount decimal.Decimal) LineItem {
	return LineItem{
		Kind:        KindBonus,
		Description: description,
		Amount:      amount,
	}
}

func (it LineItem) IsClass() bool { return it.Kind == KindClass }
func (it LineItem) IsBonus() bool { return it.Kind == KindBonus }

// Recompute returns the item with its class total derived from hours & rate.
func (it LineItem) Recompute() LineItem {
	if it.IsClass() {
		it.Total = it.HoursTaught.Mul(it.PayPerHour)
	} else {
		it.Total = decimal.Zero
	}
	return it
}

// Value is what the item adds to the subtotal.
func (it LineItem) Value() decimal.Decimal {
	switch it.Kind {
	case KindClass:
		return it.HoursTaught.Mul(it.PayPerHour)
	case KindBonus:
		return it.Amount
	}
	return decimal.Zero
}

// IsPayable reports whether the item is sent to the backend on submission:
// classes need hours taught, bonuses need a description.
func (it LineItem) IsPayable() bool {
	switch it.Kind {
	case KindClass:
		return it.HoursTaught.IsPositive()
	case KindBonus:
		return strings.TrimSpace(it.Description) != ""
	}
	return false
}

// Label describes the item on statements.
func (it LineItem) Label() string {
	if it.IsBonus() {
		return strings.TrimSpace(it.Description)
	}
	label := "Class: " + it.HoursTaught.String() + "h x " + it.PayPerHour.StringFixed(2)
	if it.EnrollmentID.Valid {
		label += " (enrollment #" + strconv.Itoa(it.EnrollmentID.Int) + ")"
	}
	return label
}

type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Detail is a payout line as sent to the backend.
// Fields that do not apply to the line kind are sent as null.
type Detail struct {
	EnrollmentID    null.Int            `json:"enrollmentId"`
	HoursTaught     decimal.NullDecimal `json:"hoursTaught"`
	TotalPerStudent decimal.NullDecimal `json:"totalPerStudent"`
	Amount          decimal.NullDecimal `json:"amount"`
	Description     null.String         `json:"description"`
	Status          Kind                `json:"status"`
}

// Payload is the body of a payout creation request.
type Payload struct {
	ProfessorID int             `json:"professorId"`
	Details     []Detail        `json:"details"`
	Discount    decimal.Decimal `json:"discount"`
}

// Payout as registered by the backend, which owns the authoritative totals.
type Payout struct {
	ID          int             `json:"id"`
	ProfessorID int             `json:"professorId"`
	Details     []Detail        `json:"details"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewPayout contains information needed to create a new Payout.
type NewPayout struct {
	ProfessorID int             `json:"professorId" validate:"required,gt=0"`
	Items       []LineItem      `json:"details" validate:"required,min=1,dive"`
	Discount    decimal.Decimal `json:"discount" validate:"gte=0"`
}

// Validate checks field presence, then that something payable remains once filtered
// and, unless allowNegative, that the discount does not exceed the subtotal.
func (np *NewPayout) Validate(validate *validator.Validate, allowNegative bool) error {
	for i := range np.Items {
		np.Items[i].Description = core.CleanString(np.Items[i].Description)
		np.Items[i] = np.Items[i].Recompute()
	}

	if err := validate.Struct(np); err != nil {
		return err
	}

	var fldErrs []core.FieldError
	for i, item := range np.Items {
		if item.IsClass() && item.IsPayable() && !item.EnrollmentID.Valid {
			fldErrs = append(fldErrs, core.FieldError{
				Field: fmt.Sprintf("details[%d].enrollmentId", i),
				Error: errEnrollmentRequired.Error(),
			})
		}
	}
	if fldErrs != nil {
		return core.NewValidationError(errEnrollmentRequired, fldErrs...)
	}

	payable := Payable(np.Items)
	if len(payable) == 0 {
		return core.NewValidationError(errNoPayableItems, core.FieldError{Field: "details", Error: errNoPayableItems.Error()})
	}
	if !allowNegative {
		if sum := Summarize(payable, np.Discount); sum.Total.IsNegative() {
			msg := "discount cannot exceed the subtotal of " + sum.Subtotal.StringFixed(2)
			return core.NewValidationError(errors.New(msg), core.FieldError{Field: "discount", Error: msg})
		}
	}
	return nil
}

// PreviewRequest asks for the summary of a payout being filled in.
type PreviewRequest struct {
	Items    []LineItem      `json:"details"`
	Discount decimal.Decimal `json:"discount"`
}

// Preview is what the dashboard shows before submitting a payout.
type Preview struct {
	Items   []LineItem `json:"details"`
	Summary Summary    `json:"summary"`
	Payload []Detail   `json:"payload"`
	Dropped []int      `json:"dropped"` // indexes of the items left out of the payload
}
