package pricing

import "github.com/shopspring/decimal"

// Enrollment types, derived from the headcount of an enrollment.
const (
	TypeSingle EnrollmentType = "single"
	TypeCouple EnrollmentType = "couple"
	TypeGroup  EnrollmentType = "group"
)

var EnrollmentTypes = []EnrollmentType{TypeSingle, TypeCouple, TypeGroup}

type EnrollmentType string

func (et EnrollmentType) IsValid() bool {
	switch et {
	case TypeSingle, TypeCouple, TypeGroup:
		return true
	}
	return false
}

// Tier holds a plan's price per student for each headcount category.
type Tier struct {
	Single decimal.Decimal `json:"single" validate:"gte=0"`
	Couple decimal.Decimal `json:"couple" validate:"gte=0"`
	Group  decimal.Decimal `json:"group" validate:"gte=0"`
}

// Price returns the price per student of the given category.
func (t Tier) Price(et EnrollmentType) decimal.Decimal {
	switch et {
	case TypeSingle:
		return t.Single
	case TypeCouple:
		return t.Couple
	case TypeGroup:
		return t.Group
	}
	return decimal.Zero
}

type Quote struct {
	StudentCount    int             `json:"studentCount"`
	PricePerStudent decimal.Decimal `json:"pricePerStudent"`
	EnrollmentType  EnrollmentType  `json:"enrollmentType"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}
