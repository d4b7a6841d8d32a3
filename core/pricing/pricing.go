package pricing

import "github.com/shopspring/decimal"

// TypeFor returns the enrollment type of a headcount.
// Anything other than 1 or 2 students is a group, including an empty enrollment.
func TypeFor(studentCount int) EnrollmentType {
	switch studentCount {
	case 1:
		return TypeSingle
	case 2:
		return TypeCouple
	default:
		return TypeGroup
	}
}

// Calculate prices an enrollment of studentCount students on the given tier.
// An empty (or negative) headcount is priced at 0.
func Calculate(studentCount int, tier Tier) Quote {
	if studentCount < 0 {
		studentCount = 0
	}
	et := TypeFor(studentCount)

	price := decimal.Zero
	if studentCount > 0 {
		price = tier.Price(et)
	}

	return Quote{
		StudentCount:    studentCount,
		PricePerStudent: price,
		EnrollmentType:  et,
		TotalAmount:     price.Mul(decimal.NewFromInt(int64(studentCount))),
	}
}
