package enrollment

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/pricing"
)

var (
	errNoStudents     = errors.New("at least one student is required")
	errInvalidStudent = errors.New("this student reference is not valid")
	errPlanOrTier     = errors.New("either a plan or a price tier is required")
)

// Enrollment as registered by the backend.
type Enrollment struct {
	ID              int                    `json:"id"`
	StudentIDs      []int                  `json:"studentIds"`
	PlanID          int                    `json:"planId"`
	ProfessorID     int                    `json:"professorId"`
	PricePerStudent decimal.Decimal        `json:"pricePerStudent"`
	EnrollmentType  pricing.EnrollmentType `json:"enrollmentType"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
}

// Payload is the body of enrollment creation and update requests.
type Payload struct {
	StudentIDs      []int                  `json:"studentIds"`
	PlanID          int                    `json:"planId"`
	ProfessorID     int                    `json:"professorId"`
	PricePerStudent decimal.Decimal        `json:"pricePerStudent"`
	EnrollmentType  pricing.EnrollmentType `json:"enrollmentType"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
}

// NewPayload prices the enrollment of studentIDs on a plan of the given tier.
func NewPayload(studentIDs []int, planID, professorID int, tier pricing.Tier) Payload {
	quote := pricing.Calculate(len(studentIDs), tier)
	return Payload{
		StudentIDs:      studentIDs,
		PlanID:          planID,
		ProfessorID:     professorID,
		PricePerStudent: quote.PricePerStudent,
		EnrollmentType:  quote.EnrollmentType,
		TotalAmount:     quote.TotalAmount,
	}
}

// NewEnrollment contains information needed to create or update an Enrollment.
type NewEnrollment struct {
	Students    []StudentRef `json:"studentIds" validate:"required"`
	PlanID      int          `json:"planId" validate:"required,gt=0"`
	ProfessorID int          `json:"professorId" validate:"required,gt=0"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	if err := validate.Struct(ne); err != nil {
		return err
	}

	var fldErrs []core.FieldError
	for i, ref := range ne.Students {
		if ref.StudentID() <= 0 {
			fldErrs = append(fldErrs, core.FieldError{
				Field: fmt.Sprintf("studentIds[%d]", i),
				Error: errInvalidStudent.Error(),
			})
		}
	}
	if fldErrs != nil {
		return core.NewValidationError(errInvalidStudent, fldErrs...)
	}
	if len(StudentIDs(ne.Students)) == 0 {
		return core.NewValidationError(errNoStudents, core.FieldError{Field: "studentIds", Error: errNoStudents.Error()})
	}
	return nil
}

// QuoteRequest asks for the price of an enrollment, on a plan or an explicit tier.
// StudentCount is only used when no students are given.
type QuoteRequest struct {
	StudentCount int           `json:"studentCount" validate:"gte=0"`
	Students     []StudentRef  `json:"studentIds"`
	PlanID       int           `json:"planId" validate:"gte=0"`
	Tier         *pricing.Tier `json:"tier"`
}

func (qr *QuoteRequest) Validate(validate *validator.Validate) error {
	if err := validate.Struct(qr); err != nil {
		return err
	}
	if qr.PlanID == 0 && qr.Tier == nil {
		return core.NewValidationError(errPlanOrTier,
			core.FieldError{Field: "planId", Error: errPlanOrTier.Error()},
			core.FieldError{Field: "tier", Error: errPlanOrTier.Error()},
		)
	}
	return nil
}

// Headcount returns the number of distinct students referenced, or StudentCount when none is.
func (qr QuoteRequest) Headcount() int {
	if len(qr.Students) > 0 {
		return len(StudentIDs(qr.Students))
	}
	return qr.StudentCount
}
