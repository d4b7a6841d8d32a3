package enrollment

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/pricing"
)

var ErrNotFound = errors.New("enrollment not found")

type (
	Repository interface {
		CreateEnrollment(ctx context.Context, payload Payload) (Enrollment, error)
		UpdateEnrollment(ctx context.Context, id int, payload Payload) (Enrollment, error)
	}

	Service struct {
		repo    Repository
		planSvc *plan.Service
	}
)

func NewService(repo Repository, planSvc *plan.Service) *Service {
	return &Service{repo: repo, planSvc: planSvc}
}

// Quote prices an enrollment; an explicit tier wins over the plan's.
func (svc *Service) Quote(ctx context.Context, qr QuoteRequest) (pricing.Quote, error) {
	if qr.Tier != nil {
		return pricing.Calculate(qr.Headcount(), *qr.Tier), nil
	}
	p, err := svc.planSvc.GetByID(ctx, qr.PlanID)
	if err != nil {
		return pricing.Quote{}, errors.Wrap(err, "getting plan")
	}
	return p.Quote(qr.Headcount()), nil
}

// payload prices ne with the current tier of its plan.
func (svc *Service) payload(ctx context.Context, ne NewEnrollment) (Payload, error) {
	p, err := svc.planSvc.GetByID(ctx, ne.PlanID)
	if err != nil {
		return Payload{}, errors.Wrap(err, "getting plan")
	}
	return NewPayload(StudentIDs(ne.Students), ne.PlanID, ne.ProfessorID, p.Tier), nil
}

// Create registers a validated enrollment, priced at submission time.
func (svc *Service) Create(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	payload, err := svc.payload(ctx, ne)
	if err != nil {
		return Enrollment{}, err
	}
	enr, err := svc.repo.CreateEnrollment(ctx, payload)
	if err != nil {
		return Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return enr, nil
}

// Update replaces the students, plan and professor of enrollment id and reprices it.
func (svc *Service) Update(ctx context.Context, id int, ne NewEnrollment) (Enrollment, error) {
	if id <= 0 {
		return Enrollment{}, ErrNotFound
	}
	payload, err := svc.payload(ctx, ne)
	if err != nil {
		return Enrollment{}, err
	}
	enr, err := svc.repo.UpdateEnrollment(ctx, id, payload)
	if err != nil {
		return Enrollment{}, errors.Wrap(err, "updating enrollment")
	}
	return enr, nil
}
