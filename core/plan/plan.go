package plan

import (
	"context"
	"errors"

	"github.com/trezcool/academia/core/pricing"
)

var ErrNotFound = errors.New("plan not found")

// Plan is a course offer priced per student for each headcount category.
type Plan struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Tier pricing.Tier `json:"tier"`
}

type (
	Repository interface {
		GetPlan(ctx context.Context, id int) (Plan, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id int) (Plan, error) {
	if id <= 0 {
		return Plan{}, ErrNotFound
	}
	return svc.repo.GetPlan(ctx, id)
}

// Quote prices an enrollment of studentCount students on the plan.
func (p Plan) Quote(studentCount int) pricing.Quote {
	return pricing.Calculate(studentCount, p.Tier)
}
