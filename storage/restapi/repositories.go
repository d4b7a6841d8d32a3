package restapi

import (
	"context"
	"strconv"

	"github.com/sendgrid/rest"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/professor"
)

const (
	currenciesEndpoint  = "api/divisas"
	plansEndpoint       = "api/plans"
	professorsEndpoint  = "api/professors"
	enrollmentsEndpoint = "api/enrollments"
	payoutsEndpoint     = "api/payouts"
	incomesEndpoint     = "api/incomes"
)

func detail(endpoint string, id int) string {
	return endpoint + "/" + strconv.Itoa(id)
}

// currencies

type currencyRepository struct {
	client *Client
}

var _ currency.Repository = (*currencyRepository)(nil)

func NewCurrencyRepository(client *Client) currency.Repository {
	return &currencyRepository{client: client}
}

func (repo *currencyRepository) QueryCurrencies(ctx context.Context) ([]currency.Currency, error) {
	currencies := make([]currency.Currency, 0)
	if err := repo.client.do(ctx, rest.Get, currenciesEndpoint, nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// plans

type planRepository struct {
	client *Client
}

var _ plan.Repository = (*planRepository)(nil)

func NewPlanRepository(client *Client) plan.Repository {
	return &planRepository{client: client}
}

func (repo *planRepository) GetPlan(ctx context.Context, id int) (plan.Plan, error) {
	var p plan.Plan
	if err := repo.client.do(ctx, rest.Get, detail(plansEndpoint, id), nil, &p); err != nil {
		if core.IsBackendNotFound(err) {
			return plan.Plan{}, plan.ErrNotFound
		}
		return plan.Plan{}, err
	}
	return p, nil
}

// professors

type professorRepository struct {
	client *Client
}

var _ professor.Repository = (*professorRepository)(nil)

func NewProfessorRepository(client *Client) professor.Repository {
	return &professorRepository{client: client}
}

func (repo *professorRepository) GetProfessor(ctx context.Context, id int) (professor.Professor, error) {
	var prof professor.Professor
	if err := repo.client.do(ctx, rest.Get, detail(professorsEndpoint, id), nil, &prof); err != nil {
		if core.IsBackendNotFound(err) {
			return professor.Professor{}, professor.ErrNotFound
		}
		return professor.Professor{}, err
	}
	return prof, nil
}

// enrollments

type enrollmentRepository struct {
	client *Client
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(client *Client) enrollment.Repository {
	return &enrollmentRepository{client: client}
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, payload enrollment.Payload) (enrollment.Enrollment, error) {
	var enr enrollment.Enrollment
	if err := repo.client.do(ctx, rest.Post, enrollmentsEndpoint, payload, &enr); err != nil {
		return enrollment.Enrollment{}, err
	}
	return enr, nil
}

func (repo *enrollmentRepository) UpdateEnrollment(ctx context.Context, id int, payload enrollment.Payload) (enrollment.Enrollment, error) {
	var enr enrollment.Enrollment
	if err := repo.client.do(ctx, rest.Put, detail(enrollmentsEndpoint, id), payload, &enr); err != nil {
		if core.IsBackendNotFound(err) {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, err
	}
	return enr, nil
}

// payouts

type payoutRepository struct {
	client *Client
}

var _ payout.Repository = (*payoutRepository)(nil)

func NewPayoutRepository(client *Client) payout.Repository {
	return &payoutRepository{client: client}
}

func (repo *payoutRepository) CreatePayout(ctx context.Context, payload payout.Payload) (payout.Payout, error) {
	var pay payout.Payout
	if err := repo.client.do(ctx, rest.Post, payoutsEndpoint, payload, &pay); err != nil {
		return payout.Payout{}, err
	}
	return pay, nil
}

// incomes

type incomeRepository struct {
	client *Client
}

var _ income.Repository = (*incomeRepository)(nil)

func NewIncomeRepository(client *Client) income.Repository {
	return &incomeRepository{client: client}
}

func (repo *incomeRepository) CreateIncome(ctx context.Context, payload income.Payload) (income.Income, error) {
	var inc income.Income
	if err := repo.client.do(ctx, rest.Post, incomesEndpoint, payload, &inc); err != nil {
		return income.Income{}, err
	}
	return inc, nil
}
