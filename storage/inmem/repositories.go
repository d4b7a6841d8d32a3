package inmemdb

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/professor"
)

var NowFunc = func() time.Time { return time.Now().UTC() } // mockable

// currencies

type currencyRepository struct {
	db *currencyTable
}

var _ currency.Repository = (*currencyRepository)(nil)

func NewCurrencyRepository(db *DB) currency.Repository {
	return &currencyRepository{db: db.currency}
}

func (repo *currencyRepository) QueryCurrencies(context.Context) ([]currency.Currency, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	currencies := make([]currency.Currency, len(repo.db.table))
	copy(currencies, repo.db.table)
	return currencies, nil
}

// plans

type planRepository struct {
	db *planTable
}

var _ plan.Repository = (*planRepository)(nil)

func NewPlanRepository(db *DB) plan.Repository {
	return &planRepository{db: db.plan}
}

func (repo *planRepository) GetPlan(_ context.Context, id int) (plan.Plan, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return plan.Plan{}, plan.ErrNotFound
}

// professors

type professorRepository struct {
	db *professorTable
}

var _ professor.Repository = (*professorRepository)(nil)

func NewProfessorRepository(db *DB) professor.Repository {
	return &professorRepository{db: db.professor}
}

func (repo *professorRepository) GetProfessor(_ context.Context, id int) (professor.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prof, ok := repo.db.table[id]; ok {
		return *prof, nil
	}
	return professor.Professor{}, professor.ErrNotFound
}

// enrollments

type enrollmentRepository struct {
	db *enrollmentTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db.enrollment}
}

func enrollmentFrom(id int, p enrollment.Payload) enrollment.Enrollment {
	studentIDs := make([]int, len(p.StudentIDs))
	copy(studentIDs, p.StudentIDs)
	return enrollment.Enrollment{
		ID:              id,
		StudentIDs:      studentIDs,
		PlanID:          p.PlanID,
		ProfessorID:     p.ProfessorID,
		PricePerStudent: p.PricePerStudent,
		EnrollmentType:  p.EnrollmentType,
		TotalAmount:     p.TotalAmount,
	}
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, payload enrollment.Payload) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	enr := enrollmentFrom(repo.db.pkCount, payload)
	repo.db.table[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollmentRepository) UpdateEnrollment(_ context.Context, id int, payload enrollment.Payload) (enrollment.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return enrollment.Enrollment{}, enrollment.ErrNotFound
	}
	enr := enrollmentFrom(id, payload)
	repo.db.table[id] = &enr
	return enr, nil
}

// payouts

type payoutRepository struct {
	db *payoutTable
}

var _ payout.Repository = (*payoutRepository)(nil)

func NewPayoutRepository(db *DB) payout.Repository {
	return &payoutRepository{db: db.payout}
}

// CreatePayout registers the payout with totals computed from its details, as the backend does.
func (repo *payoutRepository) CreatePayout(_ context.Context, payload payout.Payload) (payout.Payout, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	subtotal := decimal.Zero
	for _, d := range payload.Details {
		switch d.Status {
		case payout.KindClass:
			subtotal = subtotal.Add(d.HoursTaught.Decimal.Mul(d.TotalPerStudent.Decimal))
		case payout.KindBonus:
			subtotal = subtotal.Add(d.Amount.Decimal)
		}
	}

	details := make([]payout.Detail, len(payload.Details))
	copy(details, payload.Details)

	repo.db.pkCount++
	pay := payout.Payout{
		ID:          repo.db.pkCount,
		ProfessorID: payload.ProfessorID,
		Details:     details,
		Discount:    payload.Discount,
		Subtotal:    subtotal,
		Total:       subtotal.Sub(payload.Discount),
		CreatedAt:   NowFunc(),
	}
	repo.db.table[pay.ID] = &pay
	return pay, nil
}

// incomes

type incomeRepository struct {
	db *incomeTable
}

var _ income.Repository = (*incomeRepository)(nil)

func NewIncomeRepository(db *DB) income.Repository {
	return &incomeRepository{db: db.income}
}

func (repo *incomeRepository) CreateIncome(_ context.Context, payload income.Payload) (income.Income, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	inc := income.Income{
		ID:              repo.db.pkCount,
		Amount:          payload.Amount,
		CurrencyID:      payload.CurrencyID,
		Rate:            payload.Rate,
		AmountInDollars: payload.AmountInDollars,
		Description:     payload.Description,
		CreatedAt:       NowFunc(),
	}
	repo.db.table[inc.ID] = &inc
	return inc, nil
}
