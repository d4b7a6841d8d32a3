package inmemdb

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/pricing"
	"github.com/trezcool/academia/core/professor"
)

type (
	// DB stands in for the academy backend in development and tests.
	DB struct {
		currency   *currencyTable
		plan       *planTable
		professor  *professorTable
		enrollment *enrollmentTable
		payout     *payoutTable
		income     *incomeTable
	}

	currencyTable struct {
		table []currency.Currency
		mutex sync.RWMutex
	}

	planTable struct {
		table map[int]*plan.Plan
		mutex sync.RWMutex
	}

	professorTable struct {
		table map[int]*professor.Professor
		mutex sync.RWMutex
	}

	enrollmentTable struct {
		table   map[int]*enrollment.Enrollment
		pkCount int
		mutex   sync.RWMutex
	}

	payoutTable struct {
		table   map[int]*payout.Payout
		pkCount int
		mutex   sync.RWMutex
	}

	incomeTable struct {
		table   map[int]*income.Income
		pkCount int
		mutex   sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		currency:   &currencyTable{},
		plan:       &planTable{table: make(map[int]*plan.Plan)},
		professor:  &professorTable{table: make(map[int]*professor.Professor)},
		enrollment: &enrollmentTable{table: make(map[int]*enrollment.Enrollment)},
		payout:     &payoutTable{table: make(map[int]*payout.Payout)},
		income:     &incomeTable{table: make(map[int]*income.Income)},
	}
}

func (db *DB) AddCurrencies(currencies ...currency.Currency) {
	db.currency.mutex.Lock()
	defer db.currency.mutex.Unlock()
	db.currency.table = append(db.currency.table, currencies...)
}

func (db *DB) AddPlans(plans ...plan.Plan) {
	db.plan.mutex.Lock()
	defer db.plan.mutex.Unlock()
	for _, p := range plans {
		p := p
		db.plan.table[p.ID] = &p
	}
}

func (db *DB) AddProfessors(profs ...professor.Professor) {
	db.professor.mutex.Lock()
	defer db.professor.mutex.Unlock()
	for _, prof := range profs {
		prof := prof
		db.professor.table[prof.ID] = &prof
	}
}

// Seed fills the catalogs with demo data.
func (db *DB) Seed() *DB {
	db.AddCurrencies(
		currency.Currency{ID: 1, Name: "Dólar", Code: "USD", Symbol: "$", IsBase: true},
		currency.Currency{ID: 2, Name: "Bolívar", Code: "VES", Symbol: "Bs"},
		currency.Currency{ID: 3, Name: "Peso colombiano", Code: "COP", Symbol: "$"},
		currency.Currency{ID: 4, Name: "Euro", Code: "EUR", Symbol: "€"},
	)
	db.AddPlans(
		plan.Plan{ID: 1, Name: "General English", Tier: pricing.Tier{
			Single: decimal.NewFromInt(40), Couple: decimal.NewFromInt(35), Group: decimal.NewFromInt(30),
		}},
		plan.Plan{ID: 2, Name: "Business English", Tier: pricing.Tier{
			Single: decimal.NewFromInt(55), Couple: decimal.NewFromInt(48), Group: decimal.RequireFromString("42.5"),
		}},
	)
	db.AddProfessors(
		professor.Professor{ID: 1, Name: "Ana Pérez", Email: "ana.perez@localhost"},
		professor.Professor{ID: 2, Name: "Luis Mora"},
	)
	return db
}
