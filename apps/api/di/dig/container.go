package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	"github.com/trezcool/academia/core/professor"
	emailsvc "github.com/trezcool/academia/services/email"
	logsvc "github.com/trezcool/academia/services/logger"
	inmemdb "github.com/trezcool/academia/storage/inmem"
	"github.com/trezcool/academia/storage/restapi"
)

type (
	StorageLoggerParam struct {
		dig.In
		Logger core.Logger `name:"storageLogger"`
	}

	// Repositories are the backend access of every domain, remote or in-memory.
	Repositories struct {
		dig.Out
		Currency   currency.Repository
		Plan       plan.Repository
		Professor  professor.Repository
		Enrollment enrollment.Repository
		Payout     payout.Repository
		Income     income.Repository
	}

	serverParams struct {
		dig.In
		Conf          *core.Config
		Logger        core.Logger
		Validate      *validator.Validate
		Translator    ut.Translator
		CurrencySvc   *currency.Service
		PlanSvc       *plan.Service
		EnrollmentSvc *enrollment.Service
		PayoutSvc     *payout.Service
		IncomeSvc     *income.Service
	}
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStorageLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORAGE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newRepositories talks to the academy backend when one is configured,
// and falls back on a seeded in-memory store otherwise.
func newRepositories(conf *core.Config, loggerParam StorageLoggerParam) Repositories {
	logger := loggerParam.Logger

	if conf.Backend.BaseURL == "" {
		logger.Warn("no backend configured: serving seeded in-memory data")
		db := inmemdb.Open().Seed()
		return Repositories{
			Currency:   inmemdb.NewCurrencyRepository(db),
			Plan:       inmemdb.NewPlanRepository(db),
			Professor:  inmemdb.NewProfessorRepository(db),
			Enrollment: inmemdb.NewEnrollmentRepository(db),
			Payout:     inmemdb.NewPayoutRepository(db),
			Income:     inmemdb.NewIncomeRepository(db),
		}
	}

	client := restapi.NewClient(conf)
	ctx, cancel := context.WithTimeout(context.Background(), 3*conf.Backend.Timeout)
	defer cancel()
	if err := client.WaitReady(ctx, 5); err != nil {
		// the backend may come up later: requests will fail until then
		logger.Error(fmt.Sprintf("backend %s not ready: %v", conf.Backend.BaseURL, err), err)
	}
	return Repositories{
		Currency:   restapi.NewCurrencyRepository(client),
		Plan:       restapi.NewPlanRepository(client),
		Professor:  restapi.NewProfessorRepository(client),
		Enrollment: restapi.NewEnrollmentRepository(client),
		Payout:     restapi.NewPayoutRepository(client),
		Income:     restapi.NewIncomeRepository(client),
	}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		CurrencySvc:   p.CurrencySvc,
		PlanSvc:       p.PlanSvc,
		EnrollmentSvc: p.EnrollmentSvc,
		PayoutSvc:     p.PayoutSvc,
		IncomeSvc:     p.IncomeSvc,
	})
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStorageLogger, dig.Name("storageLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(currency.NewService))
	must(c.Provide(plan.NewService))
	must(c.Provide(enrollment.NewService))
	must(c.Provide(payout.NewService))
	must(c.Provide(income.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
