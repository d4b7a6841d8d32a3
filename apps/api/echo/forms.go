package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
)

// The dashboard forms are driven server side: the client posts its current state
// along with the user edit, and renders the state returned.

type (
	formDeps struct {
		planSvc     *plan.Service
		currencySvc *currency.Service
		incomeSvc   *income.Service
	}

	formApi struct {
		formDeps
	}

	// a missing state stands for a blank form
	enrollmentFormRequest struct {
		State *enrollment.State `json:"state"`
		Event enrollment.Event  `json:"event"`
	}

	enrollmentFormResponse struct {
		State      enrollment.State         `json:"state"`
		Submission enrollment.NewEnrollment `json:"submission"`
	}

	payoutFormRequest struct {
		State *payout.State `json:"state"`
		Event payout.Event  `json:"event"`
	}

	payoutFormResponse struct {
		State      payout.State     `json:"state"`
		Submission payout.NewPayout `json:"submission"`
	}

	incomeFormRequest struct {
		State *income.State `json:"state"`
		Event income.Event  `json:"event"`
	}

	incomeFormResponse struct {
		State      income.State     `json:"state"`
		Submission income.NewIncome `json:"submission"`
	}
)

func registerFormAPI(g *echo.Group, deps formDeps) {
	api := formApi{deps}

	fg := g.Group("/forms")
	fg.GET("/enrollment", api.newEnrollment)
	fg.POST("/enrollment", api.reduceEnrollment)
	fg.GET("/payout", api.newPayout)
	fg.POST("/payout", api.reducePayout)
	fg.GET("/income", api.newIncome)
	fg.POST("/income", api.reduceIncome)
}

func invalidEvent(err error) error {
	return core.NewValidationError(err, core.FieldError{Field: "event", Error: err.Error()})
}

func (api *formApi) newEnrollment(ctx echo.Context) error {
	s := enrollment.NewState()
	return ctx.JSON(http.StatusOK, enrollmentFormResponse{State: s, Submission: s.Submission()})
}

func (api *formApi) reduceEnrollment(ctx echo.Context) error {
	var data enrollmentFormRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to enrollmentFormRequest")
	}
	s := enrollment.NewState()
	if data.State != nil {
		s = *data.State
	}

	// a plan picked by id is priced with its current tier
	ev := data.Event
	if ev.Type == enrollment.EventSetPlan && ev.Tier == nil {
		if id := core.ParseCount(ev.Value); id > 0 {
			p, err := api.planSvc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				return errors.Wrap(err, "getting plan")
			}
			ev.Tier = &p.Tier
		}
	}

	next, err := enrollment.Reduce(s, ev)
	if err != nil {
		return invalidEvent(err)
	}
	return ctx.JSON(http.StatusOK, enrollmentFormResponse{State: next, Submission: next.Submission()})
}

func (api *formApi) newPayout(ctx echo.Context) error {
	s := payout.NewState()
	return ctx.JSON(http.StatusOK, payoutFormResponse{State: s, Submission: s.Submission()})
}

func (api *formApi) reducePayout(ctx echo.Context) error {
	var data payoutFormRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to payoutFormRequest")
	}
	s := payout.NewState()
	if data.State != nil {
		s = *data.State
	}

	next, err := payout.Reduce(s, data.Event)
	if err != nil {
		return invalidEvent(err)
	}
	return ctx.JSON(http.StatusOK, payoutFormResponse{State: next, Submission: next.Submission()})
}

func (api *formApi) newIncome(ctx echo.Context) error {
	s := income.NewState()
	return ctx.JSON(http.StatusOK, incomeFormResponse{State: s, Submission: s.Submission()})
}

func (api *formApi) reduceIncome(ctx echo.Context) error {
	var data incomeFormRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to incomeFormRequest")
	}
	s := income.NewState()
	if data.State != nil {
		s = *data.State
	}

	// a currency picked by id is resolved from the catalog
	ev := data.Event
	if ev.Type == income.EventSelectCurrency && ev.Currency == nil {
		if id := core.ParseCount(ev.Value); id > 0 {
			c, err := api.currencySvc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Is(err, currency.ErrUnknownCurrency) {
					return invalidEvent(err)
				}
				return errors.Wrap(err, "getting currency")
			}
			ev.Currency = &c
		}
	}

	next, err := api.incomeSvc.Reduce(s, ev)
	if err != nil {
		return invalidEvent(err)
	}
	return ctx.JSON(http.StatusOK, incomeFormResponse{State: next, Submission: next.Submission()})
}
