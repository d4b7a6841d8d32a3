package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/payout"
)

type payoutApi struct {
	svc                *payout.Service
	validate           *validator.Validate
	allowNegativeTotal bool
}

func registerPayoutAPI(g *echo.Group, svc *payout.Service, validate *validator.Validate, allowNegativeTotal bool) {
	api := payoutApi{svc: svc, validate: validate, allowNegativeTotal: allowNegativeTotal}

	pg := g.Group("/payouts")
	pg.POST("/preview", api.preview)
	pg.POST("", api.create)
}

// preview never fails on incomplete items: it is called while the form is being filled in.
func (api *payoutApi) preview(ctx echo.Context) error {
	var data payout.PreviewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PreviewRequest")
	}
	return ctx.JSON(http.StatusOK, api.svc.Preview(data))
}

func (api *payoutApi) create(ctx echo.Context) error {
	var data payout.NewPayout
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayout")
	}
	if err := data.Validate(api.validate, api.allowNegativeTotal); err != nil {
		return err
	}

	pay, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating payout")
	}
	return ctx.JSON(http.StatusCreated, pay)
}
