package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/income"
)

type incomeApi struct {
	svc      *income.Service
	validate *validator.Validate
}

func registerIncomeAPI(g *echo.Group, svc *income.Service, validate *validator.Validate) {
	api := incomeApi{svc: svc, validate: validate}

	ig := g.Group("/incomes")
	ig.POST("/convert", api.convert)
	ig.POST("", api.create)
}

func (api *incomeApi) convert(ctx echo.Context) error {
	var data income.ConvertRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ConvertRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	amount, err := api.svc.Convert(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "converting amount")
	}
	return ctx.JSON(http.StatusOK, amount)
}

func (api *incomeApi) create(ctx echo.Context) error {
	var data income.NewIncome
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIncome")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	inc, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating income")
	}
	return ctx.JSON(http.StatusCreated, inc)
}
