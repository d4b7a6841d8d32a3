package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/currency"
)

type currencyApi struct {
	svc *currency.Service
}

func registerCurrencyAPI(g *echo.Group, svc *currency.Service) {
	api := currencyApi{svc: svc}

	g.GET("/currencies", api.query)
}

func (api *currencyApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	currencies, err := api.svc.Query(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying currencies")
	}
	if currencies == nil {
		currencies = []currency.Currency{}
	}
	return ctx.JSON(http.StatusOK, currencies)
}
