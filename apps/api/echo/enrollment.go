package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/enrollment"
)

type enrollmentApi struct {
	svc      *enrollment.Service
	validate *validator.Validate
}

func registerEnrollmentAPI(g *echo.Group, svc *enrollment.Service, validate *validator.Validate) {
	api := enrollmentApi{svc: svc, validate: validate}

	eg := g.Group("/enrollments")
	eg.POST("/quote", api.quote)
	eg.POST("", api.create)
	eg.PUT("/:id", api.update)
}

func (api *enrollmentApi) quote(ctx echo.Context) error {
	var data enrollment.QuoteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to QuoteRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	quote, err := api.svc.Quote(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "quoting enrollment")
	}
	return ctx.JSON(http.StatusOK, quote)
}

func (api *enrollmentApi) create(ctx echo.Context) error {
	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	enr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating enrollment")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *enrollmentApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var data enrollment.NewEnrollment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	enr, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating enrollment")
	}
	return ctx.JSON(http.StatusOK, enr)
}
