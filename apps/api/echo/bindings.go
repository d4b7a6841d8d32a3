package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/academia/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = core.ParseOrdering(ctx.QueryParam(orderingParam))
}

// idParam returns the positive integer id of the path, or errHttpNotFound.
func idParam(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}
