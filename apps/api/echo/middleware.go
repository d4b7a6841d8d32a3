package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/academia/core"
)

// requestContextMiddleware tags the request context with a request id,
// and the caller's Authorization header to forward to the backend.
func requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()

		id := req.Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		ctx.Response().Header().Set(echo.HeaderXRequestID, id)

		c := core.WithRequestID(req.Context(), id)
		if token := req.Header.Get(echo.HeaderAuthorization); token != "" {
			c = core.WithAuthToken(c, token)
		}
		ctx.SetRequest(req.WithContext(c))
		return next(ctx)
	}
}
