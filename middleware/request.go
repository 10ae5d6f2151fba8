package middleware

import (
	"github.com/siherrmann/sheetReconciler/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const HeaderRequestID = "X-Request-Id"

func (r *Middleware) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		rc := model.GetRequestContext(c)

		rc.RequestID = c.Request().Header.Get(HeaderRequestID)
		if rc.RequestID == "" {
			rc.RequestID = uuid.NewString()
		}
		rc.Url = c.Request().URL.Path
		rc.HxRequest = c.Request().Header.Get("hx-request") == "true"

		model.SetRequestContext(c, rc)
		c.Response().Header().Set(HeaderRequestID, rc.RequestID)

		return next(c)
	}
}
