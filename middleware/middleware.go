package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcheckout/base/ctx"
	"github.com/x-xyz/nftcheckout/base/log"
	"github.com/x-xyz/nftcheckout/base/metrics"
)

// GoMiddleware holds the middlewares shared by every route
type GoMiddleware struct {
	met metrics.Service
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{
		met: metrics.New("http"),
	}
}

// AddContext stores a ctx.Ctx under "ctx" carrying the request id, and the
// session id on session routes
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cont := ctx.WithValue(ctx.Background(), "requestID", c.Response().Header().Get(echo.HeaderXRequestID))
			if sid := c.Param("id"); sid != "" {
				cont = ctx.WithValue(cont, "session", sid)
			}
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs one line per response and records its latency
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)
			m.met.BumpHistogram("request.latency", elapsed.Seconds()*1000,
				"method", req.Method,
				"path", c.Path(),
				"status", strconv.Itoa(res.Status),
			)

			fields := log.Fields{
				"ms":         elapsed.Seconds() * 1000,
				"httpStatus": res.Status,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"route":      c.Path(),
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
				"origin":     req.Header.Get(echo.HeaderOrigin),
			}

			logger, ok := c.Get("ctx").(ctx.Ctx)
			if !ok {
				logger = ctx.Background()
			}
			switch {
			case res.Status >= 500:
				fields["nextErr"] = err
				logger.WithFields(fields).Error("response")
			case res.Status >= 400:
				fields["nextErr"] = err
				logger.WithFields(fields).Warn("response")
			default:
				logger.WithFields(fields).Info("response")
			}
			return nil
		}
	}
}
