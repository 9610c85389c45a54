package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/app"
	"github.com/shinyyama/billing-api/internal/handler"
	appmw "github.com/shinyyama/billing-api/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	GitSHA         string
	BuildTime      string
	Logger         zerolog.Logger
}

type Server struct {
	e   *echo.Echo
	app *app.App
}

func New(a *app.App, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(opts.Logger)
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(opts.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
		ExposeHeaders:   []string{echo.HeaderXRequestID},
		AllowOriginFunc: originAllowed(opts.AllowedOrigins),
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    opts.GitSHA,
			"build_time": opts.BuildTime,
		})
	})

	mount(e, a.Endpoints)

	return &Server{e: e, app: a}
}

// mount registers every method so the endpoints answer 405 themselves.
func mount(e *echo.Echo, eps handler.Endpoints) {
	e.Any("/users", eps.Users.Echo())
	e.Any("/analytics/summary", eps.AnalyticsSummary.Echo())
	e.Any("/billing/portal-session", eps.PortalSession.Echo())
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func originAllowed(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimRight(a, "/"), u.Scheme+"://"+u.Host) {
				return true, nil
			}
		}
		return false, nil
	}
}

// errorHandler keeps router-level failures (unknown routes, recovered panics)
// in the same {"error": "..."} shape as the endpoints.
func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := "Server error"
		if he, ok := err.(*echo.HTTPError); ok && he.Code < http.StatusInternalServerError {
			status = he.Code
			msg = http.StatusText(he.Code)
		} else {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, handler.NewErrorResponse(msg))
	}
}
