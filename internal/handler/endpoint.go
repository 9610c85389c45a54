package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Endpoint is the shared core of one route. The router and the standalone
// functions both call it and only differ in how the Reply is written.
type Endpoint func(r *http.Request) Reply

// Echo adapts the endpoint to an echo route.
func (e Endpoint) Echo() echo.HandlerFunc {
	return func(c echo.Context) error {
		rep := e(c.Request())
		if rep.Allow != "" {
			c.Response().Header().Set(echo.HeaderAllow, rep.Allow)
		}
		return c.JSON(rep.Status, rep.Body)
	}
}

// ServeHTTP lets the endpoint run as a standalone net/http function.
func (e Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			writeJSON(w, http.StatusInternalServerError, NewErrorResponse(msgServerError))
		}
	}()
	rep := e(r)
	if rep.Allow != "" {
		w.Header().Set("Allow", rep.Allow)
	}
	writeJSON(w, rep.Status, rep.Body)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", echo.MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
