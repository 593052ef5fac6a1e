package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/monitor"
	"github.com/markusressel/hpfan/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamIndex   = "index"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Dependencies are the components served by the REST service.
type Dependencies struct {
	Driver *driver.Driver
	// Monitor adds sample statistics to fan responses, may be nil
	Monitor *monitor.Monitor
	// SelectionChanged is called after a strategy selector was changed, may be nil
	SelectionChanged func(selection persistence.Selection)
	// Registerer receives the request metrics, nil disables them
	Registerer prometheus.Registerer
}

type service struct {
	Dependencies

	// serializes selector changes with their persistence
	selectionMu sync.Mutex
}

func CreateRestService(deps Dependencies) *echo.Echo {
	echoRest := CreateWebserver(deps.Registerer)
	s := &service{Dependencies: deps}

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/max/", s.getMax)

	s.registerFanEndpoints(echoRest)
	s.registerConfigEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}

type maxResponse struct {
	Max int64 `json:"max"`
}

func (s *service) getMax(c echo.Context) error {
	value, err := s.Driver.ReadMaxSpeed()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, maxResponse{Max: value}, indentationChar)
}

func parseIndex(c echo.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param(urlParamIndex))
	return index, err == nil
}
