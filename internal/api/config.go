package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/persistence"
)

type configResponse struct {
	ReadType     string `json:"readType"`
	CtrlType     string `json:"ctrlType"`
	ChannelCount int    `json:"channelCount"`
	Debug        bool   `json:"debug"`
}

func (s *service) registerConfigEndpoints(rest *echo.Echo) {
	group := rest.Group("/config")

	group.GET("/", s.getConfig)
	group.GET("/readtype/", s.getReadType)
	group.PUT("/readtype/", s.setReadType)
	group.GET("/ctrltype/", s.getCtrlType)
	group.PUT("/ctrltype/", s.setCtrlType)
}

func (s *service) getConfig(c echo.Context) error {
	state := s.Driver.State()
	data := configResponse{
		ReadType:     state.ReadStrategy.String(),
		CtrlType:     state.ControlStrategy.String(),
		ChannelCount: state.ChannelCount,
		Debug:        state.Debug,
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (s *service) getReadType(c echo.Context) error {
	return c.String(http.StatusOK, s.Driver.ReadStrategyToken()+"\n")
}

func (s *service) getCtrlType(c echo.Context) error {
	return c.String(http.StatusOK, s.Driver.ControlStrategyToken()+"\n")
}

func (s *service) setReadType(c echo.Context) error {
	return s.updateSelection(c, s.Driver.SetReadStrategyToken)
}

func (s *service) setCtrlType(c echo.Context) error {
	return s.updateSelection(c, s.Driver.SetControlStrategyToken)
}

func (s *service) updateSelection(c echo.Context, apply func(token string) (driver.State, error)) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return returnError(c, err)
	}

	s.selectionMu.Lock()
	defer s.selectionMu.Unlock()

	state, err := apply(string(body))
	if err != nil {
		return returnBadRequest(c, err)
	}
	if s.SelectionChanged != nil {
		s.SelectionChanged(persistence.Selection{
			ReadType: state.ReadStrategy.String(),
			CtrlType: state.ControlStrategy.String(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
