package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/monitor"
)

type fanResponse struct {
	driver.Channel
	Input  int64                 `json:"input"`
	Target int64                 `json:"target"`
	Stats  *monitor.ChannelStats `json:"stats,omitempty"`
}

func (s *service) registerFanEndpoints(rest *echo.Echo) {
	group := rest.Group("/fan")

	group.GET("/", s.getFans)
	group.GET("/:"+urlParamIndex+"/", s.getFan)
	group.GET("/:"+urlParamIndex+"/input/", s.getFanInput)
	group.POST("/:"+urlParamIndex+"/input/", s.setFanInput)
	group.GET("/:"+urlParamIndex+"/label/", s.getFanLabel)
}

func (s *service) fanResponse(channel driver.Channel) fanResponse {
	response := fanResponse{
		Channel: channel,
		Input:   s.Driver.GetInput(channel.Index),
		Target:  s.Driver.Target(channel.Index),
	}
	if s.Monitor != nil {
		if stats, ok := s.Monitor.Stats(channel.Index); ok {
			response.Stats = &stats
		}
	}
	return response
}

// returns a list of all fan channels
func (s *service) getFans(c echo.Context) error {
	var data []fanResponse
	for _, channel := range s.Driver.Channels() {
		data = append(data, s.fanResponse(channel))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (s *service) findChannel(c echo.Context) (driver.Channel, bool) {
	index, ok := parseIndex(c)
	if !ok {
		return driver.Channel{}, false
	}
	for _, channel := range s.Driver.Channels() {
		if channel.Index == index {
			return channel, true
		}
	}
	return driver.Channel{}, false
}

func (s *service) getFan(c echo.Context) error {
	channel, exists := s.findChannel(c)
	if !exists {
		return returnNotFound(c, c.Param(urlParamIndex))
	}
	return c.JSONPretty(http.StatusOK, s.fanResponse(channel), indentationChar)
}

func (s *service) getFanInput(c echo.Context) error {
	channel, exists := s.findChannel(c)
	if !exists {
		return returnNotFound(c, c.Param(urlParamIndex))
	}
	return c.String(http.StatusOK, s.Driver.InputText(channel.Index))
}

func (s *service) getFanLabel(c echo.Context) error {
	channel, exists := s.findChannel(c)
	if !exists {
		return returnNotFound(c, c.Param(urlParamIndex))
	}
	return c.String(http.StatusOK, fmt.Sprintf("%s\n", channel.Label))
}

// accepts a plain text decimal fan speed percentage
func (s *service) setFanInput(c echo.Context) error {
	channel, exists := s.findChannel(c)
	if !exists {
		return returnNotFound(c, c.Param(urlParamIndex))
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return returnError(c, err)
	}

	err = s.Driver.SetInputText(channel.Index, string(body))
	if errors.Is(err, driver.ErrChannelOutOfRange) {
		return returnNotFound(c, c.Param(urlParamIndex))
	}
	if err != nil {
		return returnBadRequest(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
