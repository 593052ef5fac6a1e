package configuration

import (
	"reflect"

	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/mitchellh/mapstructure"
)

// ReadStrategyHookFunc returns a mapstructure decode hook that turns a
// selector token into a strategy.ReadStrategy.
func ReadStrategyHookFunc() mapstructure.DecodeHookFuncType {
	readType := reflect.TypeOf(strategy.ReadUnset)

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != readType || f.Kind() != reflect.String {
			return data, nil
		}
		return strategy.ParseReadStrategy(data.(string))
	}
}

// ControlStrategyHookFunc returns a mapstructure decode hook that turns a
// selector token into a strategy.ControlStrategy.
func ControlStrategyHookFunc() mapstructure.DecodeHookFuncType {
	controlType := reflect.TypeOf(strategy.ControlUnset)

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != controlType || f.Kind() != reflect.String {
			return data, nil
		}
		return strategy.ParseControlStrategy(data.(string))
	}
}
