package firmware

import (
	"errors"
	"fmt"

	"github.com/markusressel/hpfan/internal/ui"
)

// CallObserver is notified after every gateway call, err is nil on success.
type CallObserver func(method string, err error)

// Gateway invokes named firmware methods and reduces their results to integers.
type Gateway struct {
	firmware Interface
	debug    bool
	observer CallObserver
}

func NewGateway(firmware Interface, debug bool) *Gateway {
	return &Gateway{
		firmware: firmware,
		debug:    debug,
	}
}

// SetObserver registers a hook that sees the outcome of every call.
func (g *Gateway) SetObserver(observer CallObserver) {
	g.observer = observer
}

// Call invokes method without arguments.
func (g *Gateway) Call(method string) (int64, error) {
	return g.call(method, nil)
}

// CallWithArg invokes method with a single integer argument.
func (g *Gateway) CallWithArg(method string, arg int64) (int64, error) {
	return g.call(method, []int64{arg})
}

// Exists reports whether method can be resolved. The method is not invoked.
func (g *Gateway) Exists(method string) bool {
	_, err := g.firmware.Resolve(method)
	return err == nil
}

func (g *Gateway) call(method string, args []int64) (value int64, err error) {
	if g.observer != nil {
		defer func() {
			g.observer(method, err)
		}()
	}

	if g.debug {
		ui.Debug("acpi_call: Calling %s", method)
	}

	handle, err := g.firmware.Resolve(method)
	if err != nil {
		if g.debug {
			ui.Debug("acpi_call: Cannot get handle for %s: %v", method, err)
		}
		return 0, fmt.Errorf("%s: %w", method, ErrNotFound)
	}

	result, err := g.firmware.Invoke(handle, args...)
	if err != nil {
		if g.debug {
			ui.Debug("acpi_call: Method call %s failed: %v", method, err)
		}
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", method, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w: %v", method, ErrInvocationFailed, err)
	}

	if result.Type != ObjectTypeInteger {
		if g.debug {
			ui.Debug("acpi_call: Method %s returned %s %q", method, result.Type, result.Raw)
		}
		return 0, fmt.Errorf("%s: %w (%s)", method, ErrUnexpectedType, result.Type)
	}

	return result.Integer, nil
}
