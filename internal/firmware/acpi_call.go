package firmware

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/markusressel/hpfan/internal/util"
)

const (
	acpiCallErrorPrefix = "Error:"
	acpiCallNotCalled   = "not called"
	acpiNotFoundStatus  = "AE_NOT_FOUND"
)

// Resolver answers whether a firmware object is defined on this machine.
type Resolver interface {
	Lookup(name string) (bool, error)
}

// AcpiCall talks to the firmware through the acpi_call kernel module.
type AcpiCall struct {
	callPath string
	resolver Resolver

	// the acpi_call control file holds a single reply buffer shared by all callers
	mu sync.Mutex
}

func NewAcpiCall(callPath string, resolver Resolver) *AcpiCall {
	if len(callPath) <= 0 {
		callPath = util.AcpiCallPath
	}
	return &AcpiCall{
		callPath: callPath,
		resolver: resolver,
	}
}

func (a *AcpiCall) Resolve(name string) (Handle, error) {
	found, err := a.resolver.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	if !found {
		return "", fmt.Errorf("resolve %s: %w", name, ErrNotFound)
	}
	return Handle(name), nil
}

func (a *AcpiCall) Invoke(handle Handle, args ...int64) (Object, error) {
	a.mu.Lock()
	reply, err := util.ExecuteAcpiCallAt(a.callPath, string(handle), args...)
	a.mu.Unlock()
	if err != nil {
		return Object{}, err
	}
	return ParseAcpiCallReply(reply)
}

// ParseAcpiCallReply converts the textual acpi_call reply into an Object.
func ParseAcpiCallReply(reply string) (Object, error) {
	reply = strings.TrimSpace(reply)

	switch {
	case strings.HasPrefix(reply, acpiCallErrorPrefix):
		status := strings.TrimSpace(strings.TrimPrefix(reply, acpiCallErrorPrefix))
		if strings.Contains(status, acpiNotFoundStatus) {
			return Object{}, fmt.Errorf("acpi_call: %s: %w", status, ErrNotFound)
		}
		return Object{}, fmt.Errorf("acpi_call: %s", status)
	case reply == acpiCallNotCalled || len(reply) == 0:
		return Object{}, fmt.Errorf("acpi_call: no reply")
	case strings.HasPrefix(reply, `"`):
		return Object{Type: ObjectTypeString, Raw: strings.Trim(reply, `"`)}, nil
	case strings.HasPrefix(reply, "{"):
		return Object{Type: ObjectTypeBuffer, Raw: reply}, nil
	case strings.HasPrefix(reply, "["):
		return Object{Type: ObjectTypePackage, Raw: reply}, nil
	}

	if strings.HasPrefix(strings.ToLower(reply), "0x") {
		val, err := strconv.ParseUint(reply[2:], 16, 64)
		if err != nil {
			return Object{Type: ObjectTypeUnknown, Raw: reply}, nil
		}
		return Object{Type: ObjectTypeInteger, Integer: int64(val), Raw: reply}, nil
	}

	val, err := strconv.ParseInt(reply, 10, 64)
	if err != nil {
		return Object{Type: ObjectTypeUnknown, Raw: reply}, nil
	}
	return Object{Type: ObjectTypeInteger, Integer: val, Raw: reply}, nil
}
