package firmware

import (
	"errors"
)

var (
	// ErrNotFound is returned when a named firmware method or value does not exist.
	ErrNotFound = errors.New("firmware method not found")
	// ErrInvocationFailed is returned when a method exists but evaluating it failed.
	ErrInvocationFailed = errors.New("firmware method invocation failed")
	// ErrUnexpectedType is returned when a method returned something other than an integer.
	ErrUnexpectedType = errors.New("firmware method returned a non-integer result")
)

// Handle identifies a resolved firmware object.
type Handle string

type ObjectType int

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeInteger
	ObjectTypeString
	ObjectTypeBuffer
	ObjectTypePackage
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeInteger:
		return "integer"
	case ObjectTypeString:
		return "string"
	case ObjectTypeBuffer:
		return "buffer"
	case ObjectTypePackage:
		return "package"
	default:
		return "unknown"
	}
}

// Object is the typed result of a firmware method evaluation.
type Object struct {
	Type    ObjectType
	Integer int64
	// Raw holds the textual representation as reported by the firmware backend
	Raw string
}

// Interface is the platform firmware as seen by the gateway.
type Interface interface {
	// Resolve looks up the named object without evaluating it
	Resolve(name string) (Handle, error)
	// Invoke evaluates the object behind handle with zero or more integer arguments
	Invoke(handle Handle, args ...int64) (Object, error)
}
