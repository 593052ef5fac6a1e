package firmware

import (
	"fmt"
	"os"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/qdm12/reprint"
	"gopkg.in/yaml.v3"
)

// SimulatedMethod describes how a simulated firmware object behaves when invoked.
type SimulatedMethod struct {
	// Type is one of integer (default), string, buffer or package
	Type string `yaml:"type"`
	// Value is returned when no argument specific result matches
	Value int64 `yaml:"value"`
	// Results maps the first argument to a result
	Results map[int64]int64 `yaml:"results"`
	// Fail makes every invocation fail
	Fail bool `yaml:"fail"`
	// Stores names another object whose value is replaced by the first argument
	Stores string `yaml:"stores"`
}

type SimulatedProfile struct {
	Methods map[string]SimulatedMethod `yaml:"methods"`
}

// LoadSimulatedProfile reads a yaml profile describing a simulated machine.
func LoadSimulatedProfile(path string) (*SimulatedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read simulated firmware profile: %w", err)
	}
	profile := &SimulatedProfile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse simulated firmware profile %s: %w", path, err)
	}
	return profile, nil
}

// Simulated is an in-memory firmware used for dry runs and tests.
type Simulated struct {
	methods     cmap.ConcurrentMap[string, SimulatedMethod]
	invocations cmap.ConcurrentMap[string, [][]int64]
}

func NewSimulated(profile SimulatedProfile) *Simulated {
	s := &Simulated{
		methods:     cmap.New[SimulatedMethod](),
		invocations: cmap.New[[][]int64](),
	}
	for name, method := range profile.Methods {
		s.methods.Set(name, method)
	}
	return s
}

// Set defines or replaces the named object.
func (s *Simulated) Set(name string, method SimulatedMethod) {
	s.methods.Set(name, method)
}

// Remove deletes the named object, later lookups fail with ErrNotFound.
func (s *Simulated) Remove(name string) {
	s.methods.Remove(name)
}

// Invocations returns a copy of the argument lists of all invocations of name, oldest first.
func (s *Simulated) Invocations(name string) [][]int64 {
	calls, ok := s.invocations.Get(name)
	if !ok || len(calls) == 0 {
		return nil
	}
	return reprint.This(calls).([][]int64)
}

func (s *Simulated) Resolve(name string) (Handle, error) {
	if !s.methods.Has(name) {
		return "", fmt.Errorf("resolve %s: %w", name, ErrNotFound)
	}
	return Handle(name), nil
}

func (s *Simulated) Invoke(handle Handle, args ...int64) (Object, error) {
	name := string(handle)
	method, ok := s.methods.Get(name)
	if !ok {
		return Object{}, fmt.Errorf("invoke %s: %w", name, ErrNotFound)
	}

	recorded := append([]int64{}, args...)
	s.invocations.Upsert(name, nil, func(exist bool, valueInMap [][]int64, _ [][]int64) [][]int64 {
		return append(valueInMap, recorded)
	})

	if method.Fail {
		return Object{}, fmt.Errorf("invoke %s: simulated failure", name)
	}

	value := method.Value
	if len(args) > 0 {
		if result, ok := method.Results[args[0]]; ok {
			value = result
		}
		if len(method.Stores) > 0 {
			s.methods.Upsert(method.Stores, SimulatedMethod{}, func(exist bool, valueInMap SimulatedMethod, _ SimulatedMethod) SimulatedMethod {
				valueInMap.Value = args[0]
				return valueInMap
			})
		}
	}

	switch method.Type {
	case "", "integer":
		return Object{Type: ObjectTypeInteger, Integer: value, Raw: fmt.Sprintf("0x%x", value)}, nil
	case "string":
		return Object{Type: ObjectTypeString, Raw: fmt.Sprintf("%d", value)}, nil
	case "buffer":
		return Object{Type: ObjectTypeBuffer, Raw: fmt.Sprintf("{0x%02x}", value)}, nil
	case "package":
		return Object{Type: ObjectTypePackage, Raw: fmt.Sprintf("[0x%x]", value)}, nil
	default:
		return Object{Type: ObjectTypeUnknown}, nil
	}
}
