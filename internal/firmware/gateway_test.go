package firmware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fails if firmwareMock does not implement Interface
var _ Interface = &firmwareMock{}

type firmwareMock struct {
	mock.Mock
}

func (m *firmwareMock) Resolve(name string) (Handle, error) {
	args := m.Called(name)
	return args.Get(0).(Handle), args.Error(1)
}

func (m *firmwareMock) Invoke(handle Handle, a ...int64) (Object, error) {
	args := m.Called(handle, a)
	return args.Get(0).(Object), args.Error(1)
}

func TestGateway_Call_Integer(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodFanRpm).Return(Handle(MethodFanRpm), nil)
	fw.On("Invoke", Handle(MethodFanRpm), []int64(nil)).Return(Object{Type: ObjectTypeInteger, Integer: 2300}, nil)
	gateway := NewGateway(fw, false)

	// WHEN
	value, err := gateway.Call(MethodFanRpm)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, int64(2300), value)
	fw.AssertExpectations(t)
}

func TestGateway_CallWithArg_PassesArgument(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodFanValueExtended).Return(Handle(MethodFanValueExtended), nil)
	fw.On("Invoke", Handle(MethodFanValueExtended), []int64{2}).Return(Object{Type: ObjectTypeInteger, Integer: 30}, nil)
	gateway := NewGateway(fw, true)

	// WHEN
	value, err := gateway.CallWithArg(MethodFanValueExtended, 2)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, int64(30), value)
	fw.AssertExpectations(t)
}

func TestGateway_Call_NotFound(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodFanRpm).Return(Handle(""), ErrNotFound)
	gateway := NewGateway(fw, true)

	// WHEN
	_, err := gateway.Call(MethodFanRpm)

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)
	fw.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestGateway_Call_InvocationFailed(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodFanRpm).Return(Handle(MethodFanRpm), nil)
	fw.On("Invoke", Handle(MethodFanRpm), []int64(nil)).Return(Object{}, errors.New("AE_AML_OPERAND_TYPE"))
	gateway := NewGateway(fw, false)

	// WHEN
	_, err := gateway.Call(MethodFanRpm)

	// THEN
	assert.ErrorIs(t, err, ErrInvocationFailed)
	assert.Contains(t, err.Error(), "AE_AML_OPERAND_TYPE")
}

func TestGateway_Call_NotFoundDuringInvocation(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodFanRpm).Return(Handle(MethodFanRpm), nil)
	fw.On("Invoke", Handle(MethodFanRpm), []int64(nil)).Return(Object{}, ErrNotFound)
	gateway := NewGateway(fw, false)

	// WHEN
	_, err := gateway.Call(MethodFanRpm)

	// THEN
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvocationFailed)
}

func TestGateway_Call_UnexpectedType(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", MethodThermalStatus).Return(Handle(MethodThermalStatus), nil)
	fw.On("Invoke", Handle(MethodThermalStatus), []int64(nil)).Return(Object{Type: ObjectTypeBuffer, Raw: "{0x01}"}, nil)
	gateway := NewGateway(fw, false)

	// WHEN
	value, err := gateway.Call(MethodThermalStatus)

	// THEN
	assert.ErrorIs(t, err, ErrUnexpectedType)
	assert.Equal(t, int64(0), value)
}

func TestGateway_Exists_DoesNotInvoke(t *testing.T) {
	// GIVEN
	fw := &firmwareMock{}
	fw.On("Resolve", ValueFan1).Return(Handle(ValueFan1), nil)
	fw.On("Resolve", MethodFanRpm).Return(Handle(""), ErrNotFound)
	gateway := NewGateway(fw, false)

	// WHEN / THEN
	assert.True(t, gateway.Exists(ValueFan1))
	assert.True(t, gateway.Exists(ValueFan1))
	assert.False(t, gateway.Exists(MethodFanRpm))
	fw.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestGateway_Observer(t *testing.T) {
	// GIVEN
	fw := NewSimulated(SimulatedProfile{Methods: map[string]SimulatedMethod{
		MethodFanRpm: {Value: 1800},
	}})
	gateway := NewGateway(fw, false)

	observed := map[string][]error{}
	gateway.SetObserver(func(method string, err error) {
		observed[method] = append(observed[method], err)
	})

	// WHEN
	_, _ = gateway.Call(MethodFanRpm)
	_, _ = gateway.Call(MethodEcFanSpeed)

	// THEN
	require.Len(t, observed[MethodFanRpm], 1)
	assert.NoError(t, observed[MethodFanRpm][0])
	require.Len(t, observed[MethodEcFanSpeed], 1)
	assert.ErrorIs(t, observed[MethodEcFanSpeed][0], ErrNotFound)
}
