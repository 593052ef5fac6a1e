package strategy

import (
	"testing"

	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_Strategies(t *testing.T) {
	gateway, _ := createFirmware(t, nil)

	for _, s := range []ReadStrategy{ReadNone, ReadThermalStatus, ReadExtendedFanValue, ReadFanRpm, ReadKeyboardStyle, ReadDecimalSpeed, ReadExternalChip} {
		assert.Equal(t, s, NewReader(s, gateway, nil).Strategy())
	}
	assert.Equal(t, ReadNone, NewReader(ReadUnset, gateway, nil).Strategy())
}

func TestReader_HasRpm(t *testing.T) {
	gateway, _ := createFirmware(t, nil)

	assert.True(t, NewReader(ReadFanRpm, gateway, nil).HasRpm())
	for _, s := range []ReadStrategy{ReadNone, ReadThermalStatus, ReadExtendedFanValue, ReadKeyboardStyle, ReadDecimalSpeed, ReadExternalChip} {
		assert.False(t, NewReader(s, gateway, nil).HasRpm(), s.String())
	}
}

func TestNoneReader_NeverCallsFirmware(t *testing.T) {
	gateway, fw := createFirmware(t, allMethods())
	reader := NewReader(ReadNone, gateway, nil)

	for channel := 0; channel < 2; channel++ {
		value, err := reader.Read(channel)
		require.NoError(t, err)
		assert.Equal(t, int64(0), value)
	}
	for _, name := range firmware.KnownMethods {
		assert.Empty(t, fw.Invocations(name), name)
	}
}

func TestExtendedFanValueReader(t *testing.T) {
	// GIVEN
	gateway, fw := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodFanValueExtended: {Results: map[int64]int64{1: 30, 2: 0xFF}},
	})
	reader := NewReader(ReadExtendedFanValue, gateway, nil)

	// WHEN
	primary, err1 := reader.Read(0)
	secondary, err2 := reader.Read(1)

	// THEN
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, int64(8192), primary)
	assert.Equal(t, int64(0), secondary)
	assert.Equal(t, [][]int64{{1}, {2}}, fw.Invocations(firmware.MethodFanValueExtended))
}

func TestExtendedFanValueReader_CallFailure(t *testing.T) {
	gateway, _ := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodFanValueExtended: {Fail: true},
	})
	reader := NewReader(ReadExtendedFanValue, gateway, nil)

	value, err := reader.Read(0)
	assert.ErrorIs(t, err, firmware.ErrInvocationFailed)
	assert.Equal(t, int64(0), value)
}

func TestFanRpmReader(t *testing.T) {
	gateway, fw := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodFanRpm: {Value: 2650},
	})
	reader := NewReader(ReadFanRpm, gateway, nil)

	value, err := reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2650), value)

	value, err = reader.Read(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
	assert.Len(t, fw.Invocations(firmware.MethodFanRpm), 1)
}

func TestFanRpmReader_ZeroIsNotAnError(t *testing.T) {
	gateway, _ := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodFanRpm: {Value: 0},
	})
	reader := NewReader(ReadFanRpm, gateway, nil)

	value, err := reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestFanRpmReader_MissingMethod(t *testing.T) {
	gateway, _ := createFirmware(t, nil)
	reader := NewReader(ReadFanRpm, gateway, nil)

	value, err := reader.Read(0)
	assert.ErrorIs(t, err, firmware.ErrNotFound)
	assert.Equal(t, int64(0), value)
}

func TestKeyboardReader_Sentinels(t *testing.T) {
	testCases := []struct {
		name     string
		channel  int
		method   string
		raw      int64
		expected int64
	}{
		{"primary idle", 0, firmware.MethodEcFanSpeed, 0x14, 0},
		{"primary spinning", 0, firmware.MethodEcFanSpeed, 0x28, 0x28},
		{"primary secondary sentinel passes", 0, firmware.MethodEcFanSpeed, 0x1E, 0x1E},
		{"secondary idle", 1, firmware.MethodEcRightFanSpeed, 0x1E, 0},
		{"secondary spinning", 1, firmware.MethodEcRightFanSpeed, 0x32, 0x32},
		{"secondary primary sentinel passes", 1, firmware.MethodEcRightFanSpeed, 0x14, 0x14},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, fw := createFirmware(t, map[string]firmware.SimulatedMethod{
				tc.method: {Value: tc.raw},
			})
			reader := NewReader(ReadKeyboardStyle, gateway, nil)

			value, err := reader.Read(tc.channel)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
			assert.Len(t, fw.Invocations(tc.method), 1)
		})
	}
}

func TestDecimalSpeedReader(t *testing.T) {
	gateway, fw := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodEcFanSpeedDecimal: {Value: 37},
	})
	reader := NewReader(ReadDecimalSpeed, gateway, nil)

	value, err := reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(37), value)

	value, err = reader.Read(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
	assert.Len(t, fw.Invocations(firmware.MethodEcFanSpeedDecimal), 1)
}

func TestThermalStatusReader(t *testing.T) {
	gateway, _ := createFirmware(t, map[string]firmware.SimulatedMethod{
		firmware.MethodThermalStatus: {Value: 3},
	})
	reader := NewReader(ReadThermalStatus, gateway, nil)

	value, err := reader.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)
}

func TestExternalChipReader(t *testing.T) {
	gateway, _ := createFirmware(t, nil)
	chip := &recordingChip{speeds: map[int]int64{0: 1200, 1: 1500}}

	value, err := NewReader(ReadExternalChip, gateway, chip).Read(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), value)

	value, err = NewReader(ReadExternalChip, gateway, nil).Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestReaders_UnsupportedChannelsNeverCallFirmware(t *testing.T) {
	testCases := []struct {
		strategy ReadStrategy
		channels []int
	}{
		{ReadNone, []int{0, 1, 2, -1}},
		{ReadThermalStatus, []int{1, 2, -1}},
		{ReadExtendedFanValue, []int{2, 3, -1}},
		{ReadFanRpm, []int{1, 2, -1}},
		{ReadKeyboardStyle, []int{2, 3, -1}},
		{ReadDecimalSpeed, []int{1, 2, -1}},
		{ReadExternalChip, []int{2, -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.strategy.String(), func(t *testing.T) {
			gateway, fw := createFirmware(t, allMethods())
			reader := NewReader(tc.strategy, gateway, &recordingChip{speeds: map[int]int64{2: 99, -1: 99}})

			for _, channel := range tc.channels {
				value, err := reader.Read(channel)
				require.NoError(t, err)
				assert.Equal(t, int64(0), value, "channel %d", channel)
			}
			for _, name := range firmware.KnownMethods {
				assert.Empty(t, fw.Invocations(name), name)
			}
		})
	}
}
