package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStrategy_TokenRoundTrip(t *testing.T) {
	for _, token := range ReadStrategyTokens {
		s, err := ParseReadStrategy(token)
		require.NoError(t, err)
		assert.Equal(t, token, s.String())
	}
}

func TestControlStrategy_TokenRoundTrip(t *testing.T) {
	for _, token := range ControlStrategyTokens {
		s, err := ParseControlStrategy(token)
		require.NoError(t, err)
		assert.Equal(t, token, s.String())
	}
}

func TestParseReadStrategy(t *testing.T) {
	s, err := ParseReadStrategy(" gfrm\n")
	require.NoError(t, err)
	assert.Equal(t, ReadFanRpm, s)

	s, err = ParseReadStrategy("")
	require.NoError(t, err)
	assert.Equal(t, ReadUnset, s)
	assert.Equal(t, "", s.String())

	_, err = ParseReadStrategy("GFRM")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = ParseReadStrategy("sfsd")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseControlStrategy(t *testing.T) {
	s, err := ParseControlStrategy("sfsd")
	require.NoError(t, err)
	assert.Equal(t, ControlDecimalSet, s)

	s, err = ParseControlStrategy("")
	require.NoError(t, err)
	assert.Equal(t, ControlUnset, s)

	_, err = ParseControlStrategy("gfrm")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "auto | stmm | ksfs | kfcl | sfsd | i2cc")
}
