package extract

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	f := Float("45.2%", true)
	require.NotNil(t, f)
	assert.InDelta(t, 45.2, *f, 1e-9)

	f = Float("+.512", true)
	require.NotNil(t, f)
	assert.InDelta(t, 0.512, *f, 1e-9)

	assert.Nil(t, Float("", true))
	assert.Nil(t, Float("12", false))
	assert.Nil(t, Float("N/A", true))
}

func TestInt(t *testing.T) {
	n := Int("1,234", true)
	require.NotNil(t, n)
	assert.Equal(t, 1234, *n)

	n = Int("$2,500,000", true)
	require.NotNil(t, n)
	assert.Equal(t, 2500000, *n)

	n = Int("0", true)
	require.NotNil(t, n, "zero must not collapse to nil")
	assert.Equal(t, 0, *n)

	assert.Nil(t, Int("", true))
	assert.Nil(t, Int("7", false))
	assert.Nil(t, Int("12.5", true))
	assert.Nil(t, Int("-", true))
}

func TestIntRange(t *testing.T) {
	n := Int(strconv.Itoa(math.MaxInt), true)
	require.NotNil(t, n)
	assert.Equal(t, math.MaxInt, *n)

	assert.Nil(t, Int("99999999999999999999", true))
	assert.Nil(t, Int("-99999999999999999999", true))
}

func TestIntOrZero(t *testing.T) {
	assert.Equal(t, 0, IntOrZero("", true))
	assert.Equal(t, 0, IntOrZero("x", false))
	assert.Equal(t, 14, IntOrZero(" 14 ", true))
}

func TestCleanup(t *testing.T) {
	assert.Equal(t, "1234", Cleanup(" 1,234 "))
	assert.Equal(t, "-3.5", Cleanup("-3.5%"))
	assert.Equal(t, "7", Cleanup("+7"))
}
