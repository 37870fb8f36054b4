package numfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDateFormatBuiltins(t *testing.T) {
	assert.True(t, IsDateFormat(14, ""))
	assert.True(t, IsDateFormat(22, ""))
	assert.False(t, IsDateFormat(9, ""))
	assert.False(t, IsDateFormat(0, ""))
}

func TestIsDateFormatCustom(t *testing.T) {
	assert.True(t, IsDateFormat(FirstCustomID, "yyyy-mm-dd"))
	assert.False(t, IsDateFormat(FirstCustomID, "0.00%"))
	assert.False(t, IsDateFormat(FirstCustomID, `0.00"d"`), "a literal 'd' inside quotes is not a date token")
}

func TestIsDateFormatScientificNotationNotDate(t *testing.T) {
	assert.False(t, IsDateFormat(FirstCustomID, "0.00E+0"))
}

func TestTimeRoundTripsWithSerial(t *testing.T) {
	cases := []time.Time{
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 13, 45, 30, 0, time.UTC),
		time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, want := range cases {
		serial := Serial(want, false)
		got, err := Time(serial, false)
		require.NoError(t, err, want)
		assert.Equal(t, want.Unix(), got.Unix(), "serial=%v for %v", serial, want)
	}
}

func TestTime1904System(t *testing.T) {
	want := time.Date(2000, 5, 10, 6, 0, 0, 0, time.UTC)
	serial := Serial(want, true)
	got, err := Time(serial, true)
	require.NoError(t, err)
	assert.Equal(t, want.Unix(), got.Unix())
}

func TestTimeRejectsNegativeSerial(t *testing.T) {
	_, err := Time(-1, false)
	assert.Error(t, err)
}

func TestTimeKnownSerial(t *testing.T) {
	// Excel serial 45292 is 2024-01-01 (widely documented reference point).
	got, err := Time(45292, false)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}
