package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 10, 14, 30, 45, 0, time.UTC))
	assert.Equal(t, TimeString("14:30"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), ts)

	for _, bad := range []string{"", "9:00:00x", "24:01", "25:00", "12:60", "noon", "09h00"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestTimeString_EndOfDay(t *testing.T) {
	// "24:00" is the exclusive end of a day's last interval
	require.NoError(t, EndOfDay.Validate())

	m, err := EndOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, m)

	assert.True(t, TimeString("23:59").IsBefore(EndOfDay))
	assert.True(t, EndOfDay.IsAfter("23:00"))

	v, err := EndOfDay.Value()
	require.NoError(t, err)
	assert.Equal(t, "24:00", v)

	var ts TimeString
	require.NoError(t, ts.Scan("24:00:00"))
	assert.Equal(t, EndOfDay, ts)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("14:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 14*60+30, m)

	m, err = TimeString("23:59").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	_, err = TimeString("garbage").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), got)

	// Wraps at midnight
	got, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), got)

	// Negative offsets wrap backwards
	got, err = TimeString("00:15").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:45"), got)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("08:15").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15", v)

	_, err = TimeString("bogus").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME as string with seconds
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:05:59")))
	assert.Equal(t, TimeString("09:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 10, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.ErrorIs(t, ts.Scan("xx:yy:zz"), ErrInvalidTimeString)
}
