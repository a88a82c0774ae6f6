package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, min int) time.Time {
	return time.Date(2023, 11, 6, hour, min, 0, 0, time.UTC)
}

func TestNextPunch_StandardOrder(t *testing.T) {
	rec := DailyRecord{}

	p, ok := rec.NextPunch()
	require.True(t, ok)
	assert.Equal(t, PunchTimeIn, p)

	rec.ApplyPunch(PunchTimeIn, ts(7, 30), nil, nil, false)
	p, ok = rec.NextPunch()
	require.True(t, ok)
	assert.Equal(t, PunchBreakOut, p)

	rec.ApplyPunch(PunchBreakOut, ts(12, 10), nil, nil, false)
	rec.ApplyPunch(PunchBreakIn, ts(12, 45), nil, nil, false)
	p, ok = rec.NextPunch()
	require.True(t, ok)
	assert.Equal(t, PunchTimeOut, p)

	rec.ApplyPunch(PunchTimeOut, ts(17, 5), nil, nil, false)
	_, ok = rec.NextPunch()
	assert.False(t, ok)
}

func TestNextPunch_OnDutySkipsBreaks(t *testing.T) {
	rec := DailyRecord{OnDuty: true}

	p, ok := rec.NextPunch()
	require.True(t, ok)
	assert.Equal(t, PunchTimeIn, p)

	rec.ApplyPunch(PunchTimeIn, ts(9, 0), nil, nil, false)
	p, ok = rec.NextPunch()
	require.True(t, ok)
	assert.Equal(t, PunchTimeOut, p)

	rec.ApplyPunch(PunchTimeOut, ts(15, 0), nil, nil, false)
	_, ok = rec.NextPunch()
	assert.False(t, ok)
}

func TestApplyPunch_OverwritesScanLocation(t *testing.T) {
	lat1, lon1 := 14.676, 121.0437
	rec := DailyRecord{}

	rec.ApplyPunch(PunchTimeIn, ts(7, 0), &lat1, &lon1, true)
	assert.True(t, rec.IsOutOfRange)
	require.NotNil(t, rec.ScanLatitude)

	// The next punch replaces the location and flag of the previous one.
	rec.ApplyPunch(PunchBreakOut, ts(12, 5), nil, nil, false)
	assert.False(t, rec.IsOutOfRange)
	assert.Nil(t, rec.ScanLatitude)
	assert.Nil(t, rec.ScanLongitude)
	assert.NotNil(t, rec.TimeIn)
	assert.NotNil(t, rec.BreakOut)
}

func TestWindows(t *testing.T) {
	cases := []struct {
		punch Punch
		at    time.Time
		want  bool
	}{
		{PunchTimeIn, ts(6, 0), true},
		{PunchTimeIn, ts(8, 0), true},
		{PunchTimeIn, ts(5, 59), false},
		{PunchTimeIn, ts(8, 1), false},
		{PunchBreakOut, ts(12, 0), true},
		{PunchBreakOut, ts(12, 30), true},
		{PunchBreakOut, ts(12, 31), false},
		{PunchBreakIn, ts(12, 31), true},
		{PunchBreakIn, ts(13, 0), true},
		{PunchBreakIn, ts(13, 1), false},
		{PunchTimeOut, ts(17, 0), true},
		{PunchTimeOut, ts(23, 0), true},
		{PunchTimeOut, ts(16, 59), false},
	}

	for _, c := range cases {
		w, ok := WindowFor(c.punch)
		require.True(t, ok)
		assert.Equal(t, c.want, w.Contains(c.at), "%s at %s", c.punch, c.at.Format("15:04"))
	}
}

func TestWindowString(t *testing.T) {
	w, _ := WindowFor(PunchTimeIn)
	assert.Equal(t, "06:00-08:00", w.String())

	w, _ = WindowFor(PunchBreakIn)
	assert.Equal(t, "12:31-13:00", w.String())
}

func TestRecordKey(t *testing.T) {
	d := time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "EMP-001#2023-11-06", RecordKey("EMP-001", d))
}
