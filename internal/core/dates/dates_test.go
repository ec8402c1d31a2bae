package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "rfc3339 zulu", in: "2025-08-25T10:30:00Z", want: time.Date(2025, 8, 25, 10, 30, 0, 0, time.UTC)},
		{name: "offset converted to utc", in: "2025-08-25T10:30:00+05:30", want: time.Date(2025, 8, 25, 5, 0, 0, 0, time.UTC)},
		{name: "date only", in: "2025-08-25", want: time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)},
		{name: "rss style", in: "Mon, 25 Aug 2025 10:30:00 GMT", want: time.Date(2025, 8, 25, 10, 30, 0, 0, time.UTC)},
		{name: "empty", in: "  ", want: time.Time{}},
		{name: "garbage", in: "not a date at all", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			assert.True(t, tt.want.Equal(got), "Parse(%q) = %v, want %v", tt.in, got, tt.want)
		})
	}
}

func TestOrEpoch(t *testing.T) {
	assert.Equal(t, Epoch, OrEpoch(time.Time{}))

	now := time.Now()
	assert.Equal(t, now, OrEpoch(now))
}

func TestWithinDays(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinDays(now.Add(-20*24*time.Hour), 21, now))
	assert.True(t, WithinDays(now.Add(-21*24*time.Hour), 21, now))
	assert.False(t, WithinDays(now.Add(-22*24*time.Hour), 21, now))
	assert.False(t, WithinDays(time.Time{}, 21, now))
}

func TestFormatShort(t *testing.T) {
	loc := LoadLocation("Asia/Kolkata")

	// 20:00 UTC is already the next day in India.
	ts := time.Date(2025, 8, 24, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "25 Aug 2025", FormatShort(ts, loc))
	assert.Equal(t, "24 Aug 2025", FormatShort(ts, time.UTC))
	assert.Empty(t, FormatShort(time.Time{}, loc))
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, "Asia/Kolkata", LoadLocation("").String())
	assert.Equal(t, time.UTC, LoadLocation("Nowhere/Special"))
}
