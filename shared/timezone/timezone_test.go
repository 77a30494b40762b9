package timezone_test

import (
	"heritage/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowUsesAppLocation(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation().String(), now.Location().String())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2024-05-01")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation().String(), parsed.Location().String())
	assert.Equal(t, "2024-05-01", timezone.Format(parsed, time.DateOnly))

	_, err = timezone.Parse(time.DateOnly, "2024-13-01")
	assert.Error(t, err)
}

func TestDateKeyIgnoresTimeOfDay(t *testing.T) {
	loc := timezone.GetLocation()

	morning := time.Date(2024, 5, 1, 0, 5, 0, 0, loc)
	evening := time.Date(2024, 5, 1, 23, 55, 0, 0, loc)

	assert.Equal(t, "2024-05-01", timezone.DateKey(morning))
	assert.Equal(t, timezone.DateKey(morning), timezone.DateKey(evening))
	assert.Equal(t, timezone.DateKey(timezone.Now()), timezone.Today())
}

func TestStartOfDay(t *testing.T) {
	loc := timezone.GetLocation()

	start := timezone.StartOfDay(time.Date(2024, 5, 1, 17, 30, 12, 0, loc))

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, loc), start)
}

func TestIsPastDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "today", date: timezone.Today(), want: false},
		{name: "tomorrow", date: timezone.DateKey(timezone.Now().AddDate(0, 0, 1)), want: false},
		{name: "yesterday", date: timezone.DateKey(timezone.Now().AddDate(0, 0, -1)), want: true},
		{name: "malformed", date: "01/05/2024", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.IsPastDate(tt.date))
		})
	}
}
