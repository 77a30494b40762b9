package timezone

import (
	"heritage/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar date format used for booking dates and stats keys.
const DateLayout = time.DateOnly

var (
	once        sync.Once
	appLocation *time.Location
)

func location() *time.Location {
	once.Do(func() {
		appLocation = load(config.Get().App.Timezone)
	})

	return appLocation
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("APP_TIMEZONE not set, dates follow UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, dates follow UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("application timezone loaded")

	return loc
}

func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value as a wall-clock time in the application location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DateKey is the calendar date of t in the application location.
func DateKey(t time.Time) string {
	return Format(t, DateLayout)
}

// Today is DateKey of the current instant.
func Today() string {
	return DateKey(Now())
}

// StartOfDay returns local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// IsPastDate reports whether the YYYY-MM-DD date is strictly before today.
// Malformed dates are reported as past.
func IsPastDate(date string) bool {
	day, err := Parse(DateLayout, date)
	if err != nil {
		return true
	}

	return day.Before(StartOfDay(Now()))
}
