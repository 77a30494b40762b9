package model

import (
	"heritage/infras/predictor"
	"heritage/shared/constant"
	"heritage/shared/timezone"
	"math"
	"slices"
	"time"
)

const (
	CacheForecast = "crowd:forecast"

	// BinaryThreshold splits the peak and anomaly model outputs into yes/no.
	BinaryThreshold = 0.5
)

type Level string

const (
	LevelLow         Level = "Low"
	LevelModerate    Level = "Moderate"
	LevelHigh        Level = "High"
	LevelUnavailable Level = "Unavailable"
)

// Classify buckets a crowd prediction. Values below moderate are Low, below high Moderate.
func Classify(prediction, moderate, high float64) Level {
	switch {
	case prediction < moderate:
		return LevelLow
	case prediction < high:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// IsHoliday reports whether t falls on one of the configured holidays. Entries are either
// recurring MM-DD dates or one-off YYYY-MM-DD dates.
func IsHoliday(t time.Time, holidays []string) bool {
	t = timezone.ToAppTime(t)

	return slices.Contains(holidays, t.Format(constant.DateKeyFormat)) || slices.Contains(holidays, t.Format("01-02"))
}

// Features builds the model input for a visit starting at t.
func Features(t time.Time, holidays []string, temperature float64) predictor.CrowdFeatures {
	t = timezone.ToAppTime(t)

	return predictor.CrowdFeatures{
		DayOfWeek:   int(t.Weekday()),
		IsWeekend:   flag(t.Weekday() == time.Saturday || t.Weekday() == time.Sunday),
		IsHoliday:   flag(IsHoliday(t, holidays)),
		Temperature: temperature,
		Month:       int(t.Month()),
		Hour:        t.Hour(),
	}
}

// VisitTime combines a YYYY-MM-DD date and an HH:MM slot in the app time zone.
func VisitTime(date, slot string) (time.Time, error) {
	return timezone.Parse(constant.DateKeyFormat+" "+constant.SlotFormat, date+" "+slot)
}

// PredictedCrowd adds the predicted arrivals to the live crowd, capped at capacity.
func PredictedCrowd(prediction float64, current, capacity int) int {
	predicted := int(math.Round(prediction + float64(current)))
	if capacity > 0 {
		predicted = min(capacity, predicted)
	}

	return max(0, predicted)
}

func flag(b bool) int {
	if b {
		return 1
	}

	return 0
}
