package model_test

import (
	"heritage/infras/predictor"
	"heritage/internal/domains/crowd/model"
	"heritage/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		prediction float64
		want       model.Level
	}{
		{prediction: 0, want: model.LevelLow},
		{prediction: 0.39, want: model.LevelLow},
		{prediction: 0.4, want: model.LevelModerate},
		{prediction: 0.69, want: model.LevelModerate},
		{prediction: 0.7, want: model.LevelHigh},
		{prediction: 3, want: model.LevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, model.Classify(tt.prediction, 0.4, 0.7), "prediction %v", tt.prediction)
	}
}

func TestFeatures(t *testing.T) {
	visit, err := model.VisitTime("2030-06-15", "14:00")
	require.NoError(t, err)

	assert.Equal(t, predictor.CrowdFeatures{
		DayOfWeek:   6,
		IsWeekend:   1,
		IsHoliday:   0,
		Temperature: 31.5,
		Month:       6,
		Hour:        14,
	}, model.Features(visit, nil, 31.5))

	monday, err := model.VisitTime("2030-06-17", "09:00")
	require.NoError(t, err)

	features := model.Features(monday, []string{"2030-06-17"}, 30)
	assert.Equal(t, 1, features.DayOfWeek)
	assert.Equal(t, 0, features.IsWeekend)
	assert.Equal(t, 1, features.IsHoliday)
	assert.Equal(t, 9, features.Hour)
}

func TestIsHoliday(t *testing.T) {
	loc := timezone.GetLocation()
	republicDay := time.Date(2031, 1, 26, 10, 0, 0, 0, loc)

	assert.True(t, model.IsHoliday(republicDay, []string{"01-26"}))
	assert.True(t, model.IsHoliday(republicDay, []string{"2031-01-26"}))
	assert.False(t, model.IsHoliday(republicDay, []string{"2030-01-26"}))
	assert.False(t, model.IsHoliday(republicDay, nil))
}

func TestVisitTime_Invalid(t *testing.T) {
	_, err := model.VisitTime("2030-13-01", "09:00")
	assert.Error(t, err)

	_, err = model.VisitTime("2030-06-15", "9am")
	assert.Error(t, err)
}

func TestPredictedCrowd(t *testing.T) {
	assert.Equal(t, 11, model.PredictedCrowd(0.8, 10, 100))
	assert.Equal(t, 100, model.PredictedCrowd(25, 90, 100), "capped at capacity")
	assert.Equal(t, 12, model.PredictedCrowd(2.4, 10, 0), "no cap without capacity")
	assert.Equal(t, 0, model.PredictedCrowd(-5, 2, 10))
}
