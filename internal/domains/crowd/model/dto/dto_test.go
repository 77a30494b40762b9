package dto_test

import (
	"heritage/internal/domains/crowd/model/dto"
	placeModel "heritage/internal/domains/place/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPredictions_Labels(t *testing.T) {
	labels := dto.Predictions{
		Season:  ptr(0.9),
		Crowd:   ptr(0.5),
		Peak:    ptr(1.0),
		Anomaly: nil,
	}.Labels()

	assert.Equal(t, ptr(true), labels.HighSeason)
	assert.Equal(t, ptr(false), labels.Crowded, "0.5 is not above the threshold")
	assert.Equal(t, ptr(true), labels.PeakTime)
	assert.Nil(t, labels.AnomalyDetected)
}

func TestPlaceStatsResponse_FromModel(t *testing.T) {
	place := placeModel.Place{
		ID:            "P1",
		Name:          "Qutub Minar",
		CurrentCrowd:  10,
		MaxCrowd:      40,
		BookingsCount: 7,
		DailyStats:    placeModel.DailyStats{"2030-06-15": 12},
	}

	res := dto.PlaceStatsResponse{}
	res.FromModel(place, dto.Predictions{Crowd: ptr(0.8), Peak: ptr(0.2)}, 29, time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "P1", res.PlaceID)
	assert.InDelta(t, 25.0, res.OccupancyPercent, 0.001)
	require.NotNil(t, res.PredictedCrowd)
	assert.Equal(t, 11, *res.PredictedCrowd)
	require.NotNil(t, res.PredictedCrowdPercent)
	assert.InDelta(t, 27.5, *res.PredictedCrowdPercent, 0.001)
	assert.Equal(t, ptr(false), res.Labels.PeakTime)
	assert.Nil(t, res.Labels.HighSeason)
	assert.Equal(t, placeModel.DailyStats{"2030-06-15": 12}, res.DailyStats)

	res.DailyStats["2030-06-15"] = 99
	assert.Equal(t, 12, place.DailyStats["2030-06-15"])
}

func TestPlaceStatsResponse_FromModelWithoutCrowdPrediction(t *testing.T) {
	res := dto.PlaceStatsResponse{}
	res.FromModel(placeModel.Place{ID: "P1", MaxCrowd: 10}, dto.Predictions{}, 30, time.Now())

	assert.Nil(t, res.PredictedCrowd)
	assert.Nil(t, res.PredictedCrowdPercent)
}
