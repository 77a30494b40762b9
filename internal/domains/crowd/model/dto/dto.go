package dto

import (
	"heritage/internal/domains/crowd/model"
	placeModel "heritage/internal/domains/place/model"
	"heritage/shared/constant"
	"heritage/shared/timezone"
	"time"
)

type ForecastRequest struct {
	PlaceID  string `json:"place_id"  validate:"required,max=64"`
	Date     string `json:"date"      validate:"required,isodate"`
	TimeSlot string `json:"time_slot" validate:"required,timeslot"`
}

type ForecastResponse struct {
	PlaceID     string      `json:"place_id"`
	Date        string      `json:"date"`
	TimeSlot    string      `json:"time_slot"`
	Level       model.Level `json:"level"`
	Crowd       *float64    `json:"crowd_prediction"`
	Season      *float64    `json:"season_prediction"`
	Temperature float64     `json:"temperature"`
	IsHoliday   bool        `json:"is_holiday"`
}

type Predictions struct {
	Season  *float64 `json:"season"`
	Crowd   *float64 `json:"crowd"`
	Peak    *float64 `json:"peak"`
	Anomaly *float64 `json:"anomaly"`
}

// Labels are the yes/no reading of each prediction, nil when the prediction is missing.
type Labels struct {
	HighSeason      *bool `json:"high_season"`
	Crowded         *bool `json:"crowded"`
	PeakTime        *bool `json:"peak_time"`
	AnomalyDetected *bool `json:"anomaly_detected"`
}

func (p Predictions) Labels() Labels {
	return Labels{
		HighSeason:      label(p.Season),
		Crowded:         label(p.Crowd),
		PeakTime:        label(p.Peak),
		AnomalyDetected: label(p.Anomaly),
	}
}

func label(value *float64) *bool {
	if value == nil {
		return nil
	}

	yes := *value > model.BinaryThreshold

	return &yes
}

type PlaceStatsResponse struct {
	PlaceID               string                `json:"place_id"`
	Name                  string                `json:"name"`
	CurrentCrowd          int                   `json:"current_crowd"`
	MaxCrowd              int                   `json:"max_crowd"`
	BookingsCount         int                   `json:"bookings_count"`
	OccupancyPercent      float64               `json:"occupancy_percent"`
	Temperature           float64               `json:"temperature"`
	Predictions           Predictions           `json:"predictions"`
	Labels                Labels                `json:"labels"`
	PredictedCrowd        *int                  `json:"predicted_crowd"`
	PredictedCrowdPercent *float64              `json:"predicted_crowd_percent"`
	DailyStats            placeModel.DailyStats `json:"daily_stats"`
	GeneratedAt           string                `json:"generated_at"`
}

func (r *PlaceStatsResponse) FromModel(place placeModel.Place, predictions Predictions, temperature float64, now time.Time) {
	r.PlaceID = place.ID
	r.Name = place.Name
	r.CurrentCrowd = place.CurrentCrowd
	r.MaxCrowd = place.MaxCrowd
	r.BookingsCount = place.BookingsCount
	r.OccupancyPercent = place.OccupancyPercent()
	r.Temperature = temperature
	r.Predictions = predictions
	r.Labels = predictions.Labels()
	r.DailyStats = place.DailyStats.Clone()
	r.GeneratedAt = timezone.Format(now, constant.DateFormat)

	if predictions.Crowd != nil {
		predicted := model.PredictedCrowd(*predictions.Crowd, place.CurrentCrowd, place.MaxCrowd)
		percent := placeModel.Percent(predicted, place.MaxCrowd)

		r.PredictedCrowd = &predicted
		r.PredictedCrowdPercent = &percent
	}
}

type OverviewResponse struct {
	TotalPlaces       int     `json:"total_places"`
	TotalBookings     int     `json:"total_bookings"`
	TotalCurrentCrowd int     `json:"total_current_crowd"`
	TotalCapacity     int     `json:"total_capacity"`
	OccupancyPercent  float64 `json:"occupancy_percent"`
}
