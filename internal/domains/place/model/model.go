package model

import (
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/model"
	"maps"
	"time"
)

const (
	TableName  = "places"
	EntityName = "place"

	FieldID            = "id"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldPriceType     = "price_type"
	FieldCity          = "city"
	FieldCountry       = "country"
	FieldImages        = "images"
	FieldCurrentCrowd  = "current_crowd"
	FieldMaxCrowd      = "max_crowd"
	FieldBookingsCount = "bookings_count"
	FieldDailyStats    = "daily_stats"
	FieldVersion       = "version"

	argExpectedVersion = "expected_version"
)

const (
	PriceTypeFree     = "free"
	PriceTypePaid     = "paid"
	PriceTypeDonation = "donation"
)

// Place is a heritage site or museum that accepts visit bookings.
//
// CurrentCrowd, BookingsCount and DailyStats are aggregates of the place's bookings and
// are written only by the booking transaction. Every write bumps Version.
type Place struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	Category      string     `db:"category"`
	PriceType     string     `db:"price_type"`
	City          string     `db:"city"`
	Country       string     `db:"country"`
	Images        StringList `db:"images"`
	CurrentCrowd  int        `db:"current_crowd"`
	MaxCrowd      int        `db:"max_crowd"`
	BookingsCount int        `db:"bookings_count"`
	DailyStats    DailyStats `db:"daily_stats"`
	Version       int64      `db:"version"`
	model.Metadata
}

// ApplyBooking returns the place as it is after one more booking of visitors dated dateKey.
// The live crowd only moves when the visit is for todayKey.
func (p Place) ApplyBooking(dateKey, todayKey string, visitors int) Place {
	next := p

	next.BookingsCount = p.BookingsCount + 1
	next.DailyStats = p.DailyStats.Add(dateKey, visitors)
	next.Version = p.Version + 1

	if dateKey == todayKey {
		next.CurrentCrowd = p.CurrentCrowd + visitors
	}

	return next
}

// AggregateFields is the column set written back by the booking transaction.
func (p Place) AggregateFields(user string, now time.Time) map[string]any {
	return map[string]any{
		FieldCurrentCrowd:        p.CurrentCrowd,
		FieldBookingsCount:       p.BookingsCount,
		FieldDailyStats:          p.DailyStats,
		FieldVersion:             p.Version,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}
}

// FilterByVersion matches the place only while it is still at version.
func FilterByVersion(id string, version int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    TableName,
			},
			gDto.Filter{
				Field:    FieldVersion,
				ArgName:  argExpectedVersion,
				Value:    version,
				Operator: gDto.FilterOperatorEq,
				Table:    TableName,
			},
		},
	}
}

// OccupancyPercent is the live crowd as a share of capacity, 0 when capacity is unknown.
func (p Place) OccupancyPercent() float64 {
	return Percent(p.CurrentCrowd, p.MaxCrowd)
}

func Percent(count, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}

	return float64(count) / float64(capacity) * 100
}

// Clone returns a copy of the stats that can be modified without touching d.
func (d DailyStats) Clone() DailyStats {
	out := make(DailyStats, len(d)+1)
	maps.Copy(out, d)

	return out
}

// Add returns a copy of the stats with visitors added to dateKey.
func (d DailyStats) Add(dateKey string, visitors int) DailyStats {
	out := d.Clone()
	out[dateKey] += visitors

	return out
}

// Cache key prefixes shared by every service that changes a place.
const (
	CacheGetPlace    = "place:get"
	CacheGetAllPlace = "place:gets"
	CacheCountPlace  = "place:count"
)
