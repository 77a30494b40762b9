package model

import (
	placeModel "heritage/internal/domains/place/model"
	"heritage/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldPlaceID   = "place_id"
	FieldVisitDate = "visit_date"
	FieldTimeSlot  = "time_slot"
	FieldVisitors  = "visitors"
	FieldUsername  = "username"
)

// Booking is one reservation of a visit. Bookings are never edited after creation.
type Booking struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	PlaceID   string `db:"place_id"`
	VisitDate string `db:"visit_date"`
	TimeSlot  string `db:"time_slot"`
	Visitors  int    `db:"visitors"`
	Username  string `db:"username"`
	model.Metadata
}

// BookingWithPlace is a booking joined with the place it is for.
type BookingWithPlace struct {
	Booking
	PlaceName    string                `db:"place_name"    table:"places" column:"name"`
	PlaceCity    string                `db:"place_city"    table:"places" column:"city"`
	PlaceCountry string                `db:"place_country" table:"places" column:"country"`
	PlaceImages  placeModel.StringList `db:"place_images"  table:"places" column:"images"`
}

func (BookingWithPlace) GetJoinQuery() string {
	return "JOIN " + placeModel.TableName + " ON " + placeModel.TableName + "." + placeModel.FieldID + " = " + TableName + "." + FieldPlaceID
}
