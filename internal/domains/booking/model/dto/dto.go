package dto

import (
	"context"
	"heritage/internal/domains/booking/model"
	"heritage/shared"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	gModel "heritage/shared/model"
	"time"

	"github.com/google/uuid"
)

// Requester is the authenticated caller a booking is made for.
type Requester struct {
	UserID string
	Name   string
	Role   string
}

type CreateBookingRequest struct {
	PlaceID  string `json:"place_id"  validate:"required,max=64"`
	Date     string `json:"date"      validate:"required,notpastdate"`
	TimeSlot string `json:"time_slot" validate:"required,max=20"`
	Visitors int    `json:"visitors"  validate:"gte=1"`

	// IdempotencyKey is taken from the Idempotency-Key header.
	IdempotencyKey string `json:"-" validate:"omitempty,max=128"`
}

func (c *CreateBookingRequest) ToModel(requester Requester, now time.Time) model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		UserID:    requester.UserID,
		PlaceID:   c.PlaceID,
		VisitDate: c.Date,
		TimeSlot:  c.TimeSlot,
		Visitors:  c.Visitors,
		Username:  requester.Name,
		Metadata:  gModel.NewMetadata(now, requester.UserID),
	}
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

type BookingResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	PlaceID  string `json:"place_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Visitors int    `json:"visitors"`
	Username string `json:"username"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.PlaceID = model.PlaceID
	r.Date = model.VisitDate
	r.TimeSlot = model.TimeSlot
	r.Visitors = model.Visitors
	r.Username = model.Username
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookedPlace struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	Image   string `json:"image,omitempty"`
}

type MyBookingResponse struct {
	BookingResponse
	Place BookedPlace `json:"place"`
}

func (r *MyBookingResponse) FromModel(model model.BookingWithPlace) {
	r.BookingResponse.FromModel(model.Booking)
	r.Place = BookedPlace{
		Name:    model.PlaceName,
		City:    model.PlaceCity,
		Country: model.PlaceCountry,
	}

	if len(model.PlaceImages) > 0 {
		r.Place.Image = model.PlaceImages[0]
	}
}

type GetMyBookingsResponse struct {
	Bookings  []MyBookingResponse `json:"bookings"`
	TotalPage int                 `json:"total_page"`
	TotalData int                 `json:"total_data"`
}

func (r *GetMyBookingsResponse) FromModels(models []model.BookingWithPlace, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]MyBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingCreatedEvent is published once a booking and its place aggregates are committed.
type BookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Visitors  int       `json:"visitors"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBookingCreatedEvent(booking model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		PlaceID:   booking.PlaceID,
		Date:      booking.VisitDate,
		TimeSlot:  booking.TimeSlot,
		Visitors:  booking.Visitors,
		CreatedAt: booking.CreatedAt,
	}
}

// RequesterFromContext reads the identity the auth middleware stored on ctx.
func RequesterFromContext(ctx context.Context) Requester {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	name, _ := ctx.Value(constant.ContextKeyUserName).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Requester{UserID: userID, Name: name, Role: role}
}
