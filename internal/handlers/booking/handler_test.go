package booking_test

import (
	"context"
	"encoding/json"
	"heritage/infras/otel/mocks"
	"heritage/internal/domains/booking/model/dto"
	serviceMocks "heritage/internal/domains/booking/service/mocks"
	"heritage/internal/handlers/booking"
	"heritage/shared"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockBooking, chi.Router) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockBooking(ctrl)

	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func asVisitor(request *http.Request) *http.Request {
	ctx := context.WithValue(request.Context(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserName, "Asha")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

	return request.WithContext(ctx)
}

func TestHandler_CreateBooking(t *testing.T) {
	svc, router := newRouter(t)
	today := shared.Today()

	svc.EXPECT().
		Create(gomock.Any(), dto.CreateBookingRequest{PlaceID: "P1", Date: today, TimeSlot: "09:00", Visitors: 2, IdempotencyKey: "retry-1"}, dto.Requester{UserID: "user-1", Name: "Asha", Role: constant.RoleUser}).
		Return(dto.CreateBookingResponse{ID: "b1"}, nil)

	body := `{"place_id":"P1","date":"` + today + `","time_slot":"09:00","visitors":2}`
	request := asVisitor(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)))
	request.Header.Set(constant.RequestHeaderIdempotencyKey, "retry-1")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"b1"}}`, recorder.Body.String())
}

func TestHandler_CreateBookingRejectsInvalidBody(t *testing.T) {
	_, router := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"place_id":`},
		{name: "zero visitors", body: `{"place_id":"P1","date":"` + shared.Today() + `","time_slot":"09:00","visitors":0}`},
		{name: "missing slot", body: `{"place_id":"P1","date":"` + shared.Today() + `","visitors":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, asVisitor(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var res map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			assert.Equal(t, string(failure.KindInvalidInput), res["kind"])
		})
	}
}

func TestHandler_CreateBookingConflict(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.CreateBookingResponse{}, failure.Conflict("booking could not be completed, please try again"))

	body := `{"place_id":"P1","date":"` + shared.Today() + `","time_slot":"09:00","visitors":1}`

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asVisitor(httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.JSONEq(t, `{"error":"booking could not be completed, please try again","kind":"Conflict"}`, recorder.Body.String())
}

func TestHandler_GetMyBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetMine(gomock.Any(), dto.Requester{UserID: "user-1", Name: "Asha", Role: constant.RoleUser}, gDto.QueryParams{Page: 2, Limit: 5}).
		Return(dto.GetMyBookingsResponse{}, nil)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asVisitor(httptest.NewRequest(http.MethodGet, "/bookings/mine?page=2&limit=5", nil)))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetBookingByID(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "b1", gomock.Any()).Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, asVisitor(httptest.NewRequest(http.MethodGet, "/bookings/b1", nil)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_GetPlaceBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(bookings.place_id = :place_id AND bookings.visit_date = :visit_date)", where)
			assert.Equal(t, map[string]any{"place_id": "P1", "visit_date": "2030-06-15"}, args)

			return dto.GetBookingsResponse{}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/places/P1/bookings?date=2030-06-15", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetPlaceBookingsRejectsBadDate(t *testing.T) {
	_, router := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/places/P1/bookings?date=tomorrow", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
