package dto

import (
	"heritage/internal/domains/place/model"
	"heritage/shared"
	gDto "heritage/shared/dto"
	gModel "heritage/shared/model"
	"heritage/shared/timezone"

	"github.com/google/uuid"
)

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type CreatePlaceRequest struct {
	Name         string   `json:"name"          validate:"required,max=255"`
	Description  string   `json:"description"   validate:"omitempty,max=5000"`
	Type         string   `json:"type"          validate:"omitempty,max=100"`
	PriceType    string   `json:"price_type"    validate:"required,oneof=free paid donation"`
	City         string   `json:"city"          validate:"required,max=100"`
	Country      string   `json:"country"       validate:"required,max=100"`
	Images       []string `json:"images"        validate:"omitempty,dive,url"`
	MaxCrowd     int      `json:"max_crowd"     validate:"gte=0"`
	CurrentCrowd int      `json:"current_crowd" validate:"gte=0"`
}

func (c *CreatePlaceRequest) ToModel(user string) model.Place {
	images := model.StringList{}
	if len(c.Images) > 0 {
		images = append(images, c.Images...)
	}

	return model.Place{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Type,
		PriceType:     c.PriceType,
		City:          c.City,
		Country:       c.Country,
		Images:        images,
		CurrentCrowd:  c.CurrentCrowd,
		MaxCrowd:      c.MaxCrowd,
		BookingsCount: 0,
		DailyStats:    model.DailyStats{},
		Version:       1,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdatePlaceRequest only carries descriptive fields; booking aggregates are not editable.
type UpdatePlaceRequest struct {
	Name        string           `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description string           `db:"description" json:"description" validate:"omitempty,max=5000"`
	Type        string           `db:"category"    json:"type"        validate:"omitempty,max=100"`
	PriceType   string           `db:"price_type"  json:"price_type"  validate:"omitempty,oneof=free paid donation"`
	City        string           `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Country     string           `db:"country"     json:"country"     validate:"omitempty,max=100"`
	Images      model.StringList `db:"images"      json:"images"      validate:"omitempty,dive,url"`
	MaxCrowd    *int             `db:"max_crowd"   json:"max_crowd"   validate:"omitempty,gte=0"`
}

func (u *UpdatePlaceRequest) IsEmpty() bool {
	return u.Name == "" &&
		u.Description == "" &&
		u.Type == "" &&
		u.PriceType == "" &&
		u.City == "" &&
		u.Country == "" &&
		len(u.Images) == 0 &&
		u.MaxCrowd == nil
}

type PlaceResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Type          string         `json:"type"`
	PriceType     string         `json:"price_type"`
	Location      Location       `json:"location"`
	Images        []string       `json:"images"`
	CurrentCrowd  int            `json:"current_crowd"`
	MaxCrowd      int            `json:"max_crowd"`
	BookingsCount int            `json:"bookings_count"`
	DailyStats    map[string]int `json:"daily_stats"`
	Version       int64          `json:"version"`
	gDto.Metadata
}

func (r *PlaceResponse) FromModel(model model.Place) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Type = model.Category
	r.PriceType = model.PriceType
	r.Location = Location{City: model.City, Country: model.Country}
	r.Images = append([]string{}, model.Images...)
	r.CurrentCrowd = model.CurrentCrowd
	r.MaxCrowd = model.MaxCrowd
	r.BookingsCount = model.BookingsCount
	r.DailyStats = model.DailyStats.Clone()
	r.Version = model.Version
	r.Metadata.FromModel(model.Metadata)
}

type GetPlacesResponse struct {
	Places    []PlaceResponse `json:"places"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPlacesResponse) FromModels(models []model.Place, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModel(mod)
	}
}

type CreatePlaceResponse struct {
	ID string `json:"id"`
}

type TimeSlotsResponse struct {
	TimeSlots []string `json:"time_slots"`
}
