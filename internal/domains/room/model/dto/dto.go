package dto

import (
	"strings"

	"roomdesk/internal/domains/room/model"
	gDto "roomdesk/shared/dto"
	gModel "roomdesk/shared/model"
	"roomdesk/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber  *string  `json:"roomNumber"  validate:"required,notblank"`
	Type        *string  `json:"type"        validate:"required,oneof=single double suite deluxe"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Status      *string  `json:"status"      validate:"required,oneof=available occupied maintenance"`
	Description *string  `json:"description"`
}

// Normalize trims the free-text fields in place.
func (c *CreateRoomRequest) Normalize() {
	c.RoomNumber = trim(c.RoomNumber)
	c.Description = trim(c.Description)
}

// HasRequiredFields reports whether every required field was supplied and is not blank.
func (c *CreateRoomRequest) HasRequiredFields() bool {
	return present(c.RoomNumber) && present(c.Type) && c.Price != nil && present(c.Status)
}

func (c *CreateRoomRequest) ToModel() model.Room {
	now := timezone.Now()

	room := model.Room{
		RoomNumber:  deref(c.RoomNumber),
		Type:        deref(c.Type),
		Status:      deref(c.Status),
		Description: deref(c.Description),
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if c.Price != nil {
		room.Price = *c.Price
	}

	if room.Status == "" {
		room.Status = model.StatusAvailable
	}

	return room
}

// UpdateRoomRequest is a partial update: nil fields keep their stored value.
type UpdateRoomRequest struct {
	RoomNumber  *string  `db:"room_number" json:"roomNumber"  validate:"omitempty,notblank"`
	Type        *string  `db:"type"        json:"type"        validate:"omitempty,oneof=single double suite deluxe"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Status      *string  `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Description *string  `db:"description" json:"description"`
}

func (u *UpdateRoomRequest) Normalize() {
	u.RoomNumber = trim(u.RoomNumber)
	u.Description = trim(u.Description)
}

type RoomResponse struct {
	ID          string  `json:"_id"`
	RoomNumber  string  `json:"roomNumber"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.Price = model.Price
	r.Status = model.Status
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Count int            `json:"count"`
	Rooms []RoomResponse `json:"rooms"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.Count = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// Filter holds the list query parameters. Unknown enum values simply match nothing.
type Filter struct {
	Search string `json:"search"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

func (f *Filter) ToModel() model.Filter {
	return model.Filter{
		Search: strings.TrimSpace(f.Search),
		Type:   strings.TrimSpace(f.Type),
		Status: strings.TrimSpace(f.Status),
	}
}

func trim(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)

	return &trimmed
}

func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
