package model

import "roomdesk/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldType        = "type"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDescription = "description"
)

const (
	TypeSingle = "single"
	TypeDouble = "double"
	TypeSuite  = "suite"
	TypeDeluxe = "deluxe"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

var (
	Types    = []string{TypeSingle, TypeDouble, TypeSuite, TypeDeluxe}
	Statuses = []string{StatusAvailable, StatusOccupied, StatusMaintenance}
)

type Room struct {
	ID          string  `db:"id"          bson:"-"`
	RoomNumber  string  `db:"room_number" bson:"roomNumber"`
	Type        string  `db:"type"        bson:"type"`
	Price       float64 `db:"price"       bson:"price"`
	Status      string  `db:"status"      bson:"status"`
	Description string  `db:"description" bson:"description"`

	model.Metadata `bson:",inline"`
}

// Filter narrows a room listing. Empty values and "all" leave a dimension unrestricted.
type Filter struct {
	Search string
	Type   string
	Status string
}
