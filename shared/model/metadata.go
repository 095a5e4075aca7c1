package model

import "time"

type Metadata struct {
	CreatedAt time.Time `db:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" bson:"updatedAt"`
}
