package models

import (
	"time"

	"gorm.io/gorm"
)

type Room struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Capacity   int    `json:"capacity" gorm:"not null;default:0"`

	// Booked is derived from participant room references. It is filled on
	// read and never persisted; the participant set is the ground truth.
	Booked int `gorm:"-" json:"booked"`
}

func (r Room) Available() int {
	if avail := r.Capacity - r.Booked; avail > 0 {
		return avail
	}
	return 0
}
