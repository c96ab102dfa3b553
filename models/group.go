package models

import (
	"time"

	"gorm.io/datatypes"
)

// Group is a counselling team. Members point back via Participant.GroupID.
type Group struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name      string `json:"name" gorm:"size:128;uniqueIndex;not null"`
	Counselor string `json:"counselor" gorm:"size:255"`

	Notes datatypes.JSON `gorm:"column:notes" json:"notes,omitempty"`

	Members []Participant `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}
