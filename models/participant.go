package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	PresencePresent = "present"
	PresenceAbsent  = "absent"

	DepartmentChild = "child"
)

type Participant struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `json:"name" gorm:"size:255;not null"`

	// Contact is a free-form document (phone, email, address, ...).
	Contact datatypes.JSON `gorm:"column:contact" json:"contact,omitempty"`

	Gender     string `json:"gender" gorm:"size:16"`
	Department string `json:"department" gorm:"size:64"`
	Presence   string `json:"presence" gorm:"size:16;default:'present'"`
	Fellowship string `json:"fellowship" gorm:"size:128;index"`
	FeePaid    bool   `json:"feePaid" gorm:"column:fee_paid;default:false"`

	GroupID *string `gorm:"column:group_id;size:36;index" json:"groupId,omitempty"`

	// RoomID is the single room reference. Only the assignment coordinator
	// writes this field (and RoomAssignedAt alongside it).
	RoomID         *string    `gorm:"column:room_id;size:36;index" json:"roomId,omitempty"`
	RoomAssignedAt *time.Time `gorm:"column:room_assigned_at" json:"roomAssignedAt,omitempty"`

	Room  *Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID;references:ID" json:"-"`
}
