package models

import "time"

// Group -> departemen tempat user bernaung. Satu group punya maksimal
// satu GroupDirector.
type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`

	Director *GroupDirector `gorm:"foreignKey:GroupID" json:"director,omitempty"`
	Bookings []Booking      `gorm:"foreignKey:GroupID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupDirector -> capability record 1:1 User ke Group.
type GroupDirector struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	UserID  uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	User    *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GroupID uint  `gorm:"uniqueIndex;not null" json:"group_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
