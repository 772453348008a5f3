package models

import (
	"time"

	"gorm.io/datatypes"
)

type Building struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`

	Facilities []Facility `gorm:"foreignKey:BuildingID" json:"facilities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Facility -> fasilitas yang bisa dibooking. Soft delete via IsActive +
// DeletedAt supaya history booking lama tetap utuh (tidak pernah hard delete).
type Facility struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Capacity    int            `gorm:"default:0" json:"capacity"`
	Amenities   datatypes.JSON `json:"amenities,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`

	BuildingID uint      `gorm:"index;not null" json:"building_id"`
	Building   *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`

	// Facility aktif selalu punya tepat satu FacilityManager; kolom jadi
	// nullable supaya facility nonaktif bisa dilepas dari managernya.
	FacilityManagerID *uint            `gorm:"index" json:"facility_manager_id,omitempty"`
	FacilityManager   *FacilityManager `gorm:"foreignKey:FacilityManagerID" json:"facility_manager,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FacilityManager -> capability record User ke fasilitas yang dia kelola.
// Satu manager bisa pegang lebih dari satu facility.
type FacilityManager struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Facilities []Facility `gorm:"foreignKey:FacilityManagerID" json:"facilities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
