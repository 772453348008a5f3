package models

import "time"

// Role user disimpan denormalized di kolom role. Invariantnya: role
// group_director/facility_manager hanya valid jika capability record
// (GroupDirector/FacilityManager) yang menunjuk user tersebut ada.
const (
	RoleUser            = "user"
	RoleGroupDirector   = "group_director"
	RoleFacilityManager = "facility_manager"
	RoleAdmin           = "admin"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EmployeeID string `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	Password   string `gorm:"type:varchar(255);not null" json:"-"`
	Image      string `gorm:"type:varchar(255)" json:"image,omitempty"`
	Role       string `gorm:"type:varchar(30);not null;default:'user'" json:"role"`
	GroupID    uint   `gorm:"index;not null" json:"group_id"`
	Group      *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	GroupDirector   *GroupDirector   `gorm:"foreignKey:UserID" json:"group_director,omitempty"`
	FacilityManager *FacilityManager `gorm:"foreignKey:UserID" json:"facility_manager,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
