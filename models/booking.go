package models

import "time"

// Booking -> entitas utama. Dua state machine independen di satu row:
// Status (approval chain) dan CancellationStatus (cancellation chain).
// Booking tidak pernah dihapus fisik, pembatalan hanya mengubah status.
type Booking struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Slug    string `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Purpose string `gorm:"type:text" json:"purpose"`

	Status             BookingStatus      `gorm:"type:varchar(30);not null;default:'PENDING'" json:"status"`
	CancellationStatus CancellationStatus `gorm:"type:varchar(30);not null;default:'NOT_REQUESTED'" json:"cancellation_status"`

	// Timestamp per tahap approval + audit link siapa yang menyetujui.
	StatusUpdateAtGD    *time.Time `json:"status_update_at_gd,omitempty"`
	StatusUpdateAtFM    *time.Time `json:"status_update_at_fm,omitempty"`
	StatusUpdateAtAdmin *time.Time `json:"status_update_at_admin,omitempty"`
	StatusUpdateByGDID  *uint      `gorm:"index" json:"status_update_by_gd_id,omitempty"`
	StatusUpdateByGD    *GroupDirector `gorm:"foreignKey:StatusUpdateByGDID" json:"status_update_by_gd,omitempty"`
	StatusUpdateByFMID  *uint          `gorm:"index" json:"status_update_by_fm_id,omitempty"`
	StatusUpdateByFM    *FacilityManager `gorm:"foreignKey:StatusUpdateByFMID" json:"status_update_by_fm,omitempty"`

	Remark string `gorm:"type:text" json:"remark,omitempty"`

	CancellationRequestedAt *time.Time `json:"cancellation_requested_at,omitempty"`
	CancellationRemark      string     `gorm:"type:text" json:"cancellation_remark,omitempty"`
	CancellationUpdateAtGD  *time.Time `json:"cancellation_update_at_gd,omitempty"`
	CancellationUpdateAtFM  *time.Time `json:"cancellation_update_at_fm,omitempty"`
	CancelledAt             *time.Time `json:"cancelled_at,omitempty"`

	FacilityID uint      `gorm:"index;not null" json:"facility_id"`
	Facility   *Facility `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`

	// GroupID = snapshot group si requester saat booking dibuat, immutable.
	GroupID uint   `gorm:"index;not null" json:"group_id"`
	Group   *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	BookingTime *BookingTime `gorm:"foreignKey:BookingID" json:"booking_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingTime -> slot waktu milik satu booking, dibuat atomik bersama
// bookingnya dalam satu transaksi.
type BookingTime struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"uniqueIndex;not null" json:"booking_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Start     time.Time `gorm:"not null" json:"start"`
	End       time.Time `gorm:"not null" json:"end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
