package models

import "time"

// Session -> baris penyimpan sesi login untuk session.GormStore.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SID       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"sid"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
