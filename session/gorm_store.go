package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
)

// GormStore -> penyimpanan sesi di tabel sessions, dipakai kalau server
// jalan lebih dari satu instance.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(userID uint) (string, error) {
	sess := models.Session{
		SID:       uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return "", err
	}
	return sess.SID, nil
}

func (s *GormStore) Get(sid string) (uint, error) {
	var sess models.Session
	err := s.DB.Where("sid = ?", sid).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if time.Now().After(sess.ExpiresAt) {
		s.DB.Delete(&sess)
		return 0, ErrNotFound
	}
	return sess.UserID, nil
}

func (s *GormStore) Delete(sid string) error {
	return s.DB.Where("sid = ?", sid).Delete(&models.Session{}).Error
}

// PurgeExpired membersihkan baris sesi yang sudah lewat, dipanggil
// periodik dari main.
func (s *GormStore) PurgeExpired() error {
	return s.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
