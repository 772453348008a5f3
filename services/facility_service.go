package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/utils"
)

type FacilityService struct {
	DB *gorm.DB
}

func NewFacilityService(db *gorm.DB) *FacilityService {
	return &FacilityService{DB: db}
}

type FacilityInput struct {
	Name              string
	Slug              string // opsional saat create, immutable setelahnya
	Description       string
	Capacity          int
	Amenities         []string
	BuildingID        uint
	ManagerEmployeeID string
}

// ListActive -> facility aktif untuk dashboard user biasa.
func (s *FacilityService) ListActive() ([]models.Facility, error) {
	var facilities []models.Facility
	err := s.DB.Preload("Building").Preload("FacilityManager.User").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&facilities).Error
	return facilities, err
}

// ListAll -> semua facility termasuk yang sudah nonaktif (view admin).
func (s *FacilityService) ListAll() ([]models.Facility, error) {
	var facilities []models.Facility
	err := s.DB.Preload("Building").Preload("FacilityManager.User").
		Order("name ASC").
		Find(&facilities).Error
	return facilities, err
}

// Create -> buat facility baru sekaligus angkat managernya. Promosi role
// user ke facility_manager dilakukan di transaksi yang sama supaya kolom
// role tidak pernah lepas sinkron dari capability recordnya.
func (s *FacilityService) Create(in FacilityInput) (*models.Facility, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.ManagerEmployeeID) == "" {
		return nil, ErrBadInput
	}

	var facility models.Facility
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.First(&building, in.BuildingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		manager, err := s.ensureManager(tx, in.ManagerEmployeeID)
		if err != nil {
			return err
		}

		slug := strings.TrimSpace(in.Slug)
		if slug == "" {
			slug = utils.Slugify(in.Name)
		}

		facility = models.Facility{
			Slug:              slug,
			Name:              in.Name,
			Description:       in.Description,
			Capacity:          in.Capacity,
			IsActive:          true,
			BuildingID:        building.ID,
			FacilityManagerID: &manager.ID,
		}
		if len(in.Amenities) > 0 {
			raw, err := json.Marshal(in.Amenities)
			if err != nil {
				return err
			}
			facility.Amenities = datatypes.JSON(raw)
		}

		if err := tx.Create(&facility).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrSlugTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

// Update -> ubah atribut facility; slug tidak pernah berubah. Transfer
// manager menurunkan manager lama kalau facility ini satu-satunya yang
// dia pegang.
func (s *FacilityService) Update(slug string, in FacilityInput) (*models.Facility, error) {
	var facility models.Facility
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&facility).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if in.Name != "" {
			facility.Name = in.Name
		}
		if in.Description != "" {
			facility.Description = in.Description
		}
		if in.Capacity != 0 {
			facility.Capacity = in.Capacity
		}
		if len(in.Amenities) > 0 {
			raw, err := json.Marshal(in.Amenities)
			if err != nil {
				return err
			}
			facility.Amenities = datatypes.JSON(raw)
		}

		if in.ManagerEmployeeID != "" {
			newManager, err := s.ensureManager(tx, in.ManagerEmployeeID)
			if err != nil {
				return err
			}
			oldID := facility.FacilityManagerID
			if oldID == nil || *oldID != newManager.ID {
				facility.FacilityManagerID = &newManager.ID
				if err := tx.Save(&facility).Error; err != nil {
					return err
				}
				if oldID != nil {
					if err := s.demoteIfIdle(tx, *oldID); err != nil {
						return err
					}
				}
			}
		}

		return tx.Save(&facility).Error
	})
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

// Deactivate -> soft delete facility. Facility dilepas dari
// managernya; kalau manager tidak pegang facility aktif lain, capability
// recordnya dihapus dan rolenya kembali ke user.
func (s *FacilityService) Deactivate(slug string) (*models.Facility, error) {
	var facility models.Facility
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&facility).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !facility.IsActive {
			return ErrFacilityInactive
		}

		now := time.Now()
		managerID := facility.FacilityManagerID
		facility.IsActive = false
		facility.DeletedAt = &now
		facility.FacilityManagerID = nil
		if err := tx.Save(&facility).Error; err != nil {
			return err
		}

		if managerID != nil {
			if err := s.demoteIfIdle(tx, *managerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

// ensureManager mencari user via employee_id, membuat FacilityManager
// record kalau belum ada, dan mempromosikan rolenya.
func (s *FacilityService) ensureManager(tx *gorm.DB, employeeID string) (*models.FacilityManager, error) {
	var user models.User
	if err := tx.Where("employee_id = ?", employeeID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var manager models.FacilityManager
	err := tx.Where("user_id = ?", user.ID).First(&manager).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		manager = models.FacilityManager{UserID: user.ID}
		if err := tx.Create(&manager).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// Admin tetap admin, selain itu role ikut capability record.
	if user.Role != models.RoleAdmin && user.Role != models.RoleFacilityManager {
		if err := tx.Model(&user).Update("role", models.RoleFacilityManager).Error; err != nil {
			return nil, err
		}
	}
	return &manager, nil
}

// demoteIfIdle menghapus FacilityManager record + menurunkan role user
// kalau manager sudah tidak pegang facility aktif satupun.
func (s *FacilityService) demoteIfIdle(tx *gorm.DB, managerID uint) error {
	var remaining int64
	if err := tx.Model(&models.Facility{}).
		Where("facility_manager_id = ? AND is_active = ?", managerID, true).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}

	var manager models.FacilityManager
	if err := tx.First(&manager, managerID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&manager).Error; err != nil {
		return err
	}
	return s.recomputeRole(tx, manager.UserID)
}

// recomputeRole menghitung ulang kolom role dari keberadaan capability
// record, dipanggil di transaksi yang sama dengan mutasi capability-nya.
func (s *FacilityService) recomputeRole(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return nil
	}

	role := models.RoleUser
	var fmCount, gdCount int64
	if err := tx.Model(&models.FacilityManager{}).Where("user_id = ?", userID).Count(&fmCount).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.GroupDirector{}).Where("user_id = ?", userID).Count(&gdCount).Error; err != nil {
		return err
	}
	if fmCount > 0 {
		role = models.RoleFacilityManager
	} else if gdCount > 0 {
		role = models.RoleGroupDirector
	}

	if user.Role == role {
		return nil
	}
	return tx.Model(&user).Update("role", role).Error
}
