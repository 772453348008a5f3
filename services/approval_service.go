package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
)

type ApprovalService struct {
	DB *gorm.DB
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{DB: db}
}

// Decide -> terapkan keputusan approve/reject satu tahap approval.
// Precondition state machine dicek ulang di dalam transaksi yang sama
// dengan update-nya, jadi dua approval yang balapan tidak bisa sama-sama
// lolos dari precondition basi.
func (s *ApprovalService) Decide(actor models.Actor, stage models.ApprovalStage, slug string, approved bool, remark string) (*models.Booking, error) {
	if !approved && strings.TrimSpace(remark) == "" {
		return nil, ErrRemarkRequired
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("BookingTime").Where("slug = ?", slug).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.checkScope(tx, actor, stage, &booking); err != nil {
			return err
		}

		// Guard optimistik: status dibaca ulang barusan, transisi ilegal
		// ditolak eksplisit supaya client bisa refresh state basinya.
		if !booking.Status.CanDecide(stage) {
			return ErrInvalidState
		}

		now := time.Now()
		if approved {
			booking.Status = stage.Approved()
		} else {
			booking.Status = stage.Rejected()
			booking.Remark = remark
		}

		switch stage {
		case models.StageGD:
			booking.StatusUpdateAtGD = &now
			gdID := actor.GroupDirectorID
			booking.StatusUpdateByGDID = &gdID
		case models.StageFM:
			booking.StatusUpdateAtFM = &now
			fmID := actor.FacilityManagerID
			booking.StatusUpdateByFMID = &fmID
		case models.StageAdmin:
			booking.StatusUpdateAtAdmin = &now
		}

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListPending -> booking yang menunggu keputusan stage tersebut, scoped
// ke otoritas actor.
func (s *ApprovalService) ListPending(actor models.Actor, stage models.ApprovalStage) ([]models.Booking, error) {
	q := s.DB.Preload("BookingTime").Preload("User").Preload("Facility")

	switch stage {
	case models.StageGD:
		if !actor.IsGroupDirector() {
			return nil, ErrNoPermission
		}
		q = q.Where("group_id = ?", actor.DirectedGroupID).
			Where("status = ?", models.StatusPending)
	case models.StageFM:
		if !actor.IsFacilityManager() {
			return nil, ErrNoPermission
		}
		q = q.Where("facility_id IN (?)", s.facilityIDs(actor)).
			Where("status IN ?", []models.BookingStatus{
				models.StatusPending, models.StatusApprovedByGD,
			})
	case models.StageAdmin:
		if !actor.IsAdmin() {
			return nil, ErrNoPermission
		}
		q = q.Where("status IN ?", []models.BookingStatus{
			models.StatusPending, models.StatusApprovedByGD, models.StatusApprovedByFM,
		})
	default:
		return nil, ErrNoPermission
	}

	var bookings []models.Booking
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// checkScope memastikan booking memang dalam wilayah actor: GD hanya
// groupnya, FM hanya facility miliknya, admin bebas.
func (s *ApprovalService) checkScope(tx *gorm.DB, actor models.Actor, stage models.ApprovalStage, booking *models.Booking) error {
	switch stage {
	case models.StageGD:
		if !actor.IsGroupDirector() || booking.GroupID != actor.DirectedGroupID {
			return ErrNoPermission
		}
	case models.StageFM:
		if !actor.IsFacilityManager() {
			return ErrNoPermission
		}
		var count int64
		if err := tx.Model(&models.Facility{}).
			Where("id = ? AND facility_manager_id = ?", booking.FacilityID, actor.FacilityManagerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNoPermission
		}
	case models.StageAdmin:
		if !actor.IsAdmin() {
			return ErrNoPermission
		}
	default:
		return ErrNoPermission
	}
	return nil
}

func (s *ApprovalService) facilityIDs(actor models.Actor) *gorm.DB {
	return s.DB.Model(&models.Facility{}).Select("id").
		Where("facility_manager_id = ?", actor.FacilityManagerID)
}
