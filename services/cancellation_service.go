package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
)

type CancellationService struct {
	DB *gorm.DB
}

func NewCancellationService(db *gorm.DB) *CancellationService {
	return &CancellationService{DB: db}
}

// Request -> user mengajukan pembatalan booking miliknya sendiri.
// Hanya boleh saat status booking sudah approved dan cancellation chain
// masih NOT_REQUESTED.
func (s *CancellationService) Request(actor models.Actor, slug, remark string) (*models.Booking, error) {
	if strings.TrimSpace(remark) == "" {
		return nil, ErrRemarkRequired
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if booking.UserID != actor.UserID {
			return ErrNotOwner
		}
		if !booking.Status.IsApproved() {
			return ErrInvalidState
		}
		// REJECTED_BY_* tidak pernah di-reset ke NOT_REQUESTED, jadi
		// pengajuan kedua setelah ditolak ikut tertolak di sini.
		if booking.CancellationStatus != models.CancelNotRequested {
			return ErrInvalidState
		}

		now := time.Now()
		booking.CancellationStatus = models.CancelPending
		booking.CancellationRequestedAt = &now
		booking.CancellationRemark = remark
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Decide -> GD/FM memutuskan cancellation yang sedang berjalan.
// Approve FM bersifat terminal: booking ikut jadi CANCELLED.
func (s *CancellationService) Decide(actor models.Actor, stage models.ApprovalStage, slug string, approved bool) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.checkScope(tx, actor, stage, &booking); err != nil {
			return err
		}

		// Precondition dicek ulang dalam transaksi (guard optimistik).
		if !booking.CancellationStatus.CanDecide(stage) {
			return ErrInvalidState
		}

		now := time.Now()
		if approved {
			booking.CancellationStatus = stage.CancelApproved()
		} else {
			booking.CancellationStatus = stage.CancelRejected()
		}

		switch stage {
		case models.StageGD:
			booking.CancellationUpdateAtGD = &now
		case models.StageFM:
			booking.CancellationUpdateAtFM = &now
		}

		// Approve tahap FM = pembatalan final.
		if booking.CancellationStatus == models.CancelApprovedByFM {
			booking.Status = models.StatusCancelled
			booking.CancelledAt = &now
		}

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ForceCancel -> FM membatalkan langsung booking di facility miliknya
// tanpa lewat tahap GD (override operasional, mis. maintenance).
func (s *CancellationService) ForceCancel(actor models.Actor, slug, remark string) (*models.Booking, error) {
	if strings.TrimSpace(remark) == "" {
		return nil, ErrRemarkRequired
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slug = ?", slug).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := s.checkScope(tx, actor, models.StageFM, &booking); err != nil {
			return err
		}
		if booking.Status == models.StatusCancelled {
			return ErrInvalidState
		}

		now := time.Now()
		booking.Status = models.StatusCancelled
		booking.CancellationStatus = models.CancelledByFM
		booking.CancellationRemark = remark
		booking.CancellationUpdateAtFM = &now
		booking.CancelledAt = &now
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListPending -> cancellation yang menunggu keputusan stage tersebut.
func (s *CancellationService) ListPending(actor models.Actor, stage models.ApprovalStage) ([]models.Booking, error) {
	q := s.DB.Preload("BookingTime").Preload("User").Preload("Facility")

	switch stage {
	case models.StageGD:
		if !actor.IsGroupDirector() {
			return nil, ErrNoPermission
		}
		q = q.Where("group_id = ?", actor.DirectedGroupID).
			Where("cancellation_status = ?", models.CancelPending)
	case models.StageFM:
		if !actor.IsFacilityManager() {
			return nil, ErrNoPermission
		}
		q = q.Where("facility_id IN (?)",
			s.DB.Model(&models.Facility{}).Select("id").
				Where("facility_manager_id = ?", actor.FacilityManagerID)).
			Where("cancellation_status = ?", models.CancelApprovedByGD)
	default:
		return nil, ErrNoPermission
	}

	var bookings []models.Booking
	if err := q.Order("cancellation_requested_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *CancellationService) checkScope(tx *gorm.DB, actor models.Actor, stage models.ApprovalStage, booking *models.Booking) error {
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
	default:
		return ErrNoPermission
	}
	return nil
}
