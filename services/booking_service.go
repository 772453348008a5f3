package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/utils"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	Title   string
	Slug    string // opsional, digenerate dari title kalau kosong
	Purpose string
	Date    string // "2006-01-02"
	Start   string // "15:04"
	End     string // "15:04"
}

// CreateBooking -> buat Booking + BookingTime dalam satu transaksi.
// Status awal mengikuti self-approval shortcut: GD yang booking untuk
// groupnya sendiri langsung APPROVED_BY_GD, FM yang booking facility
// miliknya sendiri langsung APPROVED_BY_FM.
func (s *BookingService) CreateBooking(actor models.Actor, facilitySlug string, in CreateBookingInput) (*models.Booking, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: format date harus YYYY-MM-DD", ErrBadInput)
	}
	start, err := parseSlotTime(date, in.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: format start harus HH:MM", ErrBadInput)
	}
	end, err := parseSlotTime(date, in.End)
	if err != nil {
		return nil, fmt.Errorf("%w: format end harus HH:MM", ErrBadInput)
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	var booking models.Booking
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var facility models.Facility
		if err := tx.Where("slug = ?", facilitySlug).First(&facility).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !facility.IsActive {
			return ErrFacilityInactive
		}

		slug := strings.TrimSpace(in.Slug)
		if slug == "" {
			slug = utils.UniqueSlug(in.Title)
		}

		booking = models.Booking{
			Slug:               slug,
			Title:              in.Title,
			Purpose:            in.Purpose,
			Status:             models.StatusPending,
			CancellationStatus: models.CancelNotRequested,
			FacilityID:         facility.ID,
			GroupID:            actor.GroupID,
			UserID:             actor.UserID,
		}

		// Self-approval shortcut. Cek FM dulu karena tahapnya lebih jauh.
		now := time.Now()
		if actor.IsFacilityManager() && facility.FacilityManagerID != nil &&
			*facility.FacilityManagerID == actor.FacilityManagerID {
			booking.Status = models.StatusApprovedByFM
			booking.StatusUpdateAtFM = &now
			fmID := actor.FacilityManagerID
			booking.StatusUpdateByFMID = &fmID
		} else if actor.IsGroupDirector() && actor.DirectedGroupID == actor.GroupID {
			booking.Status = models.StatusApprovedByGD
			booking.StatusUpdateAtGD = &now
			gdID := actor.GroupDirectorID
			booking.StatusUpdateByGDID = &gdID
		}

		if err := tx.Create(&booking).Error; err != nil {
			if isDuplicateErr(err) {
				return ErrSlugTaken
			}
			return err
		}

		bookingTime := models.BookingTime{
			BookingID: booking.ID,
			Date:      date,
			Start:     start,
			End:       end,
		}
		if err := tx.Create(&bookingTime).Error; err != nil {
			return err
		}
		booking.BookingTime = &bookingTime
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FacilityWithBookings -> facility + booking pending/approved di dalamnya
// (untuk halaman detail facility).
func (s *BookingService) FacilityWithBookings(slug string) (*models.Facility, []models.Booking, error) {
	var facility models.Facility
	if err := s.DB.Preload("Building").Where("slug = ?", slug).First(&facility).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var bookings []models.Booking
	err := s.DB.Preload("BookingTime").Preload("User").
		Where("facility_id = ?", facility.ID).
		Where("status IN ?", []models.BookingStatus{
			models.StatusPending,
			models.StatusApprovedByGD,
			models.StatusApprovedByFM,
			models.StatusApprovedByAdmin,
		}).
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, nil, err
	}
	return &facility, bookings, nil
}

// BookingFilter -> filter opsional list booking, semuanya AND.
type BookingFilter struct {
	Month        int
	Year         int
	FacilitySlug string
	EmployeeID   string
}

// ListScoped -> daftar booking sesuai otoritas actor: admin semua, GD
// groupnya, FM facility miliknya. Filter yang tidak match (mis.
// employee_id tak dikenal) menghasilkan list kosong, bukan error.
func (s *BookingService) ListScoped(actor models.Actor, stage models.ApprovalStage, filter BookingFilter) ([]models.Booking, error) {
	q := s.DB.Preload("BookingTime").Preload("User").Preload("Facility").Preload("Group")

	switch stage {
	case models.StageGD:
		if !actor.IsGroupDirector() {
			return nil, ErrNoPermission
		}
		q = q.Where("group_id = ?", actor.DirectedGroupID)
	case models.StageFM:
		if !actor.IsFacilityManager() {
			return nil, ErrNoPermission
		}
		q = q.Where("facility_id IN (?)",
			s.DB.Model(&models.Facility{}).Select("id").
				Where("facility_manager_id = ?", actor.FacilityManagerID))
	case models.StageAdmin:
		if !actor.IsAdmin() {
			return nil, ErrNoPermission
		}
	default:
		return nil, ErrNoPermission
	}

	q, err := s.applyFilter(q, filter)
	if err != nil {
		return []models.Booking{}, nil
	}

	var bookings []models.Booking
	if err := q.Order("id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// applyFilter menyusun filter month/year/facility/user secara aditif.
// Range periode inklusif-eksklusif [awal periode, awal periode berikut).
func (s *BookingService) applyFilter(q *gorm.DB, filter BookingFilter) (*gorm.DB, error) {
	if filter.Year != 0 || filter.Month != 0 {
		year := filter.Year
		if year == 0 {
			year = time.Now().Year()
		}
		var from, to time.Time
		if filter.Month != 0 {
			from = time.Date(year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 1, 0)
		} else {
			from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(1, 0, 0)
		}
		q = q.Where("id IN (?)",
			s.DB.Model(&models.BookingTime{}).Select("booking_id").
				Where("date >= ? AND date < ?", from, to))
	}

	if filter.FacilitySlug != "" {
		var facility models.Facility
		if err := s.DB.Where("slug = ?", filter.FacilitySlug).First(&facility).Error; err != nil {
			return q, err // facility tak dikenal -> list kosong
		}
		q = q.Where("facility_id = ?", facility.ID)
	}

	if filter.EmployeeID != "" {
		var user models.User
		if err := s.DB.Where("employee_id = ?", filter.EmployeeID).First(&user).Error; err != nil {
			return q, err // user tak dikenal -> list kosong
		}
		q = q.Where("user_id = ?", user.ID)
	}

	return q, nil
}

func parseSlotTime(date time.Time, value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		// terima juga format dengan detik
		t, err = time.Parse("15:04:05", value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}

// isDuplicateErr mendeteksi pelanggaran unique constraint dari MySQL
// maupun SQLite supaya bisa dibalas sebagai conflict, bukan 500.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique constraint")
}
