package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/services"
	"github.com/yeremiapane/facility-booking/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{Bookings: services.NewBookingService(db)}
}

// GetFacility -> detail facility + booking pending/approved di dalamnya.
func (bc *BookingController) GetFacility(c *gin.Context) {
	facility, bookings, err := bc.Bookings.FacilityWithBookings(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"facility": facility,
		"bookings": bookings,
	})
}

// CreateBooking -> buat booking baru di facility :slug.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Slug    string `json:"slug"`
		Purpose string `json:"purpose" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Start   string `json:"start" binding:"required"`
		End     string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Bookings.CreateBooking(actor, c.Param("slug"), services.CreateBookingInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Purpose: req.Purpose,
		Date:    req.Date,
		Start:   req.Start,
		End:     req.End,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s created by %s (status=%s)",
		booking.Slug, actor.EmployeeID, booking.Status)

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// ListGD -> booking di group yang dipimpin actor (dengan filter).
func (bc *BookingController) ListGD(c *gin.Context) {
	bc.listScoped(c, models.StageGD)
}

// ListFM -> booking di facility milik actor (dengan filter).
func (bc *BookingController) ListFM(c *gin.Context) {
	bc.listScoped(c, models.StageFM)
}

func (bc *BookingController) listScoped(c *gin.Context, stage models.ApprovalStage) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	bookings, err := bc.Bookings.ListScoped(actor, stage, filterFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// filterFromQuery membaca query month/year/facility/user; nilai yang
// tidak valid diabaikan saja supaya list tetap jalan.
func filterFromQuery(c *gin.Context) services.BookingFilter {
	filter := services.BookingFilter{
		FacilitySlug: c.Query("facility"),
		EmployeeID:   c.Query("user"),
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = m
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		filter.Year = y
	}
	return filter
}
