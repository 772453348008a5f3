package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/services"
	"github.com/yeremiapane/facility-booking/utils"
)

type CancellationController struct {
	Cancellations *services.CancellationService
}

func NewCancellationController(db *gorm.DB) *CancellationController {
	return &CancellationController{Cancellations: services.NewCancellationService(db)}
}

// Request -> user minta pembatalan booking miliknya, remark wajib.
func (cc *CancellationController) Request(c *gin.Context) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Slug   string `json:"slug" binding:"required"`
		Remark string `json:"remark" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := cc.Cancellations.Request(actor, req.Slug, req.Remark)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cancellation requested for %s by %s",
		booking.Slug, actor.EmployeeID)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListGD / ListFM -> antrian cancellation per tahap.
func (cc *CancellationController) ListGD(c *gin.Context) {
	cc.list(c, models.StageGD)
}

func (cc *CancellationController) ListFM(c *gin.Context) {
	cc.list(c, models.StageFM)
}

// DecideGD / DecideFM -> keputusan cancellation per tahap.
func (cc *CancellationController) DecideGD(c *gin.Context) {
	cc.decide(c, models.StageGD)
}

func (cc *CancellationController) DecideFM(c *gin.Context) {
	cc.decide(c, models.StageFM)
}

// ForceCancel -> FM membatalkan langsung booking di facilitynya
// (override operasional), remark wajib.
func (cc *CancellationController) ForceCancel(c *gin.Context) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Slug   string `json:"slug" binding:"required"`
		Remark string `json:"remark" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := cc.Cancellations.ForceCancel(actor, req.Slug, req.Remark)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s force-cancelled by %s", booking.Slug, actor.EmployeeID)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (cc *CancellationController) list(c *gin.Context, stage models.ApprovalStage) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	bookings, err := cc.Cancellations.ListPending(actor, stage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (cc *CancellationController) decide(c *gin.Context, stage models.ApprovalStage) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Slug     string `json:"slug" binding:"required"`
		Approved *bool  `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := cc.Cancellations.Decide(actor, stage, req.Slug, *req.Approved)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cancellation of %s -> %s by %s (stage=%s)",
		booking.Slug, booking.CancellationStatus, actor.EmployeeID, stage)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
