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

type ApprovalController struct {
	Approvals *services.ApprovalService
}

func NewApprovalController(db *gorm.DB) *ApprovalController {
	return &ApprovalController{Approvals: services.NewApprovalService(db)}
}

type decisionRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Approved *bool  `json:"approved" binding:"required"`
	Remark   string `json:"remark"`
}

// ListGD -> booking PENDING di group actor.
func (ac *ApprovalController) ListGD(c *gin.Context) {
	ac.list(c, models.StageGD)
}

// ListFM -> booking PENDING/APPROVED_BY_GD di facility actor.
func (ac *ApprovalController) ListFM(c *gin.Context) {
	ac.list(c, models.StageFM)
}

// DecideGD -> keputusan approve/reject tahap GD.
func (ac *ApprovalController) DecideGD(c *gin.Context) {
	ac.decide(c, models.StageGD)
}

// DecideFM -> keputusan approve/reject tahap FM.
func (ac *ApprovalController) DecideFM(c *gin.Context) {
	ac.decide(c, models.StageFM)
}

// DecideAdmin -> keputusan final admin (POST /admin/approval).
func (ac *ApprovalController) DecideAdmin(c *gin.Context) {
	ac.decide(c, models.StageAdmin)
}

func (ac *ApprovalController) list(c *gin.Context, stage models.ApprovalStage) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	bookings, err := ac.Approvals.ListPending(actor, stage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (ac *ApprovalController) decide(c *gin.Context, stage models.ApprovalStage) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := ac.Approvals.Decide(actor, stage, req.Slug, *req.Approved, req.Remark)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s -> %s by %s (stage=%s)",
		booking.Slug, booking.Status, actor.EmployeeID, stage)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
