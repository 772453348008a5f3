package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/services"
	"github.com/yeremiapane/facility-booking/utils"
)

type DashboardController struct {
	DB         *gorm.DB
	Facilities *services.FacilityService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, Facilities: services.NewFacilityService(db)}
}

// Dashboard -> user yang login + daftar facility aktif.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	facilities, err := dc.Facilities.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       actor,
		"facilities": facilities,
	})
}
