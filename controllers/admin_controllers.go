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

type AdminController struct {
	Bookings   *services.BookingService
	Facilities *services.FacilityService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		Bookings:   services.NewBookingService(db),
		Facilities: services.NewFacilityService(db),
	}
}

// GetAllBookings -> semua booking (filter month/year/facility/user) +
// daftar facility untuk dropdown filter di UI.
func (ac *AdminController) GetAllBookings(c *gin.Context) {
	actor, ok := middlewares.ActorFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	bookings, err := ac.Bookings.ListScoped(actor, models.StageAdmin, filterFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	facilities, err := ac.Facilities.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"facilities": facilities,
	})
}

type facilityRequest struct {
	Slug              string   `json:"slug"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Capacity          int      `json:"capacity"`
	Amenities         []string `json:"amenities"`
	BuildingID        uint     `json:"building_id"`
	ManagerEmployeeID string   `json:"manager_employee_id"`
}

func (r facilityRequest) toInput() services.FacilityInput {
	return services.FacilityInput{
		Slug:              r.Slug,
		Name:              r.Name,
		Description:       r.Description,
		Capacity:          r.Capacity,
		Amenities:         r.Amenities,
		BuildingID:        r.BuildingID,
		ManagerEmployeeID: r.ManagerEmployeeID,
	}
}

// ListFacilities -> semua facility termasuk nonaktif (GET /admin/facility).
func (ac *AdminController) ListFacilities(c *gin.Context) {
	facilities, err := ac.Facilities.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// CreateFacility -> POST /admin/facility/add, sekaligus mengangkat
// manager facility-nya.
func (ac *AdminController) CreateFacility(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.BuildingID == 0 || req.ManagerEmployeeID == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("name, building_id, dan manager_employee_id wajib diisi"))
		return
	}

	facility, err := ac.Facilities.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Facility %s created (manager=%s)", facility.Slug, req.ManagerEmployeeID)

	c.JSON(http.StatusCreated, gin.H{"facility": facility})
}

// UpdateFacility -> PUT /admin/facility; slug jadi kunci, atribut lain
// opsional. Transfer manager ditangani transaksional di service.
func (ac *AdminController) UpdateFacility(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Slug == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slug wajib diisi"))
		return
	}

	facility, err := ac.Facilities.Update(req.Slug, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility": facility})
}

// DeleteFacility -> POST /admin/facility; soft delete + demosi manager
// kalau ini facility aktif terakhirnya.
func (ac *AdminController) DeleteFacility(c *gin.Context) {
	var req struct {
		Slug string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	facility, err := ac.Facilities.Deactivate(req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Facility %s deactivated", facility.Slug)

	c.JSON(http.StatusOK, gin.H{"facility": facility})
}
