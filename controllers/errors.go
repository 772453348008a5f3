package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/facility-booking/services"
	"github.com/yeremiapane/facility-booking/utils"
)

// respondServiceError memetakan sentinel error service ke HTTP status.
// Error tak dikenal dilog di server dan dibalas 500 generik, detailnya
// tidak bocor ke client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrNoPermission), errors.Is(err, services.ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrRemarkRequired),
		errors.Is(err, services.ErrInvalidTimeRange),
		errors.Is(err, services.ErrFacilityInactive),
		errors.Is(err, services.ErrBadInput):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrSlugTaken):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("unexpected error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError,
			errors.New("terjadi kesalahan internal"))
	}
}
