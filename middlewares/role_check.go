package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/utils"
)

// RequireGroupDirector -> gate untuk endpoint GD. Admin tidak ikut
// lewat sini, approval admin punya endpoint sendiri.
func RequireGroupDirector() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if !actor.IsGroupDirector() {
			utils.AbortError(c, http.StatusForbidden, errors.New("akses khusus group director"))
			return
		}
		c.Next()
	}
}

// RequireFacilityManager -> gate untuk endpoint FM.
func RequireFacilityManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if !actor.IsFacilityManager() {
			utils.AbortError(c, http.StatusForbidden, errors.New("akses khusus facility manager"))
			return
		}
		c.Next()
	}
}

// RequireAdmin -> gate untuk endpoint admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if actor.Role != models.RoleAdmin {
			utils.AbortError(c, http.StatusForbidden, errors.New("akses khusus admin"))
			return
		}
		c.Next()
	}
}
