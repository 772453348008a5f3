package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/session"
	"github.com/yeremiapane/facility-booking/utils"
)

// SessionCookie adalah nama cookie sesi; umurnya mengikuti session.TTL.
const SessionCookie = "sid"

// actorKey -> key context tempat Actor disimpan oleh middleware sesi.
const actorKey = "actor"

// SessionMiddleware meresolve cookie sid -> Actor sekali per request.
// Handler di bawahnya tinggal ambil actor dari context, tidak perlu
// query role sendiri-sendiri.
func SessionMiddleware(db *gorm.DB, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("sesi tidak ditemukan, silakan login"))
			return
		}

		userID, err := store.Get(sid)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("sesi tidak valid atau sudah kadaluarsa"))
			return
		}

		var user models.User
		if err := db.Preload("GroupDirector").Preload("FacilityManager").
			First(&user, userID).Error; err != nil {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("user sesi tidak ditemukan"))
			return
		}

		c.Set(actorKey, models.ActorFromUser(&user))
		c.Next()
	}
}

// ActorFrom mengambil Actor yang sudah diset SessionMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
