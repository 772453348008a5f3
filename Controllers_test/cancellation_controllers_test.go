package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/facility-booking/models"
)

// approveChain -> bawa booking sampai APPROVED_BY_FM lewat endpoint.
func approveChain(t *testing.T, r *gin.Engine, slug string, dian, alice *http.Cookie) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/employee/approvals/gd", map[string]interface{}{
		"slug": slug, "approved": true,
	}, dian)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/fm", map[string]interface{}{
		"slug": slug, "approved": true,
	}, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}

// Rantai cancellation penuh: request -> GD approve -> FM approve,
// booking berakhir CANCELLED.
func TestCancellationChainFull(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)
	alice := sidCookie(t, store, world.Alice.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")
	approveChain(t, r, slug, dian, alice)

	// Owner request cancel, remark wajib
	w := doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug, "remark": "agenda dibatalkan",
	}, budi)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.CancelPending, booking.CancellationStatus)
	assert.NotNil(t, booking.CancellationRequestedAt)
	assert.Equal(t, "agenda dibatalkan", booking.CancellationRemark)

	// Muncul di antrian cancellation GD
	w = doJSON(t, r, http.MethodGet, "/bookings/cancel/gd", nil, dian)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["bookings"].([]interface{}), 1)

	// GD approve
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/gd", map[string]interface{}{
		"slug": slug, "approved": true,
	}, dian)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.CancelApprovedByGD, booking.CancellationStatus)
	assert.NotNil(t, booking.CancellationUpdateAtGD)

	// FM approve -> cancellation final, status booking ikut CANCELLED
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/fm", map[string]interface{}{
		"slug": slug, "approved": true,
	}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.CancelApprovedByFM, booking.CancellationStatus)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.NotNil(t, booking.CancelledAt)
}

// Cancel hanya untuk booking yang sudah approved.
func TestCancellationNeedsApprovedBooking(t *testing.T) {
	_, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// Masih PENDING
	w := doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug, "remark": "batal",
	}, budi)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Remark kosong ditolak binding
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug,
	}, budi)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Rejection itu lengket: setelah ditolak, user tidak bisa request ulang.
func TestCancellationRejectionSticky(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)
	alice := sidCookie(t, store, world.Alice.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")
	approveChain(t, r, slug, dian, alice)

	w := doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug, "remark": "batal",
	}, budi)
	assert.Equal(t, http.StatusOK, w.Code)

	// GD reject
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/gd", map[string]interface{}{
		"slug": slug, "approved": false,
	}, dian)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.CancelRejectedByGD, booking.CancellationStatus)
	assert.Equal(t, models.StatusApprovedByFM, booking.Status, "booking tetap hidup")

	// Request kedua ditolak
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug, "remark": "coba lagi",
	}, budi)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// FM juga tidak bisa memutus chain yang sudah terminal
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/fm", map[string]interface{}{
		"slug": slug, "approved": true,
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Hanya pemilik booking yang boleh minta cancel.
func TestCancellationOwnerOnly(t *testing.T) {
	_, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	eka := sidCookie(t, store, world.Eka.ID)
	dian := sidCookie(t, store, world.Dian.ID)
	alice := sidCookie(t, store, world.Alice.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")
	approveChain(t, r, slug, dian, alice)

	w := doJSON(t, r, http.MethodPost, "/bookings/cancel", map[string]interface{}{
		"slug": slug, "remark": "bukan punya saya",
	}, eka)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// FM boleh membatalkan langsung booking di facilitynya, tanpa chain.
func TestForceCancel(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	alice := sidCookie(t, store, world.Alice.ID)
	carla := sidCookie(t, store, world.Carla.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// FM lain tidak boleh
	w := doJSON(t, r, http.MethodPost, "/bookings/cancel/facility", map[string]interface{}{
		"slug": slug, "remark": "maintenance mendadak",
	}, carla)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Remark wajib
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/facility", map[string]interface{}{
		"slug": slug,
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/facility", map[string]interface{}{
		"slug": slug, "remark": "maintenance mendadak",
	}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Equal(t, models.CancelledByFM, booking.CancellationStatus)
	assert.NotNil(t, booking.CancelledAt)

	// Sudah CANCELLED, force-cancel kedua ditolak
	w = doJSON(t, r, http.MethodPost, "/bookings/cancel/facility", map[string]interface{}{
		"slug": slug, "remark": "dobel",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
