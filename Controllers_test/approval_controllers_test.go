package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/facility-booking/models"
)

// Rantai approval penuh: PENDING -> APPROVED_BY_GD -> APPROVED_BY_FM.
func TestApprovalChainFull(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)
	alice := sidCookie(t, store, world.Alice.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// Booking muncul di antrian GD
	w := doJSON(t, r, http.MethodGet, "/employee/approvals/gd", nil, dian)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["bookings"].([]interface{}), 1)

	// GD approve
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/gd", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, dian)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusApprovedByGD, booking.Status)
	assert.NotNil(t, booking.StatusUpdateAtGD)
	assert.NotNil(t, booking.StatusUpdateByGDID)
	assert.Equal(t, world.DianGD.ID, *booking.StatusUpdateByGDID)

	// FM approve
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/fm", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusApprovedByFM, booking.Status)
	assert.NotNil(t, booking.StatusUpdateAtFM)

	// Booking approved tetap muncul di list facility
	w = doJSON(t, r, http.MethodGet, "/facility/meeting-room-a", nil, budi)
	assert.Equal(t, http.StatusOK, w.Code)
	bookings := decodeBody(t, w)["bookings"].([]interface{})
	found := false
	for _, b := range bookings {
		if b.(map[string]interface{})["slug"] == slug {
			found = true
		}
	}
	assert.True(t, found)
}

// GD mencoba approve booking yang sudah APPROVED_BY_FM -> ditolak,
// row tidak berubah.
func TestApprovalIllegalEdgeRejected(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)
	alice := sidCookie(t, store, world.Alice.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// FM langsung approve dari PENDING (boleh)
	w := doJSON(t, r, http.MethodPost, "/employee/approvals/fm", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, alice)
	assert.Equal(t, http.StatusOK, w.Code)

	// GD terlambat
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/gd", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, dian)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusApprovedByFM, booking.Status)
	assert.Nil(t, booking.StatusUpdateAtGD, "row tidak boleh berubah")
}

// Keputusan yang sama dikirim dua kali: yang kedua harus error, bukan
// double-apply.
func TestApprovalNotIdempotentReplay(t *testing.T) {
	_, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	payload := map[string]interface{}{"slug": slug, "approved": true}
	w := doJSON(t, r, http.MethodPost, "/employee/approvals/gd", payload, dian)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/employee/approvals/gd", payload, dian)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectRequiresRemark(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	dian := sidCookie(t, store, world.Dian.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// Tanpa remark -> 400
	w := doJSON(t, r, http.MethodPost, "/employee/approvals/gd", map[string]interface{}{
		"slug":     slug,
		"approved": false,
	}, dian)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Dengan remark -> REJECTED_BY_GD (terminal)
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/gd", map[string]interface{}{
		"slug":     slug,
		"approved": false,
		"remark":   "ruangan dipakai acara lain",
	}, dian)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusRejectedByGD, booking.Status)
	assert.Equal(t, "ruangan dipakai acara lain", booking.Remark)

	// Booking terminal tidak bisa diputuskan lagi oleh siapapun
	admin := sidCookie(t, store, world.Admin.ID)
	w = doJSON(t, r, http.MethodPost, "/admin/approval", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// FM hanya boleh memutuskan booking di facility miliknya sendiri.
func TestApprovalScopeEnforced(t *testing.T) {
	_, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	carla := sidCookie(t, store, world.Carla.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Sprint Planning")

	// Carla manager lab-1/lab-2, bukan meeting-room-a
	w := doJSON(t, r, http.MethodPost, "/employee/approvals/fm", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, carla)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// User biasa bahkan tidak lolos gate role
	w = doJSON(t, r, http.MethodPost, "/employee/approvals/fm", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, budi)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminDecision(t *testing.T) {
	db, r, store, world := setupEnv(t)
	budi := sidCookie(t, store, world.Budi.ID)
	admin := sidCookie(t, store, world.Admin.ID)

	slug := createBooking(t, r, budi, "meeting-room-a", "Town Hall")

	// Admin boleh approve langsung dari PENDING
	w := doJSON(t, r, http.MethodPost, "/admin/approval", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	var booking models.Booking
	db.Where("slug = ?", slug).First(&booking)
	assert.Equal(t, models.StatusApprovedByAdmin, booking.Status)
	assert.NotNil(t, booking.StatusUpdateAtAdmin)

	// Non-admin ditolak gate
	w = doJSON(t, r, http.MethodPost, "/admin/approval", map[string]interface{}{
		"slug":     slug,
		"approved": true,
	}, budi)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
