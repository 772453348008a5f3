package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/config"
	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/router"
	"github.com/yeremiapane/facility-booking/session"
	"github.com/yeremiapane/facility-booking/utils"
)

// testWorld -> fixture standar untuk test controller: dua group, satu
// building, dua manager facility, dan user biasa.
type testWorld struct {
	Engineering models.Group
	Marketing   models.Group
	HQ          models.Building

	Admin models.User // ADM-1
	Dian  models.User // GD-1, group director Engineering
	Alice models.User // FM-1, manager meeting-room-a
	Carla models.User // FM-2, manager lab-1 dan lab-2
	Budi  models.User // EMP-1, user biasa Engineering
	Eka   models.User // EMP-2, user biasa Marketing

	DianGD  models.GroupDirector
	AliceFM models.FacilityManager
	CarlaFM models.FacilityManager

	MeetingRoom models.Facility // meeting-room-a (Alice)
	Lab1        models.Facility // lab-1 (Carla)
	Lab2        models.Facility // lab-2 (Carla)
}

// setupTestDB menggunakan SQLite in-memory untuk testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed gagal: %v", err)
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

// seedWorld mengisi fixture standar. Semua user passwordnya "rahasia1".
func seedWorld(t *testing.T, db *gorm.DB) *testWorld {
	t.Helper()
	w := &testWorld{}

	w.Engineering = models.Group{Name: "Engineering"}
	mustCreate(t, db, &w.Engineering)
	w.Marketing = models.Group{Name: "Marketing"}
	mustCreate(t, db, &w.Marketing)
	w.HQ = models.Building{Name: "Head Office"}
	mustCreate(t, db, &w.HQ)

	pass := hashPassword(t, "rahasia1")

	w.Admin = models.User{EmployeeID: "ADM-1", Name: "Admin", Password: pass,
		Role: models.RoleAdmin, GroupID: w.Engineering.ID}
	mustCreate(t, db, &w.Admin)

	w.Dian = models.User{EmployeeID: "GD-1", Name: "Dian", Password: pass,
		Role: models.RoleGroupDirector, GroupID: w.Engineering.ID}
	mustCreate(t, db, &w.Dian)
	w.DianGD = models.GroupDirector{UserID: w.Dian.ID, GroupID: w.Engineering.ID}
	mustCreate(t, db, &w.DianGD)

	w.Alice = models.User{EmployeeID: "FM-1", Name: "Alice", Password: pass,
		Role: models.RoleFacilityManager, GroupID: w.Marketing.ID}
	mustCreate(t, db, &w.Alice)
	w.AliceFM = models.FacilityManager{UserID: w.Alice.ID}
	mustCreate(t, db, &w.AliceFM)

	w.Carla = models.User{EmployeeID: "FM-2", Name: "Carla", Password: pass,
		Role: models.RoleFacilityManager, GroupID: w.Marketing.ID}
	mustCreate(t, db, &w.Carla)
	w.CarlaFM = models.FacilityManager{UserID: w.Carla.ID}
	mustCreate(t, db, &w.CarlaFM)

	w.Budi = models.User{EmployeeID: "EMP-1", Name: "Budi", Password: pass,
		Role: models.RoleUser, GroupID: w.Engineering.ID}
	mustCreate(t, db, &w.Budi)
	w.Eka = models.User{EmployeeID: "EMP-2", Name: "Eka", Password: pass,
		Role: models.RoleUser, GroupID: w.Marketing.ID}
	mustCreate(t, db, &w.Eka)

	w.MeetingRoom = models.Facility{Slug: "meeting-room-a", Name: "Meeting Room A",
		Capacity: 10, IsActive: true, BuildingID: w.HQ.ID, FacilityManagerID: &w.AliceFM.ID}
	mustCreate(t, db, &w.MeetingRoom)
	w.Lab1 = models.Facility{Slug: "lab-1", Name: "Lab 1",
		Capacity: 6, IsActive: true, BuildingID: w.HQ.ID, FacilityManagerID: &w.CarlaFM.ID}
	mustCreate(t, db, &w.Lab1)
	w.Lab2 = models.Facility{Slug: "lab-2", Name: "Lab 2",
		Capacity: 4, IsActive: true, BuildingID: w.HQ.ID, FacilityManagerID: &w.CarlaFM.ID}
	mustCreate(t, db, &w.Lab2)

	return w
}

// setupEnv -> DB + router lengkap + session store untuk test endpoint.
func setupEnv(t *testing.T) (*gorm.DB, *gin.Engine, session.Store, *testWorld) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	world := seedWorld(t, db)
	store := session.NewMemoryStore()
	r := router.SetupRouter(db, store)
	return db, r, store, world
}

// sidCookie membuat sesi langsung di store (tanpa lewat endpoint login,
// supaya tidak kena rate limiter login).
func sidCookie(t *testing.T, store session.Store, userID uint) *http.Cookie {
	t.Helper()
	sid, err := store.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

// doJSON mengirim request JSON (body boleh nil) dengan cookie opsional.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody membaca body JSON respons jadi map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

// createBooking -> helper bikin booking via endpoint, return slug-nya.
func createBooking(t *testing.T, r *gin.Engine, cookie *http.Cookie, facilitySlug, title string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/facility/"+facilitySlug, map[string]interface{}{
		"title":   title,
		"purpose": "Team sync",
		"date":    "2024-06-01",
		"start":   "10:00",
		"end":     "11:00",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking gagal: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	booking := body["booking"].(map[string]interface{})
	return booking["slug"].(string)
}
