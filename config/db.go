package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/utils"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// InitDB -> buka koneksi MySQL, migrasi schema, dan pastikan admin
// default ada.
func InitDB() (*gorm.DB, error) {
	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "facility_booking")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	seedDefaultAdmin(db)
	return db, nil
}

// AutoMigrate urut parent -> child supaya FK tidak bentrok. Dipakai juga
// oleh test dengan SQLite in-memory.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.GroupDirector{},
		&models.FacilityManager{},
		&models.Building{},
		&models.Facility{},
		&models.Booking{},
		&models.BookingTime{},
		&models.Session{},
	)
}

// seedDefaultAdmin membuat group Management + satu admin kalau tabel
// user masih kosong, supaya instalasi baru bisa langsung login.
func seedDefaultAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	group := models.Group{Name: "Management"}
	if err := db.FirstOrCreate(&group, models.Group{Name: "Management"}).Error; err != nil {
		utils.ErrorLogger.Printf("failed to seed default group: %v", err)
		return
	}

	password := envOrDefault("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		EmployeeID: envOrDefault("ADMIN_EMPLOYEE_ID", "ADM-001"),
		Name:       "Default Admin",
		Password:   string(hash),
		Role:       models.RoleAdmin,
		GroupID:    group.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Printf("failed to seed default admin: %v", err)
		return
	}
	utils.InfoLogger.Printf("Default admin seeded (employee_id=%s)", admin.EmployeeID)
}
