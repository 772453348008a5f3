package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/models"
	"github.com/yeremiapane/facility-booking/session"
	"github.com/yeremiapane/facility-booking/utils"
)

type AuthController struct {
	DB       *gorm.DB
	Sessions session.Store
}

func NewAuthController(db *gorm.DB, store session.Store) *AuthController {
	return &AuthController{DB: db, Sessions: store}
}

// Register user baru (role user; role lain lewat penugasan admin).
func (ac *AuthController) Register(c *gin.Context) {
	type request struct {
		EmployeeID string `json:"employee_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Password   string `json:"password" binding:"required,min=6"`
		GroupID    uint   `json:"group_id" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var group models.Group
	if err := ac.DB.First(&group, req.GroupID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("group tidak ditemukan"))
		return
	}

	user := models.User{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Password:   string(hashed),
		Role:       models.RoleUser,
		GroupID:    group.ID,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("employee_id sudah terdaftar"))
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (group=%d)", user.EmployeeID, user.GroupID)

	c.JSON(http.StatusCreated, gin.H{
		"id":          user.ID,
		"employee_id": user.EmployeeID,
		"message":     "registrasi berhasil",
	})
}

// Login -> verifikasi kredensial lalu buat sesi + set cookie sid.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		EmployeeID string `json:"employee_id" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("employee_id = ?", input.EmployeeID).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("employee_id tidak terdaftar"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("password salah"))
		return
	}

	sid, err := ac.Sessions.Create(user.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Cookie sesi 7 hari, HttpOnly
	c.SetCookie(middlewares.SessionCookie, sid, int(session.TTL.Seconds()), "/", "", false, true)

	utils.InfoLogger.Printf("Login successful for %s (role=%s)", user.EmployeeID, user.Role)

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"employee_id": user.EmployeeID,
		"message":     "login berhasil",
	})
}

// Logout -> hapus sesi dan kosongkan cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	if sid, err := c.Cookie(middlewares.SessionCookie); err == nil && sid != "" {
		if err := ac.Sessions.Delete(sid); err != nil {
			utils.ErrorLogger.Printf("failed to delete session: %v", err)
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logout berhasil"})
}
