package router

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/facility-booking/controllers"
	"github.com/yeremiapane/facility-booking/middlewares"
	"github.com/yeremiapane/facility-booking/session"
)

func SetupRouter(db *gorm.DB, store session.Store) *gin.Engine {
	r := gin.Default()

	// CORS dibatasi ke satu origin client, credentials hidup supaya
	// cookie sid ikut terkirim.
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db, store)
	dashboardCtrl := controllers.NewDashboardController(db)
	bookingCtrl := controllers.NewBookingController(db)
	approvalCtrl := controllers.NewApprovalController(db)
	cancelCtrl := controllers.NewCancellationController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	// Rate limiter ketat untuk login/register
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.SessionMiddleware(db, store))
	{
		auth.POST("/auth/logout", authCtrl.Logout)
		auth.GET("/dashboard", dashboardCtrl.Dashboard)

		// FACILITY + BOOKING
		auth.GET("/facility/bookings/gd", middlewares.RequireGroupDirector(), bookingCtrl.ListGD)
		auth.GET("/facility/bookings/fm", middlewares.RequireFacilityManager(), bookingCtrl.ListFM)
		auth.GET("/facility/:slug", bookingCtrl.GetFacility)
		auth.POST("/facility/:slug", bookingCtrl.CreateBooking)

		// APPROVALS (GD / FM)
		gd := auth.Group("/employee/approvals/gd", middlewares.RequireGroupDirector())
		{
			gd.GET("", approvalCtrl.ListGD)
			gd.POST("", approvalCtrl.DecideGD)
		}
		fm := auth.Group("/employee/approvals/fm", middlewares.RequireFacilityManager())
		{
			fm.GET("", approvalCtrl.ListFM)
			fm.POST("", approvalCtrl.DecideFM)
		}

		// CANCELLATIONS
		auth.POST("/bookings/cancel", cancelCtrl.Request)
		cancelGD := auth.Group("/bookings/cancel/gd", middlewares.RequireGroupDirector())
		{
			cancelGD.GET("", cancelCtrl.ListGD)
			cancelGD.POST("", cancelCtrl.DecideGD)
		}
		cancelFM := auth.Group("/bookings/cancel/fm", middlewares.RequireFacilityManager())
		{
			cancelFM.GET("", cancelCtrl.ListFM)
			cancelFM.POST("", cancelCtrl.DecideFM)
		}
		auth.POST("/bookings/cancel/facility", middlewares.RequireFacilityManager(), cancelCtrl.ForceCancel)

		// ADMIN
		admin := auth.Group("/admin", middlewares.RequireAdmin())
		{
			admin.GET("/bookings", adminCtrl.GetAllBookings)
			admin.POST("/approval", approvalCtrl.DecideAdmin)
			admin.GET("/facility", adminCtrl.ListFacilities)
			admin.POST("/facility", adminCtrl.DeleteFacility)
			admin.POST("/facility/add", adminCtrl.CreateFacility)
			admin.PUT("/facility", adminCtrl.UpdateFacility)
		}
	}

	return r
}
