package routes

import (
	"net/http"
	"time"

	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Users         *handlers.UserHandler
	Catalog       *handlers.CatalogHandler
	Subscriptions *handlers.SubscriptionHandler
	Bookings      *handlers.BookingHandler
	Slots         *handlers.TimeSlotHandler
	Rooms         *handlers.RoomHandler
	Admin         *handlers.AdminHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)
		api.POST("/reset-password/request", hb.Users.RequestPasswordReset)
		api.POST("/reset-password", hb.Users.ResetPassword)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/logout", hb.Users.Logout)
		api.POST("/verify-otp", hb.Users.VerifyEmail)
		api.POST("/resend-verification", hb.Users.ResendVerification)
		api.GET("/profile", hb.Users.GetProfile)
		api.PUT("/fcm-token", hb.Users.UpdateFCMToken)
	}
}

// RegisterCatalogRoutes registers the program catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/programs")
	{
		api.GET("", hb.Catalog.ListPrograms)
		api.GET("/:id", hb.Catalog.GetProgram)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(), middleware.JWTAuthAdminMiddleware())
		admin.POST("", hb.Catalog.CreateProgram)
		admin.PUT("/:id", hb.Catalog.UpdateProgram)
		admin.PATCH("/:id/active", hb.Catalog.SetProgramActive)
	}
}

// RegisterSubscriptionRoutes registers the subscription lifecycle endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Subscriptions.CreateSubscription)
		api.GET("", hb.Subscriptions.ListMine)
		api.GET("/:id", hb.Subscriptions.GetSubscription)
		api.POST("/:id/complete-setup", hb.Subscriptions.CompleteSetup)
		api.POST("/:id/pause", hb.Subscriptions.Pause)
		api.POST("/:id/cancel", hb.Subscriptions.Cancel)
	}
}

// RegisterBookingRoutes registers appointment request and review endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Bookings.RequestBooking)
		api.GET("/:id", hb.Bookings.GetBooking)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("", hb.Bookings.ListBookings)
		admin.POST("/:id/confirm", hb.Bookings.ConfirmBooking)
		admin.POST("/:id/reject", hb.Bookings.RejectBooking)
		admin.POST("/:id/cancel", hb.Bookings.CancelBooking)
		admin.POST("/:id/complete", hb.Bookings.CompleteBooking)
	}
}

// RegisterSlotRoutes registers the appointment calendar endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Slots.ListAvailable)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("", hb.Slots.CreateSlots)
		admin.DELETE("/:id", hb.Slots.DeleteSlot)
	}
}

// RegisterRoomRoutes registers consultation room endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Rooms.ListMine)
		api.GET("/:id", hb.Rooms.GetRoom)
		api.GET("/:id/messages", hb.Rooms.ListMessages)
		api.POST("/:id/messages", hb.Rooms.SendMessage)
		api.POST("/:id/read", hb.Rooms.MarkRead)
		api.GET("/:id/unread", hb.Rooms.UnreadCount)
		api.GET("/:id/stream", hb.Rooms.StreamMessages)
	}
}

// RegisterAdminRoutes registers the administrator dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthUserMiddleware(), middleware.JWTAuthAdminMiddleware())
		api.GET("/status", hb.Admin.SystemStatus)
		api.GET("/clients", hb.Admin.ListClients)
		api.GET("/practitioners", hb.Admin.ListPractitioners)
		api.GET("/subscriptions", hb.Admin.ListSubscriptions)
		api.POST("/subscriptions/:id/practitioner", hb.Admin.AssignPractitioner)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(utils.ErrorHandler())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
