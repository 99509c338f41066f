package routes

import (
	"time"

	"bookflow/config"
	"bookflow/handlers"
	"bookflow/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the whole gateway surface.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.AppBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterProRoutes(r, hb)
}

// RegisterSessionRoutes registers the per-session endpoints that drive the
// state machine.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/sessions", hb.CreateSessionHandler)

	api := r.Group("/api/sessions/:id")
	api.Use(middleware.SessionAuthMiddleware())
	{
		api.GET("", hb.GetSessionHandler)
		api.POST("/go", hb.GoHandler)
		api.POST("/update", hb.UpdateHandler)
		api.POST("/role", hb.SelectRoleHandler)
		api.POST("/toasts/:toastId/dismiss", hb.DismissToastHandler)
		api.POST("/notifs-open", hb.SetNotifsOpenHandler)
		api.GET("/prefs/sidebar", hb.GetSidebarPrefHandler)
		api.PUT("/prefs/sidebar", hb.SetSidebarPrefHandler)

		// Admin: the password login is open, moderation sits behind the
		// admin gate.
		admin := api.Group("/admin")
		{
			admin.POST("/login", hb.AdminLoginHandler)

			moderation := admin.Group("")
			moderation.Use(middleware.RequireAdmin(hb.AdminLookup))
			{
				moderation.GET("/overview", hb.AdminOverviewHandler)
				moderation.POST("/pros/:proId/suspend", hb.SuspendProHandler)
			}
		}

		// OTP: dispatch sits behind the rate limiter so a single caller
		// cannot hammer the SMS gateway.
		otp := api.Group("/otp")
		{
			otp.GET("", hb.OTPStateHandler)
			otp.POST("/send", middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin), hb.OTPSendHandler)
			otp.POST("/resend", middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin), hb.OTPResendHandler)
			otp.POST("/digit", hb.OTPDigitHandler)
			otp.POST("/backspace", hb.OTPBackspaceHandler)
		}

		// Booking wizard and live tracking require a chosen role.
		gated := api.Group("")
		gated.Use(middleware.RequireRole(hb.RoleLookup))
		{
			gated.POST("/booking/start", hb.StartBookingHandler)
			gated.GET("/booking", hb.WizardStateHandler)
			gated.GET("/booking/services", hb.ServicesHandler)
			gated.POST("/booking/service", hb.SelectServiceHandler)
			gated.GET("/booking/slots", hb.SlotsHandler)
			gated.POST("/booking/slot", hb.SelectSlotHandler)
			gated.POST("/booking/contact", hb.ContactHandler)
			gated.POST("/booking/next", hb.NextHandler)
			gated.POST("/booking/back", hb.BackHandler)
			gated.GET("/booking/tracker", hb.TrackerHandler)
			gated.POST("/booking/cancel", hb.CancelBookingHandler)
			gated.POST("/booking/:bookingId/accept", hb.AcceptBookingHandler)
			gated.POST("/booking/:bookingId/decline", hb.DeclineBookingHandler)

			gated.GET("/notifications", hb.FetchNotificationsHandler)
			gated.POST("/notifications/:notificationId/read", hb.MarkReadHandler)
			gated.POST("/notifications/read-all", hb.MarkAllReadHandler)
		}
	}
}

// RegisterProRoutes registers the provider catalog and wallet endpoints.
func RegisterProRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pros")
	{
		api.GET("", hb.ListProsHandler)
		api.GET("/:proId", hb.GetProHandler)
		api.GET("/:proId/wallet", hb.WalletHandler)
	}
	r.GET("/api/subscription/url", hb.SubscriptionURLHandler)
}
