package routes

import (
	"net/http"
	"strings"
	"time"

	"asdcare/handlers"
	"asdcare/middleware"
	"asdcare/models"
	"asdcare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the router settings that come from configuration.
type Options struct {
	AllowOrigins      string // comma separated, "*" for any
	MaxRequestsPerMin int
	Revocations       middleware.RevocationChecker
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterAuthRoutes registers signup, login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Register)
		api.POST("/login", hb.Login)

		api.POST("/logout", auth, hb.Logout)
		api.GET("/me", auth, hb.Me)
	}
}

// RegisterParentRoutes registers the parent-facing endpoints.
func RegisterParentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/parent")
	api.Use(auth, middleware.RequireRole(models.RoleParent))
	{
		api.GET("/therapists", hb.ListTherapists)
		api.GET("/available-slots", hb.AvailableSlots)

		api.GET("/children", middleware.ResourceScope(middleware.ResourceChildren), hb.ListChildren)
		api.POST("/children", hb.AddChild)
		api.DELETE("/children/:childId", hb.DeleteChild)

		api.GET("/appointments", middleware.ResourceScope(middleware.ResourceAppointments), hb.ListParentAppointments)
		api.POST("/appointments", hb.BookAppointment)
		api.PUT("/appointments/:appointmentId", hb.UpdateParentAppointment)
		api.DELETE("/appointments/:appointmentId", hb.CancelAppointment)

		api.POST("/create-payment-order", hb.CreatePaymentOrder)
		api.POST("/verify-payment", hb.VerifyPayment)

		api.POST("/predict-survey", hb.PredictSurvey)
	}
}

// RegisterTherapistRoutes registers slot management and the therapist's
// appointment workflow.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/therapist")
	api.Use(auth, middleware.RequireRole(models.RoleTherapist))
	{
		api.GET("/slots", hb.ListSlots)
		api.POST("/slots", hb.CreateSlot)
		api.GET("/slots/available", hb.SlotAvailability)
		api.DELETE("/slots/:slotId", hb.DeleteSlot)

		scoped := api.Group("", middleware.ResourceScope(middleware.ResourceAppointments))
		scoped.GET("/appointments", hb.ListTherapistAppointments)
		scoped.GET("/appointments/today", hb.TodayAppointments)
		api.PUT("/appointments/:appointmentId/confirm", hb.ConfirmAppointment)
		api.PUT("/appointments/:appointmentId/reschedule", hb.RescheduleAppointment)
		api.PUT("/appointments/:appointmentId/complete", hb.CompleteAppointment)

		api.GET("/clients", middleware.ResourceScope(middleware.ResourceChildren), hb.ListClients)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.GET("/therapist-requests", hb.TherapistRequests)
		adminGroup.PUT("/therapist-requests/:userId/approve", hb.ApproveTherapist)
		adminGroup.PUT("/therapist-requests/:userId/reject", hb.RejectTherapist)

		adminGroup.GET("/stats", hb.AdminStats)
		adminGroup.GET("/children-data", middleware.ResourceScope(middleware.ResourceChildren), hb.ScopedChildren)
	}
}

// RegisterAnalyticsRoutes registers the aggregate views. Any signed-in role
// may call them; the analytics scope table decides who is refused and how
// the rest are narrowed.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/analytics")
	api.Use(auth, middleware.ResourceScope(middleware.ResourceAnalytics))
	{
		api.GET("/demographics", hb.Demographics)
		api.GET("/screening-results", hb.ScreeningResults)
		api.GET("/trends", hb.Trends)
	}

	r.GET("/api/children", auth, middleware.ResourceScope(middleware.ResourceChildren), hb.ScopedChildren)
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	var list []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	if len(list) == 0 || (len(list) == 1 && list[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = list
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(
		middleware.RequestLogger(hb.Logger),
		utils.ErrorHandler(),
		cors.New(corsConfig(opts.AllowOrigins)),
		middleware.RateLimitMiddleware(opts.MaxRequestsPerMin),
	)

	auth := middleware.JWTAuthMiddleware(opts.Revocations)

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb, auth)
	RegisterParentRoutes(r, hb, auth)
	RegisterTherapistRoutes(r, hb, auth)
	RegisterAdminRoutes(r, hb, auth)
	RegisterAnalyticsRoutes(r, hb, auth)
}
