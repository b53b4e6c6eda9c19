package handlers

import (
	"net/http"
	"strings"

	"asdcare/middleware"
	"asdcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ownerID is the id the caller's reads are scoped to.
func ownerID(c *gin.Context) string {
	if s, ok := middleware.ScopeOf(c); ok && s.Field != "" {
		return s.Value
	}
	return middleware.UserID(c)
}

// ListTherapists handles GET /api/parent/therapists.
func (h *HandlerBundle) ListTherapists(c *gin.Context) {
	therapists, err := h.Users.ListTherapists(c.Request.Context())
	if err != nil {
		h.respondError(c, "list therapists", err)
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// AvailableSlots handles GET /api/parent/available-slots. The therapist may
// be named by id, email or username.
func (h *HandlerBundle) AvailableSlots(c *gin.Context) {
	identifier := strings.TrimSpace(c.Query("therapistId"))
	date := strings.TrimSpace(c.Query("date"))
	if identifier == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "therapistId and date are required"})
		return
	}
	therapist, err := h.Users.ResolveTherapist(c.Request.Context(), identifier)
	if err != nil {
		h.respondError(c, "resolve therapist", err)
		return
	}
	avail, err := h.Appointments.Availability(c.Request.Context(), therapist.ID, date)
	if err != nil {
		h.respondError(c, "availability", err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *HandlerBundle) ListChildren(c *gin.Context) {
	children, err := h.Users.ListChildren(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, "list children", err)
		return
	}
	c.JSON(http.StatusOK, children)
}

func (h *HandlerBundle) AddChild(c *gin.Context) {
	var req models.AddChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	child, err := h.Users.AddChild(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, "add child", err)
		return
	}
	c.JSON(http.StatusCreated, child)
}

func (h *HandlerBundle) DeleteChild(c *gin.Context) {
	if err := h.Users.DeleteChild(c.Request.Context(), middleware.UserID(c), c.Param("childId")); err != nil {
		h.respondError(c, "delete child", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Child removed"})
}

func (h *HandlerBundle) ListParentAppointments(c *gin.Context) {
	appts, err := h.Appointments.ListForParent(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, "list appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// BookAppointment handles POST /api/parent/appointments.
func (h *HandlerBundle) BookAppointment(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Appointments.Book(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, "book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *HandlerBundle) UpdateParentAppointment(c *gin.Context) {
	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Appointments.UpdateByParent(c.Request.Context(), middleware.UserID(c), c.Param("appointmentId"), req)
	if err != nil {
		h.respondError(c, "update appointment", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HandlerBundle) CancelAppointment(c *gin.Context) {
	if err := h.Appointments.Cancel(c.Request.Context(), middleware.UserID(c), c.Param("appointmentId")); err != nil {
		h.respondError(c, "cancel appointment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CreatePaymentOrder opens a gateway order for a new appointment.
func (h *HandlerBundle) CreatePaymentOrder(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.Appointments.CreatePaymentOrder(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, "create payment order", err)
		return
	}
	h.getLogger(c).Info("payment order created",
		zap.String("appointmentId", order.AppointmentID), zap.String("orderId", order.OrderID))
	c.JSON(http.StatusOK, order)
}

// VerifyPayment checks the gateway signature and confirms the appointment.
func (h *HandlerBundle) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Appointments.VerifyPayment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, "verify payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "appointment": view})
}
