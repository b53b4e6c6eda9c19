package handlers

import (
	"net/http"
	"strings"

	"asdcare/middleware"
	"asdcare/models"

	"github.com/gin-gonic/gin"
)

func (h *HandlerBundle) ListSlots(c *gin.Context) {
	slots, err := h.Slots.ListSlots(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, "list slots", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *HandlerBundle) CreateSlot(c *gin.Context) {
	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	slot, err := h.Slots.CreateSlot(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, "create slot", err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *HandlerBundle) DeleteSlot(c *gin.Context) {
	if err := h.Slots.DeleteSlot(c.Request.Context(), middleware.UserID(c), c.Param("slotId")); err != nil {
		h.respondError(c, "delete slot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// SlotAvailability handles GET /api/therapist/slots/available. therapistId
// defaults to the caller.
func (h *HandlerBundle) SlotAvailability(c *gin.Context) {
	therapistID := strings.TrimSpace(c.Query("therapistId"))
	if therapistID == "" {
		therapistID = middleware.UserID(c)
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	avail, err := h.Slots.Availability(c.Request.Context(), therapistID, date)
	if err != nil {
		h.respondError(c, "availability", err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

func (h *HandlerBundle) ListTherapistAppointments(c *gin.Context) {
	appts, err := h.Appointments.ListForTherapist(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, "list appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *HandlerBundle) TodayAppointments(c *gin.Context) {
	appts, err := h.Appointments.ListTodayForTherapist(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, "list today's appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *HandlerBundle) ConfirmAppointment(c *gin.Context) {
	view, err := h.Appointments.Confirm(c.Request.Context(), middleware.UserID(c), c.Param("appointmentId"))
	if err != nil {
		h.respondError(c, "confirm appointment", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HandlerBundle) CompleteAppointment(c *gin.Context) {
	view, err := h.Appointments.Complete(c.Request.Context(), middleware.UserID(c), c.Param("appointmentId"))
	if err != nil {
		h.respondError(c, "complete appointment", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HandlerBundle) RescheduleAppointment(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.Appointments.Reschedule(c.Request.Context(), middleware.UserID(c), c.Param("appointmentId"), req)
	if err != nil {
		h.respondError(c, "reschedule appointment", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListClients returns the children assigned to the caller.
func (h *HandlerBundle) ListClients(c *gin.Context) {
	clients, err := h.Users.ListClients(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, "list clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
