package handlers

import (
	"net/http"

	"asdcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TherapistRequests lists therapist accounts awaiting approval.
func (h *HandlerBundle) TherapistRequests(c *gin.Context) {
	pending, err := h.Users.PendingTherapists(c.Request.Context())
	if err != nil {
		h.respondError(c, "list therapist requests", err)
		return
	}
	out := make([]models.PublicUser, 0, len(pending))
	for i := range pending {
		out = append(out, pending[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

func (h *HandlerBundle) ApproveTherapist(c *gin.Context) {
	u, err := h.Users.ApproveTherapist(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, "approve therapist", err)
		return
	}
	h.getLogger(c).Info("therapist approved", zap.String("userId", u.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Therapist approved", "user": u.Public()})
}

func (h *HandlerBundle) RejectTherapist(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	// The reason is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&body)

	u, err := h.Users.RejectTherapist(c.Request.Context(), c.Param("userId"), body.Reason)
	if err != nil {
		h.respondError(c, "reject therapist", err)
		return
	}
	h.getLogger(c).Info("therapist rejected", zap.String("userId", u.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Therapist rejected", "user": u.Public()})
}
