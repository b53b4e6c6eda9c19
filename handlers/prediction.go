package handlers

import (
	"net/http"

	"asdcare/middleware"
	"asdcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PredictSurvey scores a screening questionnaire for one of the caller's
// children and stores the resulting risk level on the child.
func (h *HandlerBundle) PredictSurvey(c *gin.Context) {
	var req models.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	child, err := h.Users.ChildOwnedBy(ctx, middleware.UserID(c), req.ChildID)
	if err != nil {
		h.respondError(c, "predict survey", err)
		return
	}

	prediction, err := h.Predictor.PredictSurvey(ctx, models.SurveyFeatures{
		Age:     child.Age,
		Gender:  child.Gender,
		Answers: req.Answers,
	})
	if err != nil {
		h.respondError(c, "predict survey", err)
		return
	}

	if err := h.Users.SetChildRiskLevel(ctx, child.ID, prediction.RiskLevel); err != nil {
		// The prediction is still useful to the caller.
		h.getLogger(c).Warn("storing risk level failed", zap.String("childId", child.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, prediction)
}
