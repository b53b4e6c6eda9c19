package models

// SurveyRequest is the parent's screening questionnaire for one child.
// Answers are keyed by behaviour name, e.g. "PoorEyeContact".
type SurveyRequest struct {
	ChildID string             `json:"childId" binding:"required"`
	Answers map[string]float64 `json:"answers" binding:"required"`
}

// SurveyFeatures is what the prediction service scores.
type SurveyFeatures struct {
	Age     int                `json:"age"`
	Gender  string             `json:"gender"`
	Answers map[string]float64 `json:"answers"`
}

// Prediction is the prediction service's verdict.
type Prediction struct {
	Label             string    `json:"prediction"`
	Confidence        float64   `json:"confidence"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	ImportantFeatures []string  `json:"importantFeatures,omitempty"`
}
