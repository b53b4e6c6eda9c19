// Package prediction scores screening surveys through the external
// prediction service.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"

	"go.uber.org/zap"
)

// SurveyQuestions is the feature order the survey model was trained on.
var SurveyQuestions = []string{
	"PoorEyeContact",
	"DelayedSpeech",
	"DifficultyPeerInteraction",
	"RepetitiveMovements",
	"Sensitivity",
	"PrefersRoutine",
}

type Predictor interface {
	PredictSurvey(ctx context.Context, features models.SurveyFeatures) (*models.Prediction, error)
}

type surveyRequest struct {
	Answers []float64 `json:"answers"`
	Age     int       `json:"age"`
	Gender  string    `json:"gender,omitempty"`
}

type surveyResponse struct {
	Classification    json.RawMessage `json:"classification_result"`
	Probability       float64         `json:"probability"`
	ImportantFeatures []string        `json:"important_features"`
	Error             string          `json:"error"`
}

type HTTPPredictor struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

func NewHTTPPredictor(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPPredictor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPPredictor{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// PredictSurvey posts the answers in model order; missing answers count as 0.
func (p *HTTPPredictor) PredictSurvey(ctx context.Context, features models.SurveyFeatures) (*models.Prediction, error) {
	body := surveyRequest{Age: features.Age, Gender: features.Gender, Answers: make([]float64, len(SurveyQuestions))}
	for i, q := range SurveyQuestions {
		body.Answers[i] = features.Answers[q]
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := p.baseURL + "/predict/survey"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("prediction request failed", zap.String("url", url), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindExternal, err, "prediction service unavailable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, err, "prediction service unavailable")
	}

	var out surveyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Wrap(apperr.KindExternal, err, "prediction service: undecodable response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK || out.Error != "" {
		p.logger.Error("prediction rejected", zap.Int("status", resp.StatusCode), zap.String("error", out.Error))
		return nil, apperr.New(apperr.KindExternal, "prediction service: status %d: %s", resp.StatusCode, out.Error)
	}

	label := classification(out.Classification)
	return &models.Prediction{
		Label:             label,
		Confidence:        out.Probability,
		RiskLevel:         RiskFor(label, out.Probability),
		ImportantFeatures: out.ImportantFeatures,
	}, nil
}

// classification accepts the label as either a JSON string or number.
func classification(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%g", n)
	}
	return strings.TrimSpace(string(raw))
}

// RiskFor maps a classification and its probability to a risk level.
func RiskFor(label string, probability float64) models.RiskLevel {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1", "yes", "asd", "autism", "positive", "autistic":
		if probability >= 0.75 {
			return models.RiskHigh
		}
		return models.RiskMedium
	}
	return models.RiskLow
}
