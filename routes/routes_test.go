package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asdcare/handlers"
	"asdcare/models"
	"asdcare/services/analytics"
	"asdcare/services/apperr"
	"asdcare/services/booking"
	"asdcare/services/scheduling"
	"asdcare/services/user"
	"asdcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Unimplemented methods of the embedded interfaces panic if reached.

type fakeUsers struct {
	user.UserService
	loggedOut   *utils.TokenClaims
	riskStored  models.RiskLevel
	clientsFor  string
	childErr    error
	decisionErr error
}

func (f *fakeUsers) Logout(_ context.Context, claims *utils.TokenClaims) error {
	f.loggedOut = claims
	return nil
}

func (f *fakeUsers) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Password != "secret1" {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	return &models.AuthResponse{Token: "tok", User: models.PublicUser{ID: "par-1", Role: models.RoleParent}}, nil
}

func (f *fakeUsers) ResolveTherapist(_ context.Context, identifier string) (*models.User, error) {
	if identifier != "thr-1" && identifier != "drsmith" {
		return nil, apperr.New(apperr.KindNotFound, "therapist not found")
	}
	return &models.User{ID: "thr-1", Role: models.RoleTherapist}, nil
}

func (f *fakeUsers) ChildOwnedBy(_ context.Context, parentID, childID string) (*models.Child, error) {
	if f.childErr != nil {
		return nil, f.childErr
	}
	return &models.Child{ID: childID, ParentID: parentID, Age: 4, Gender: "male"}, nil
}

func (f *fakeUsers) SetChildRiskLevel(_ context.Context, _ string, level models.RiskLevel) error {
	f.riskStored = level
	return nil
}

func (f *fakeUsers) ListClients(_ context.Context, therapistID string) ([]models.Child, error) {
	f.clientsFor = therapistID
	return []models.Child{}, nil
}

func (f *fakeUsers) ApproveTherapist(_ context.Context, id string) (*models.User, error) {
	if f.decisionErr != nil {
		return nil, f.decisionErr
	}
	return &models.User{ID: id, Role: models.RoleTherapist, Status: models.AccountApproved, IsActive: true}, nil
}

type fakeAppointments struct {
	booking.AppointmentService
	bookErr   error
	verifyErr error
	listedFor string
}

func (f *fakeAppointments) Availability(_ context.Context, therapistID, date string) (*models.Availability, error) {
	return &models.Availability{AvailableSlots: []models.Interval{{Start: "09:00", End: "09:30"}}}, nil
}

func (f *fakeAppointments) Book(_ context.Context, parentID string, req models.BookAppointmentRequest) (*models.AppointmentView, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &models.AppointmentView{Appointment: models.Appointment{ID: "appt-1", ParentID: parentID, Status: models.StatusPending}}, nil
}

func (f *fakeAppointments) VerifyPayment(context.Context, string, models.VerifyPaymentRequest) (*models.AppointmentView, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &models.AppointmentView{Appointment: models.Appointment{ID: "appt-1", Status: models.StatusConfirmed}}, nil
}

func (f *fakeAppointments) ListForTherapist(_ context.Context, therapistID string) ([]models.AppointmentView, error) {
	f.listedFor = therapistID
	return []models.AppointmentView{}, nil
}

type fakeSlots struct {
	scheduling.SlotService
}

// fakeAnalytics records the scope each call arrived with.
type fakeAnalytics struct {
	analytics.Service
	scopes []analytics.Scope
	months int
}

func (f *fakeAnalytics) Demographics(_ context.Context, scope analytics.Scope) (*models.Demographics, error) {
	f.scopes = append(f.scopes, scope)
	return &models.Demographics{TotalParticipants: 3}, nil
}

func (f *fakeAnalytics) Trends(_ context.Context, scope analytics.Scope, months int) (*models.Trends, error) {
	f.scopes = append(f.scopes, scope)
	f.months = months
	return &models.Trends{Months: []models.MonthlyCount{}}, nil
}

func (f *fakeAnalytics) Children(_ context.Context, scope analytics.Scope) (*models.ChildrenListing, error) {
	f.scopes = append(f.scopes, scope)
	return &models.ChildrenListing{Anonymized: scope.Anonymized}, nil
}

func (f *fakeAnalytics) AdminStats(context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{PendingCount: 1, UserCount: 5}, nil
}

type fakePredictor struct{}

func (fakePredictor) PredictSurvey(_ context.Context, f models.SurveyFeatures) (*models.Prediction, error) {
	return &models.Prediction{Label: "1", Confidence: 0.9, RiskLevel: models.RiskHigh}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("routes-test-secret")
}

type harness struct {
	router *gin.Engine
	users  *fakeUsers
	appts  *fakeAppointments
	stats  *fakeAnalytics
}

func newHarness() *harness {
	users := &fakeUsers{}
	appts := &fakeAppointments{}
	stats := &fakeAnalytics{}
	hb := handlers.NewHandlerBundle(users, appts, fakeSlots{}, fakePredictor{}, stats, zap.NewNop())
	r := gin.New()
	RegisterRoutes(r, hb, Options{AllowOrigins: "*", MaxRequestsPerMin: 1000})
	return &harness{router: r, users: users, appts: appts, stats: stats}
}

func (h *harness) do(t *testing.T, method, path string, role models.Role, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := utils.GenerateToken(string(role)+"-1", "x@example.com", string(role), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := newHarness()
	w := h.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthAndRoles(t *testing.T) {
	h := newHarness()

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/parent/children", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/therapist/slots", models.RoleParent, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/admin/therapist-requests", models.RoleTherapist, nil).Code)

	w := h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@b.c", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@b.c", "password": "secret1"}).Code)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/api/auth/logout", models.RoleParent, nil).Code)
	require.NotNil(t, h.users.loggedOut)
	assert.Equal(t, "parent-1", h.users.loggedOut.Subject)
}

func TestParentAvailableSlots(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/api/parent/available-slots?therapistId=drsmith&date=2025-03-12", models.RoleParent, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"availableSlots":[{"start":"09:00","end":"09:30"}]}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/parent/available-slots?date=2025-03-12", models.RoleParent, nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/parent/available-slots?therapistId=nobody&date=2025-03-12", models.RoleParent, nil).Code)
}

func TestBookingErrorsMapToStatus(t *testing.T) {
	h := newHarness()
	req := gin.H{"childId": "c1", "therapistId": "thr-1", "appointmentDate": "2025-03-12", "appointmentTime": "09:00"}

	assert.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/parent/appointments", models.RoleParent, req).Code)

	h.appts.bookErr = apperr.New(apperr.KindConflict, "interval already booked")
	w := h.do(t, http.MethodPost, "/api/parent/appointments", models.RoleParent, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "interval already booked")

	h.appts.bookErr = apperr.New(apperr.KindAccessDenied, "child not found or not yours")
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/api/parent/appointments", models.RoleParent, req).Code)

	h.appts.verifyErr = apperr.New(apperr.KindSignatureMismatch, "payment signature mismatch")
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/api/parent/verify-payment", models.RoleParent, gin.H{"appointmentId": "appt-1"}).Code)

	h.appts.verifyErr = nil
	w = h.do(t, http.MethodPost, "/api/parent/verify-payment", models.RoleParent, gin.H{"appointmentId": "appt-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestPredictSurvey(t *testing.T) {
	h := newHarness()
	body := gin.H{"childId": "c1", "answers": gin.H{"PoorEyeContact": 1}}

	w := h.do(t, http.MethodPost, "/api/parent/predict-survey", models.RoleParent, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"riskLevel":"High"`)
	assert.Equal(t, models.RiskHigh, h.users.riskStored)

	h.users.childErr = apperr.New(apperr.KindAccessDenied, "child not found or not yours")
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/api/parent/predict-survey", models.RoleParent, body).Code)
}

func TestTherapistReadsAreScoped(t *testing.T) {
	h := newHarness()

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/therapist/appointments", models.RoleTherapist, nil).Code)
	assert.Equal(t, "therapist-1", h.appts.listedFor)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/therapist/clients", models.RoleTherapist, nil).Code)
	assert.Equal(t, "therapist-1", h.users.clientsFor)
}

func TestAdminDecisions(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodPut, "/api/admin/therapist-requests/thr-9/approve", models.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"thr-9"`)

	h.users.decisionErr = apperr.New(apperr.KindInvalidTransition, "therapist is not pending")
	assert.Equal(t, http.StatusConflict, h.do(t, http.MethodPut, "/api/admin/therapist-requests/thr-9/approve", models.RoleAdmin, nil).Code)
}

func TestAnalyticsScopedByRole(t *testing.T) {
	h := newHarness()

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/analytics/demographics", models.RoleParent, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/analytics/demographics", models.RoleTeacher, nil).Code)
	assert.Empty(t, h.stats.scopes)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/analytics/demographics", models.RoleAdmin, nil).Code)
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/analytics/demographics", models.RoleResearcher, nil).Code)
	w := h.do(t, http.MethodGet, "/api/analytics/demographics", models.RoleTherapist, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalParticipants":3`)

	assert.Equal(t, []analytics.Scope{
		{},
		{Anonymized: true},
		{Filter: map[string]string{"therapistId": "therapist-1"}, Anonymized: true},
	}, h.stats.scopes)
}

func TestAnalyticsTrendsMonths(t *testing.T) {
	h := newHarness()

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/analytics/trends?months=12", models.RoleResearcher, nil).Code)
	assert.Equal(t, 12, h.stats.months)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/analytics/trends?months=zero", models.RoleResearcher, nil).Code)
}

func TestScopedChildren(t *testing.T) {
	h := newHarness()

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/children", models.RoleTeacher, nil).Code)

	w := h.do(t, http.MethodGet, "/api/children", models.RoleResearcher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymized":true`)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/children", models.RoleParent, nil).Code)
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/admin/children-data", models.RoleAdmin, nil).Code)
	assert.Equal(t, []analytics.Scope{
		{Anonymized: true},
		{Filter: map[string]string{"parentId": "parent-1"}},
		{},
	}, h.stats.scopes)

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/admin/children-data", models.RoleResearcher, nil).Code)
}

func TestAdminStats(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/api/admin/stats", models.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pendingCount":1,"userCount":5,"childCount":0,"appointmentsThisMonth":0}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/admin/stats", models.RoleResearcher, nil).Code)
}
