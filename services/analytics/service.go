// Package analytics computes the aggregate views served to admins,
// researchers and therapists. Every read takes a Scope so the same query
// serves each role with its ownership filter and anonymization applied.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asdcare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

// childRefSpace namespaces the pseudonyms handed out for anonymized children.
var childRefSpace = uuid.MustParse("6f1c8d2e-3b4a-5c6d-8e7f-9a0b1c2d3e4f")

// Scope narrows a read. Filter holds field equality matches; nil matches all.
type Scope struct {
	Filter     map[string]string
	Anonymized bool
}

type ChildStore interface {
	FindChildren(ctx context.Context, filter map[string]string) ([]models.Child, error)
	CountChildren(ctx context.Context, filter map[string]string) (int64, error)
}

type UserCounter interface {
	CountByStatus(ctx context.Context, status models.AccountStatus) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type AppointmentStats interface {
	MonthlyCounts(ctx context.Context, filter map[string]string, since time.Time) ([]models.MonthlyCount, error)
}

// Service is what the HTTP layer calls.
type Service interface {
	Demographics(ctx context.Context, scope Scope) (*models.Demographics, error)
	Screening(ctx context.Context, scope Scope) (*models.ScreeningSummary, error)
	Trends(ctx context.Context, scope Scope, months int) (*models.Trends, error)
	Children(ctx context.Context, scope Scope) (*models.ChildrenListing, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

type DefaultService struct {
	children     ChildStore
	users        UserCounter
	appointments AppointmentStats
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(children ChildStore, users UserCounter, appointments AppointmentStats, logger *zap.Logger) *DefaultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultService{
		children:     children,
		users:        users,
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

// SetClock replaces the time source.
func (s *DefaultService) SetClock(now func() time.Time) { s.now = now }

// AgeGroup buckets an age the way the dashboards chart it.
func AgeGroup(age int) string {
	switch {
	case age <= 3:
		return "0-3"
	case age <= 6:
		return "4-6"
	case age <= 10:
		return "7-10"
	case age <= 15:
		return "11-15"
	default:
		return "16+"
	}
}

func genderKey(g string) string {
	switch g = strings.ToLower(strings.TrimSpace(g)); g {
	case "male", "female":
		return g
	default:
		return "other"
	}
}

func (s *DefaultService) Demographics(ctx context.Context, scope Scope) (*models.Demographics, error) {
	children, err := s.children.FindChildren(ctx, scope.Filter)
	if err != nil {
		return nil, err
	}

	d := &models.Demographics{
		TotalParticipants:  len(children),
		AgeDistribution:    map[string]int{"0-3": 0, "4-6": 0, "7-10": 0, "11-15": 0, "16+": 0},
		GenderDistribution: map[string]int{"male": 0, "female": 0, "other": 0},
	}
	if !scope.Anonymized {
		d.TherapistCaseload = map[string]int{}
	}
	for _, c := range children {
		d.AgeDistribution[AgeGroup(c.Age)]++
		d.GenderDistribution[genderKey(c.Gender)]++
		if d.TherapistCaseload != nil && c.TherapistID != "" {
			d.TherapistCaseload[c.TherapistID]++
		}
	}
	return d, nil
}

func (s *DefaultService) Screening(ctx context.Context, scope Scope) (*models.ScreeningSummary, error) {
	children, err := s.children.FindChildren(ctx, scope.Filter)
	if err != nil {
		return nil, err
	}

	sum := &models.ScreeningSummary{
		TotalChildren: len(children),
		ByRiskLevel:   map[models.RiskLevel]int{models.RiskLow: 0, models.RiskMedium: 0, models.RiskHigh: 0},
		ByAgeGroup:    map[string]map[models.RiskLevel]int{},
	}
	for _, c := range children {
		if c.RiskLevel == "" {
			sum.Unscreened++
			continue
		}
		sum.Screened++
		sum.ByRiskLevel[c.RiskLevel]++
		group := AgeGroup(c.Age)
		if sum.ByAgeGroup[group] == nil {
			sum.ByAgeGroup[group] = map[models.RiskLevel]int{}
		}
		sum.ByAgeGroup[group][c.RiskLevel]++
	}
	if sum.Screened > 0 {
		sum.HighRiskRate = float64(sum.ByRiskLevel[models.RiskHigh]) / float64(sum.Screened)
	}
	return sum, nil
}

// Trends returns one entry per calendar month for the last months months,
// ending with the current one. Missing months are reported as zero.
func (s *DefaultService) Trends(ctx context.Context, scope Scope, months int) (*models.Trends, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	counts, err := s.appointments.MonthlyCounts(ctx, scope.Filter, first)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]models.MonthlyCount, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c
	}

	out := &models.Trends{Months: make([]models.MonthlyCount, 0, months)}
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		c, ok := byMonth[key]
		if !ok {
			c = models.MonthlyCount{Month: key}
		}
		out.Months = append(out.Months, c)
	}
	return out, nil
}

// Children lists the children in scope, pseudonymized when the scope asks
// for it.
func (s *DefaultService) Children(ctx context.Context, scope Scope) (*models.ChildrenListing, error) {
	children, err := s.children.FindChildren(ctx, scope.Filter)
	if err != nil {
		return nil, err
	}
	if !scope.Anonymized {
		return &models.ChildrenListing{Children: children}, nil
	}

	records := make([]models.AnonymizedChild, 0, len(children))
	for _, c := range children {
		records = append(records, models.AnonymizedChild{
			Ref:       ChildRef(c.ID),
			Age:       c.Age,
			Gender:    genderKey(c.Gender),
			RiskLevel: c.RiskLevel,
		})
	}
	return &models.ChildrenListing{Anonymized: true, Records: records}, nil
}

// ChildRef is the stable pseudonym of a child ID.
func ChildRef(childID string) string {
	return uuid.NewSHA1(childRefSpace, []byte(childID)).String()
}

func (s *DefaultService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	pending, err := s.users.CountByStatus(ctx, models.AccountPending)
	if err != nil {
		return nil, fmt.Errorf("count pending users: %w", err)
	}
	active, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}
	children, err := s.children.CountChildren(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count children: %w", err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	counts, err := s.appointments.MonthlyCounts(ctx, nil, monthStart)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	stats := &models.AdminStats{PendingCount: pending, UserCount: active, ChildCount: children}
	for _, c := range counts {
		if c.Month == monthStart.Format("2006-01") {
			stats.AppointmentsThisMonth = c.Total
		}
	}

	s.logger.Debug("admin stats computed",
		zap.Int64("pending", pending),
		zap.Int64("active", active))
	return stats, nil
}
