package models

// Demographics aggregates the children visible to the caller.
type Demographics struct {
	TotalParticipants  int            `json:"totalParticipants"`
	AgeDistribution    map[string]int `json:"ageDistribution"`
	GenderDistribution map[string]int `json:"genderDistribution"`
	// TherapistCaseload is keyed by therapist ID and left out of anonymized views.
	TherapistCaseload map[string]int `json:"therapistCaseload,omitempty"`
}

// ScreeningSummary reports the stored risk levels of screened children.
type ScreeningSummary struct {
	TotalChildren int                          `json:"totalChildren"`
	Screened      int                          `json:"screened"`
	Unscreened    int                          `json:"unscreened"`
	ByRiskLevel   map[RiskLevel]int            `json:"byRiskLevel"`
	ByAgeGroup    map[string]map[RiskLevel]int `json:"byAgeGroup"`
	HighRiskRate  float64                      `json:"highRiskRate"`
}

// MonthlyCount is the number of appointments dated in one calendar month.
type MonthlyCount struct {
	Month     string `json:"month"` // YYYY-MM
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Cancelled int64  `json:"cancelled"`
}

type Trends struct {
	Months []MonthlyCount `json:"months"`
}

// AnonymizedChild is a child record with identifying fields replaced by a
// stable pseudonym.
type AnonymizedChild struct {
	Ref       string    `json:"ref"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	RiskLevel RiskLevel `json:"riskLevel,omitempty"`
}

// ChildrenListing holds either full records or anonymized ones.
type ChildrenListing struct {
	Anonymized bool              `json:"anonymized"`
	Children   []Child           `json:"children,omitempty"`
	Records    []AnonymizedChild `json:"records,omitempty"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	PendingCount          int64 `json:"pendingCount"`
	UserCount             int64 `json:"userCount"`
	ChildCount            int64 `json:"childCount"`
	AppointmentsThisMonth int64 `json:"appointmentsThisMonth"`
}
