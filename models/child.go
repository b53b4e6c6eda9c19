package models

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Child is a patient record owned by a parent account.
type Child struct {
	ID             string    `bson:"id" json:"id"`
	PatientID      string    `bson:"patientId" json:"patientId"`
	ParentID       string    `bson:"parentId" json:"parentId"`
	TherapistID    string    `bson:"therapistId,omitempty" json:"therapistId,omitempty"`
	Name           string    `bson:"name" json:"name"`
	Age            int       `bson:"age" json:"age"`
	Gender         string    `bson:"gender" json:"gender"`
	MedicalHistory string    `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	RiskLevel      RiskLevel `bson:"riskLevel,omitempty" json:"riskLevel,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AddChildRequest struct {
	Name           string `json:"name" binding:"required"`
	Age            int    `json:"age" binding:"min=0,max=25"`
	Gender         string `json:"gender" binding:"required"`
	MedicalHistory string `json:"medicalHistory"`
}
