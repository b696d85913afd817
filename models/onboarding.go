package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OnboardingInProgress = "in_progress"
	OnboardingSubmitted  = "submitted"
)

// OnboardingProfile tracks a mitra through training and document upload
// before their KYC review. Documents holds the uploaded file metadata as a
// JSON array of {name, kind, uploaded_at} objects.
type OnboardingProfile struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	UserID       string         `gorm:"uniqueIndex;size:36" json:"user_id"`
	TrainingDone bool           `gorm:"default:false" json:"training_done"`
	Documents    datatypes.JSON `json:"documents"`
	Status       string         `gorm:"size:16;default:in_progress" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
