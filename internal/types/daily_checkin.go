package types

import (
	"time"

	"github.com/google/uuid"
)

// Check-in visibility levels. Free-text notes never reach the analytics
// engine regardless of level; HIDDEN excludes the whole row from it.
const (
	VisibilityFullAccess  = "FULL_ACCESS"
	VisibilityMetricsOnly = "METRICS_ONLY"
	VisibilityHidden      = "HIDDEN"
)

type DailyCheckIn struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_checkin_user_date,unique" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date            time.Time `gorm:"not null;index:idx_checkin_user_date,unique;column:date" json:"date"`
	SleepHours      *float64  `gorm:"column:sleep_hours" json:"sleep_hours,omitempty"`
	SleepQuality    *int      `gorm:"column:sleep_quality" json:"sleep_quality,omitempty"`
	Mood            *int      `gorm:"column:mood" json:"mood,omitempty"`
	Energy          *int      `gorm:"column:energy" json:"energy,omitempty"`
	Stress          *int      `gorm:"column:stress" json:"stress,omitempty"`
	Soreness        *int      `gorm:"column:soreness" json:"soreness,omitempty"`
	Motivation      *int      `gorm:"column:motivation" json:"motivation,omitempty"`
	MentalReadiness *int      `gorm:"column:mental_readiness" json:"mental_readiness,omitempty"`
	PhysicalFatigue *int      `gorm:"column:physical_fatigue" json:"physical_fatigue,omitempty"`
	Notes           string    `gorm:"column:notes" json:"notes"`
	Visibility      string    `gorm:"not null;default:'FULL_ACCESS';column:visibility" json:"visibility"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyCheckIn) TableName() string {
	return "daily_checkin"
}
