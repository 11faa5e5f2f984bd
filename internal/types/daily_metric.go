package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyMetric is the engine-owned computed state for one user and one
// calendar day. Exactly one row per (user, date); written only through the
// recompute operation.
type DailyMetric struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index:idx_metric_user_date,unique" json:"user_id"`
	User                *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date                time.Time      `gorm:"not null;index:idx_metric_user_date,unique;column:date" json:"date"`
	ReadinessScore      float64        `gorm:"not null;column:readiness_score" json:"readiness_score"`
	ReadinessStatus     string         `gorm:"not null;column:readiness_status" json:"readiness_status"`
	ReadinessConfidence string         `gorm:"not null;column:readiness_confidence" json:"readiness_confidence"`
	ReadinessFactors    datatypes.JSON `gorm:"type:jsonb;column:readiness_factors" json:"readiness_factors"`
	FatigueType         string         `gorm:"not null;column:fatigue_type" json:"fatigue_type"`
	ComplianceScore     float64        `gorm:"not null;column:compliance_score" json:"compliance_score"`
	ComplianceStatus    string         `gorm:"not null;column:compliance_status" json:"compliance_status"`
	PlannedCount        int            `gorm:"not null;column:planned_count" json:"planned_count"`
	CompletedCount      int            `gorm:"not null;column:completed_count" json:"completed_count"`
	ComplianceStreak    int            `gorm:"not null;column:compliance_streak" json:"compliance_streak"`
	BurnoutRisk         float64        `gorm:"not null;column:burnout_risk" json:"burnout_risk"`
	BurnoutStatus       string         `gorm:"not null;column:burnout_status" json:"burnout_status"`
	BurnoutDrivers      datatypes.JSON `gorm:"type:jsonb;column:burnout_drivers" json:"burnout_drivers"`
	WeeklyLoad          float64        `gorm:"not null;column:weekly_load" json:"weekly_load"`
	RampRate            float64        `gorm:"not null;column:ramp_rate" json:"ramp_rate"`
	RampDisplay         string         `gorm:"-" json:"ramp_display"`
	RampStatus          string         `gorm:"not null;column:ramp_status" json:"ramp_status"`
	CTL                 float64        `gorm:"not null;column:ctl" json:"ctl"`
	ATL                 float64        `gorm:"not null;column:atl" json:"atl"`
	TSB                 float64        `gorm:"not null;column:tsb" json:"tsb"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyMetric) TableName() string {
	return "daily_metric"
}
