package types

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a hypothetical multi-week training plan the simulator can
// project forward. Owned by the simulator, scoped to one user.
type Scenario struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name               string    `gorm:"not null;column:name" json:"name"`
	DurationWeeks      int       `gorm:"not null;column:duration_weeks" json:"duration_weeks"`
	WeeklyTSS          float64   `gorm:"not null;column:weekly_tss" json:"weekly_tss"`
	VolumeDeltaPercent float64   `gorm:"not null;default:0;column:volume_delta_percent" json:"volume_delta_percent"`
	IntensityShift     int       `gorm:"not null;default:0;column:intensity_shift" json:"intensity_shift"`
	IdentityMode       string    `gorm:"not null;default:'competitive';column:identity_mode" json:"identity_mode"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Scenario) TableName() string {
	return "scenario"
}
