package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeeklySimulationResult is one simulated week of a scenario run. Rows for a
// scenario are replaced wholesale (delete then reinsert) on every re-run.
type WeeklySimulationResult struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ScenarioID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_simresult_scenario_week,unique" json:"scenario_id"`
	Scenario              *Scenario      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ScenarioID;references:ID" json:"scenario,omitempty"`
	WeekIndex             int            `gorm:"not null;index:idx_simresult_scenario_week,unique;column:week_index" json:"week_index"`
	SimulatedCTL          float64        `gorm:"not null;column:simulated_ctl" json:"simulated_ctl"`
	SimulatedATL          float64        `gorm:"not null;column:simulated_atl" json:"simulated_atl"`
	SimulatedTSB          float64        `gorm:"not null;column:simulated_tsb" json:"simulated_tsb"`
	SimulatedReadinessAvg float64        `gorm:"not null;column:simulated_readiness_avg" json:"simulated_readiness_avg"`
	SimulatedBurnoutRisk  float64        `gorm:"not null;column:simulated_burnout_risk" json:"simulated_burnout_risk"`
	WeeklyTSS             float64        `gorm:"not null;column:weekly_tss" json:"weekly_tss"`
	Insights              datatypes.JSON `gorm:"type:jsonb;column:insights" json:"insights"`
	Warnings              datatypes.JSON `gorm:"type:jsonb;column:warnings" json:"warnings"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (WeeklySimulationResult) TableName() string {
	return "weekly_simulation_result"
}
