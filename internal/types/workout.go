package types

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a planned and/or completed training session. Signal input to
// the analytics engine; immutable once logged except for completion status.
type Workout struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_workout_user_date" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date            time.Time `gorm:"not null;index:idx_workout_user_date;column:date" json:"date"`
	Planned         bool      `gorm:"not null;default:false;column:planned" json:"planned"`
	Completed       bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	DurationMinutes int       `gorm:"not null;default:0;column:duration_minutes" json:"duration_minutes"`
	TSS             *float64  `gorm:"column:tss" json:"tss,omitempty"`
	Discipline      string    `gorm:"not null;column:discipline" json:"discipline"`
	Intensity       string    `gorm:"not null;default:'moderate';column:intensity" json:"intensity"`
	Title           string    `gorm:"column:title" json:"title"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Workout) TableName() string {
	return "workout"
}
