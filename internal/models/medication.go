package models

import "time"

// Frequency is how often a medication is taken
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyTwiceDaily Frequency = "twice_daily"
	FrequencyThreeTimes Frequency = "three_times"
	FrequencyFourTimes  Frequency = "four_times"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyAsNeeded   Frequency = "as_needed"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyThreeTimes,
		FrequencyFourTimes, FrequencyWeekly, FrequencyAsNeeded:
		return true
	}
	return false
}

// Medication is a prescription the user tracks. It is deactivated rather
// than deleted when stopped.
type Medication struct {
	BaseModel
	UserID      string     `gorm:"size:36;index;not null" json:"userId"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Dosage      string     `gorm:"size:100;not null" json:"dosage"`
	Frequency   Frequency  `gorm:"size:20;not null" json:"frequency"`
	StartDate   time.Time  `gorm:"type:date" json:"startDate"`
	EndDate     *time.Time `gorm:"type:date" json:"endDate,omitempty"`
	Prescriber  string     `gorm:"size:100" json:"prescriber"`
	Purpose     string     `gorm:"type:text" json:"purpose"`
	SideEffects string     `gorm:"type:text" json:"sideEffects"`
	IsActive    bool       `gorm:"default:true;index" json:"isActive"`
}
