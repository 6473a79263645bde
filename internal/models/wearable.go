package models

import "time"

// WearableData is one day of aggregated data from one device. A user has at
// most one row per (date, device).
type WearableData struct {
	BaseModel
	UserID        string    `gorm:"size:36;not null;uniqueIndex:idx_wearable_natural_key,priority:1" json:"userId"`
	DeviceName    string    `gorm:"size:100;not null;uniqueIndex:idx_wearable_natural_key,priority:3" json:"deviceName"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_wearable_natural_key,priority:2" json:"date"`
	Steps         *int      `json:"steps,omitempty"`
	Calories      *int      `json:"caloriesBurned,omitempty"`
	ActiveMinutes *int      `json:"activeMinutes,omitempty"`
	SleepHours    *float64  `json:"sleepHours,omitempty"`
	HeartRateAvg  *int      `json:"heartRateAvg,omitempty"`
	HeartRateMin  *int      `json:"heartRateMin,omitempty"`
	HeartRateMax  *int      `json:"heartRateMax,omitempty"`
	StressLevel   *int      `json:"stressLevel,omitempty"`
	SyncTime      time.Time `json:"syncTime"`
}

// ApplyMetrics copies the measured fields of src onto w, leaving identity
// and natural key untouched.
func (w *WearableData) ApplyMetrics(src *WearableData) {
	w.Steps = src.Steps
	w.Calories = src.Calories
	w.ActiveMinutes = src.ActiveMinutes
	w.SleepHours = src.SleepHours
	w.HeartRateAvg = src.HeartRateAvg
	w.HeartRateMin = src.HeartRateMin
	w.HeartRateMax = src.HeartRateMax
	w.StressLevel = src.StressLevel
	w.SyncTime = src.SyncTime
}

func (WearableData) TableName() string {
	return "wearable_data"
}
