package models

import "time"

// InsightKind classifies an AI-generated insight
type InsightKind string

const (
	InsightAction     InsightKind = "action"
	InsightTrend      InsightKind = "trend"
	InsightReminder   InsightKind = "reminder"
	InsightSuggestion InsightKind = "suggestion"
)

// Priority of an insight
type Priority string

const (
	PriorityUrgent   Priority = "urgent"
	PriorityRoutine  Priority = "routine"
	PriorityFollowup Priority = "followup"
)

func (k InsightKind) Valid() bool {
	switch k {
	case InsightAction, InsightTrend, InsightReminder, InsightSuggestion:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	return p == PriorityUrgent || p == PriorityRoutine || p == PriorityFollowup
}

// AIInsight is advisory content produced outside the request path.
type AIInsight struct {
	BaseModel
	UserID          string      `gorm:"size:36;index;not null" json:"userId"`
	Kind            InsightKind `gorm:"size:20;not null" json:"kind"`
	Priority        Priority    `gorm:"size:20;not null" json:"priority"`
	Title           string      `gorm:"size:200;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	RelatedRecordID *string     `gorm:"size:36" json:"relatedRecordId,omitempty"`
	IsCompleted     bool        `gorm:"default:false" json:"isCompleted"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}

// MarkCompleted flips the completion flag and stamps the time.
func (i *AIInsight) MarkCompleted(at time.Time) {
	i.IsCompleted = true
	i.CompletedAt = &at
}

func (AIInsight) TableName() string {
	return "ai_insights"
}
