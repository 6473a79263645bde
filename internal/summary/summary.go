// Package summary holds the pure aggregations behind the timeline, wearable
// and doctor summary pages. Inputs are expected in their default order.
package summary

import (
	"math"
	"strings"
	"time"

	"biogram-server/internal/models"
)

// DoctorVisits is how many recent visits the doctor summary covers.
const DoctorVisits = 3

// Wearable windows in days.
const (
	DoctorWearableDays = 7
	WearablePageDays   = 30
)

// Advisory thresholds.
const (
	MinDailySteps = 5000
	MinSleepHours = 7.0
)

// Medication is a prescription attributed to the visit it was first seen in.
type Medication struct {
	Name      string    `json:"name"`
	Dose      string    `json:"dose"`
	Frequency string    `json:"frequency"`
	Purpose   string    `json:"purpose"`
	VisitID   string    `json:"visitId"`
	VisitDate time.Time `json:"visitDate"`
	Specialty string    `json:"specialty"`
	Provider  string    `json:"provider"`
}

// LabPanel is the set of lab values recorded in one visit note.
type LabPanel struct {
	VisitID   string            `json:"visitId"`
	Date      time.Time         `json:"date"`
	Specialty string            `json:"specialty"`
	Provider  string            `json:"provider"`
	Entries   []models.LabEntry `json:"entries"`
}

// TimelineEvent is one row of the health timeline.
type TimelineEvent struct {
	ID          string           `json:"id"`
	Date        time.Time        `json:"date"`
	Month       string           `json:"month"`
	EventType   models.EventType `json:"eventType"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Provider    string           `json:"provider"`
	Location    string           `json:"location"`
	Specialty   string           `json:"specialty,omitempty"`
	IsImportant bool             `json:"isImportant"`
}

// WearableAggregate summarises a run of daily device rows. Averages ignore
// missing values and are nil when no day carried the metric.
type WearableAggregate struct {
	Days         int        `json:"days"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	AvgSteps     *float64   `json:"avgSteps"`
	AvgCalories  *float64   `json:"avgCalories"`
	AvgSleep     *float64   `json:"avgSleep"`
	AvgHeartRate *float64   `json:"avgHeartRate"`
	MaxHeartRate *int       `json:"maxHeartRate"`
	MinHeartRate *int       `json:"minHeartRate"`
}

// Advisory is a threshold warning shown next to wearable data.
type Advisory struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RecentVisits returns the first n visit records of records.
func RecentVisits(records []models.HealthRecord, n int) []models.HealthRecord {
	var visits []models.HealthRecord
	for _, r := range records {
		if r.EventType != models.EventVisit {
			continue
		}
		if len(visits) == n {
			break
		}
		visits = append(visits, r)
	}
	return visits
}

// DedupeMedications lists the prescriptions of visits, keeping the first
// occurrence of each name. Names match case-insensitively after trimming.
func DedupeMedications(visits []models.HealthRecord) []Medication {
	seen := make(map[string]bool)
	var out []Medication
	for _, v := range visits {
		details := v.Details()
		for _, m := range details.Medications {
			key := strings.ToLower(strings.TrimSpace(m.Name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Medication{
				Name:      strings.TrimSpace(m.Name),
				Dose:      m.Dose,
				Frequency: m.Frequency,
				Purpose:   m.Purpose,
				VisitID:   v.ID,
				VisitDate: v.Date,
				Specialty: details.Specialty,
				Provider:  v.Provider,
			})
		}
	}
	return out
}

// LabPanels returns one panel per visit that recorded labs.
func LabPanels(visits []models.HealthRecord) []LabPanel {
	var panels []LabPanel
	for _, v := range visits {
		details := v.Details()
		if len(details.Objective.Labs) == 0 {
			continue
		}
		panels = append(panels, LabPanel{
			VisitID:   v.ID,
			Date:      v.Date,
			Specialty: details.Specialty,
			Provider:  v.Provider,
			Entries:   details.Objective.Labs,
		})
	}
	return panels
}

// Timeline maps records to events, newest first. Events on the same date
// keep insertion order.
func Timeline(records []models.HealthRecord) []TimelineEvent {
	sorted := make([]models.HealthRecord, len(records))
	copy(sorted, records)
	models.SortHealthRecords(sorted)

	events := make([]TimelineEvent, 0, len(sorted))
	for _, r := range sorted {
		events = append(events, TimelineEvent{
			ID:          r.ID,
			Date:        r.Date,
			Month:       r.Date.Format("January 2006"),
			EventType:   r.EventType,
			Title:       r.Title,
			Description: r.Description,
			Provider:    r.Provider,
			Location:    r.Location,
			Specialty:   r.Details().Specialty,
			IsImportant: r.IsImportant,
		})
	}
	return events
}

// AggregateWearables computes averages and heart-rate extremes over days.
func AggregateWearables(days []models.WearableData) WearableAggregate {
	agg := WearableAggregate{Days: len(days)}
	var steps, calories, sleep, hr mean
	for i := range days {
		d := &days[i]
		if agg.From == nil || d.Date.Before(*agg.From) {
			from := d.Date
			agg.From = &from
		}
		if agg.To == nil || d.Date.After(*agg.To) {
			to := d.Date
			agg.To = &to
		}
		steps.addInt(d.Steps)
		calories.addInt(d.Calories)
		sleep.addFloat(d.SleepHours)
		hr.addInt(d.HeartRateAvg)
		if d.HeartRateMax != nil && (agg.MaxHeartRate == nil || *d.HeartRateMax > *agg.MaxHeartRate) {
			v := *d.HeartRateMax
			agg.MaxHeartRate = &v
		}
		if d.HeartRateMin != nil && (agg.MinHeartRate == nil || *d.HeartRateMin < *agg.MinHeartRate) {
			v := *d.HeartRateMin
			agg.MinHeartRate = &v
		}
	}
	agg.AvgSteps = steps.value()
	agg.AvgCalories = calories.value()
	agg.AvgSleep = sleep.value()
	agg.AvgHeartRate = hr.value()
	return agg
}

// Advisories returns the warnings triggered by agg.
func Advisories(agg WearableAggregate) []Advisory {
	var out []Advisory
	if agg.AvgSteps != nil && *agg.AvgSteps < MinDailySteps {
		out = append(out, Advisory{
			Type:    "warning",
			Message: "Your average daily steps are below recommended levels. Try to aim for 10,000 steps per day.",
		})
	}
	if agg.AvgSleep != nil && *agg.AvgSleep < MinSleepHours {
		out = append(out, Advisory{
			Type:    "warning",
			Message: "You're averaging less than 7 hours of sleep. Consider improving your sleep routine.",
		})
	}
	return out
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) addInt(v *int) {
	if v != nil {
		m.sum += float64(*v)
		m.n++
	}
}

func (m *mean) addFloat(v *float64) {
	if v != nil {
		m.sum += *v
		m.n++
	}
}

// value is rounded to one decimal.
func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := math.Round(m.sum/float64(m.n)*10) / 10
	return &v
}

// InsightGroups splits insights into the dashboard's three panels.
type InsightGroups struct {
	Trends          []models.AIInsight `json:"healthTrends"`
	Guidance        []models.AIInsight `json:"healthGuidance"`
	DoctorQuestions []models.AIInsight `json:"doctorQuestions"`
}

// GroupInsights keeps the order of insights within each group.
func GroupInsights(insights []models.AIInsight) InsightGroups {
	var g InsightGroups
	for _, in := range insights {
		switch in.Kind {
		case models.InsightTrend:
			g.Trends = append(g.Trends, in)
		case models.InsightReminder:
			g.DoctorQuestions = append(g.DoctorQuestions, in)
		default:
			g.Guidance = append(g.Guidance, in)
		}
	}
	return g
}
