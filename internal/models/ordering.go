package models

import (
	"sort"
)

// Default orderings. Stores use the SQL clauses; in-memory stores and
// aggregation use the matching Sort functions so both agree.
const (
	HealthRecordOrder = "date DESC, created_at ASC, id ASC"
	LabResultOrder    = "test_date DESC, created_at ASC"
	VitalSignOrder    = "recorded_at DESC"
	WearableOrder     = "date DESC, device_name ASC"
	InsightOrder      = "created_at DESC"
	QuickNoteOrder    = "is_pinned DESC, created_at DESC"
	MedicationOrder   = "is_active DESC, start_date DESC, name ASC"
	ProblemOrder      = "onset DESC"
	DocumentOrder     = "created_at DESC"
)

// SortHealthRecords orders records newest first. Records on the same date
// keep insertion order.
func SortHealthRecords(records []HealthRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func SortLabResults(results []LabResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.TestDate.Equal(b.TestDate) {
			return a.TestDate.After(b.TestDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func SortVitalSigns(vitals []VitalSign) {
	sort.SliceStable(vitals, func(i, j int) bool {
		return vitals[i].RecordedAt.After(vitals[j].RecordedAt)
	})
}

func SortWearableData(days []WearableData) {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.DeviceName < b.DeviceName
	})
}

func SortInsights(insights []AIInsight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].CreatedAt.After(insights[j].CreatedAt)
	})
}

// SortQuickNotes puts pinned notes first, newest first within each group.
func SortQuickNotes(notes []QuickNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func SortMedications(meds []Medication) {
	sort.SliceStable(meds, func(i, j int) bool {
		a, b := meds[i], meds[j]
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return a.Name < b.Name
	})
}
