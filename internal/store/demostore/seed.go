package demostore

import (
	"fmt"
	"time"

	"biogram-server/internal/models"
)

// seedEpoch orders seeded rows by insertion.
var seedEpoch = time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("demostore: bad seed date %q", s))
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

type visitSeed struct {
	date     string
	provider string
	details  models.VisitDetails
}

var visitSeeds = []visitSeed{
	{
		date:     "2025-10-15",
		provider: "Dr. Sarah Chen, MD",
		details: models.VisitDetails{
			Specialty:      "Cardiology",
			ChiefComplaint: "Follow-up for hypertension and atrial fibrillation",
			Subjective:     "Returns for follow-up. Reports good compliance with medications. Denies chest pain, palpitations, or shortness of breath. Occasional lightheadedness when standing quickly. Home BP readings averaging 128/78.",
			Objective: models.VisitObjective{
				Vitals:       map[string]string{"BP": "132/82 mmHg", "HR": "76 bpm (regular)", "Weight": "185 lbs", "BMI": "27.3"},
				PhysicalExam: "Cardiovascular: Regular rate and rhythm, no murmurs. Lungs: Clear bilaterally. Extremities: No edema.",
				Labs:         []models.LabEntry{{Name: "INR", Value: "2.3 (therapeutic range 2-3)"}},
			},
			Assessment: []string{
				"Hypertension - well controlled on current regimen",
				"Paroxysmal atrial fibrillation - stable, on anticoagulation",
				"Orthostatic hypotension - mild",
			},
			Plan: []string{
				"Continue Lisinopril 20mg daily",
				"Continue Metoprolol 50mg BID",
				"Continue Warfarin 5mg daily, INR monitoring q4 weeks",
				"Increase fluid intake, rise slowly from sitting/lying",
				"Follow-up in 3 months",
			},
			Medications: []models.VisitMedication{
				{Name: "Lisinopril", Dose: "20mg", Frequency: "Once daily", Purpose: "Blood pressure control"},
				{Name: "Metoprolol", Dose: "50mg", Frequency: "Twice daily", Purpose: "Heart rate/rhythm control"},
				{Name: "Warfarin", Dose: "5mg", Frequency: "Once daily", Purpose: "Blood thinner for AFib"},
				{Name: "Atorvastatin", Dose: "40mg", Frequency: "Once daily at bedtime", Purpose: "Cholesterol management"},
			},
		},
	},
	{
		date:     "2025-10-20",
		provider: "Dr. Michael Rodriguez, MD",
		details: models.VisitDetails{
			Specialty:      "Endocrinology",
			ChiefComplaint: "Type 2 Diabetes management and thyroid follow-up",
			Subjective:     "Reports improved glucose control with recent diet changes. Checking blood sugars twice daily, fasting values 110-130. Energy level improved since thyroid dose adjustment last visit.",
			Objective: models.VisitObjective{
				Vitals:       map[string]string{"BP": "138/84 mmHg", "HR": "72 bpm", "Weight": "172 lbs", "BMI": "29.8"},
				PhysicalExam: "Thyroid: No palpable nodules or enlargement. Feet: Intact sensation to monofilament, good pulses, no ulcerations.",
				Labs: []models.LabEntry{
					{Name: "HbA1c", Value: "7.2% (previous 8.1%)"},
					{Name: "Fasting glucose", Value: "118 mg/dL"},
					{Name: "TSH", Value: "2.1 mIU/L (normal)"},
					{Name: "Creatinine", Value: "0.9 mg/dL"},
					{Name: "eGFR", Value: ">60 mL/min"},
				},
			},
			Assessment: []string{
				"Type 2 Diabetes Mellitus - improved control, HbA1c trending down",
				"Hypothyroidism - well controlled on current levothyroxine dose",
				"Obesity - BMI 29.8, patient motivated for weight loss",
			},
			Plan: []string{
				"Continue Metformin 1000mg BID",
				"Continue Levothyroxine 100mcg daily",
				"Add Jardiance 10mg daily for additional glucose control and cardiovascular benefit",
				"Referral to nutritionist for diabetes education",
				"Repeat HbA1c in 3 months",
			},
			Medications: []models.VisitMedication{
				{Name: "Metformin", Dose: "1000mg", Frequency: "Twice daily with meals", Purpose: "Diabetes control"},
				{Name: "Levothyroxine", Dose: "100mcg", Frequency: "Once daily on empty stomach", Purpose: "Thyroid hormone replacement"},
				{Name: "Jardiance (Empagliflozin)", Dose: "10mg", Frequency: "Once daily", Purpose: "Diabetes and heart protection"},
				{Name: "Aspirin", Dose: "81mg", Frequency: "Once daily", Purpose: "Cardiovascular protection"},
			},
		},
	},
	{
		date:     "2025-10-22",
		provider: "Dr. Jennifer Park, MD",
		details: models.VisitDetails{
			Specialty:      "Orthopedics",
			ChiefComplaint: "Right knee pain and osteoarthritis",
			Subjective:     "Progressive right knee pain for 2 years, worse with stairs and prolonged standing. Pain rated 6/10 at worst. Morning stiffness lasting 15-20 minutes. OTC NSAIDs give moderate relief.",
			Objective: models.VisitObjective{
				Vitals:       map[string]string{"BP": "142/88 mmHg", "Weight": "195 lbs"},
				PhysicalExam: "Right knee: Mild effusion, crepitus with range of motion. ROM 0-120 degrees. Tender along medial joint line. Stable ligaments.",
				Imaging:      "X-ray right knee: Moderate medial joint space narrowing, osteophyte formation, no acute fracture",
			},
			Assessment: []string{
				"Osteoarthritis right knee, moderate - Kellgren-Lawrence Grade 3",
				"Hypertension - elevated reading today",
			},
			Plan: []string{
				"Trial of intra-articular hyaluronic acid injections (3 injection series)",
				"Physical therapy referral - focus on quadriceps strengthening",
				"Weight loss goal of 10-15 lbs to reduce joint stress",
				"Continue acetaminophen as needed, avoid chronic NSAID use",
				"Re-evaluate in 6 weeks",
			},
			Medications: []models.VisitMedication{
				{Name: "Acetaminophen", Dose: "650mg", Frequency: "Up to 3 times daily as needed", Purpose: "Pain relief"},
				{Name: "Glucosamine/Chondroitin", Dose: "1500mg/1200mg", Frequency: "Once daily", Purpose: "Joint health supplement"},
				{Name: "Lisinopril", Dose: "10mg", Frequency: "Once daily", Purpose: "Blood pressure"},
			},
		},
	},
	{
		date:     "2025-10-25",
		provider: "Dr. Amanda Foster, MD",
		details: models.VisitDetails{
			Specialty:      "Primary Care",
			ChiefComplaint: "Annual physical examination",
			Subjective:     "Annual wellness visit. No acute concerns. Exercises 3-4 times per week. Non-smoker, occasional alcohol use. Last mammogram 13 months ago (normal).",
			Objective: models.VisitObjective{
				Vitals:       map[string]string{"BP": "118/76 mmHg", "HR": "68 bpm", "Weight": "148 lbs", "Height": "5'5\"", "BMI": "24.6"},
				PhysicalExam: "General: Well-appearing. Heart: RRR, no murmurs. Lungs: Clear. Abdomen: Soft, non-tender.",
				Labs: []models.LabEntry{
					{Name: "Total cholesterol", Value: "198 mg/dL"},
					{Name: "LDL", Value: "115 mg/dL"},
					{Name: "HDL", Value: "62 mg/dL"},
					{Name: "Triglycerides", Value: "105 mg/dL"},
					{Name: "Glucose", Value: "94 mg/dL"},
					{Name: "TSH", Value: "1.8 mIU/L"},
					{Name: "Vitamin D", Value: "28 ng/mL (low normal)"},
				},
			},
			Assessment: []string{
				"Health maintenance - annual exam",
				"Vitamin D insufficiency",
				"Family history of breast cancer - average risk screening appropriate",
			},
			Plan: []string{
				"Mammogram scheduled for next month",
				"Start Vitamin D3 2000 IU daily",
				"Tdap booster administered today",
				"Return in 1 year for annual exam",
			},
			Medications: []models.VisitMedication{
				{Name: "Vitamin D3", Dose: "2000 IU", Frequency: "Once daily", Purpose: "Vitamin D supplementation"},
				{Name: "Multivitamin", Dose: "1 tablet", Frequency: "Once daily", Purpose: "General wellness"},
			},
		},
	},
	{
		date:     "2025-10-28",
		provider: "Dr. Robert Kim, MD",
		details: models.VisitDetails{
			Specialty:      "Gastroenterology",
			ChiefComplaint: "Gastroesophageal reflux disease and IBS",
			Subjective:     "Heartburn 3-4 times per week despite PPI therapy. Symptoms worse with coffee, spicy foods, late meals. Alternating constipation and diarrhea. No alarm symptoms.",
			Objective: models.VisitObjective{
				Vitals:       map[string]string{"BP": "128/80 mmHg", "Weight": "178 lbs", "BMI": "26.1"},
				PhysicalExam: "Abdomen: Soft, mild epigastric tenderness, normal bowel sounds, no masses or organomegaly.",
				Imaging:      "EGD 18 months ago: Mild esophagitis, small hiatal hernia, negative for Barrett's esophagus.",
			},
			Assessment: []string{
				"Gastroesophageal reflux disease - suboptimal control on current therapy",
				"Irritable bowel syndrome, mixed type",
				"Small hiatal hernia",
			},
			Plan: []string{
				"Increase Omeprazole to 40mg twice daily",
				"Trial of alginate therapy after meals and bedtime",
				"Consider low FODMAP diet trial for IBS symptoms",
				"Follow-up in 6 weeks",
			},
			Medications: []models.VisitMedication{
				{Name: "Omeprazole", Dose: "40mg", Frequency: "Twice daily before meals", Purpose: "Reduce stomach acid"},
				{Name: "Gaviscon", Dose: "2 tablets", Frequency: "After meals and bedtime", Purpose: "Acid barrier protection"},
				{Name: "Dicyclomine", Dose: "20mg", Frequency: "As needed for cramping", Purpose: "IBS symptom relief"},
				{Name: "Fiber supplement", Dose: "1 tablespoon", Frequency: "Once daily", Purpose: "Regulate bowel movements"},
			},
		},
	},
}

func seedRecords(owner string) []models.HealthRecord {
	var records []models.HealthRecord
	for i, v := range visitSeeds {
		r := models.HealthRecord{
			BaseModel:   seededBase(fmt.Sprintf("demo-visit-%d", i+1), i),
			UserID:      owner,
			EventType:   models.EventVisit,
			Title:       v.details.Specialty + " visit",
			Description: v.details.ChiefComplaint,
			Date:        day(v.date),
			Provider:    v.provider,
			IsImportant: v.details.Specialty == "Cardiology",
		}
		r.SetDetails(v.details)
		records = append(records, r)
	}
	records = append(records, models.HealthRecord{
		BaseModel:   seededBase("demo-lab-1", len(records)),
		UserID:      owner,
		EventType:   models.EventLab,
		Title:       "INR check",
		Description: "Routine anticoagulation monitoring. INR 2.1, within therapeutic range.",
		Date:        day("2025-09-28"),
		Provider:    "Quest Diagnostics",
		Location:    "Outpatient lab",
	})
	return records
}

func seededBase(id string, i int) models.BaseModel {
	at := seedEpoch.Add(time.Duration(i) * time.Second)
	return models.BaseModel{ID: id, CreatedAt: at, UpdatedAt: at}
}

func seedMedications(owner string) []models.Medication {
	type med struct {
		name, dosage, prescriber, purpose, start string
		freq                                     models.Frequency
		active                                   bool
	}
	meds := []med{
		{"Lisinopril", "20mg", "Dr. Sarah Chen, MD", "Blood pressure control", "2018-06-20", models.FrequencyDaily, true},
		{"Metoprolol", "50mg", "Dr. Sarah Chen, MD", "Heart rate/rhythm control", "2023-03-15", models.FrequencyTwiceDaily, true},
		{"Warfarin", "5mg", "Dr. Sarah Chen, MD", "Blood thinner for AFib", "2023-03-15", models.FrequencyDaily, true},
		{"Atorvastatin", "40mg", "Dr. Sarah Chen, MD", "Cholesterol management", "2021-01-10", models.FrequencyDaily, true},
		{"Metformin", "1000mg", "Dr. Michael Rodriguez, MD", "Diabetes control", "2017-11-10", models.FrequencyTwiceDaily, true},
		{"Levothyroxine", "100mcg", "Dr. Michael Rodriguez, MD", "Thyroid hormone replacement", "2020-02-12", models.FrequencyDaily, true},
		{"Jardiance (Empagliflozin)", "10mg", "Dr. Michael Rodriguez, MD", "Diabetes and heart protection", "2025-10-20", models.FrequencyDaily, true},
		{"Omeprazole", "40mg", "Dr. Robert Kim, MD", "Reduce stomach acid", "2019-07-15", models.FrequencyTwiceDaily, true},
		{"Acetaminophen", "650mg", "Dr. Jennifer Park, MD", "Pain relief", "2022-04-01", models.FrequencyAsNeeded, true},
		{"Vitamin D3", "2000 IU", "Dr. Amanda Foster, MD", "Vitamin D supplementation", "2025-10-25", models.FrequencyDaily, true},
		{"Lisinopril", "10mg", "Dr. Sarah Chen, MD", "Blood pressure control", "2018-06-20", models.FrequencyDaily, false},
	}
	out := make([]models.Medication, 0, len(meds))
	for i, m := range meds {
		med := models.Medication{
			BaseModel:  seededBase(fmt.Sprintf("demo-med-%d", i+1), i),
			UserID:     owner,
			Name:       m.name,
			Dosage:     m.dosage,
			Frequency:  m.freq,
			StartDate:  day(m.start),
			Prescriber: m.prescriber,
			Purpose:    m.purpose,
			IsActive:   m.active,
		}
		if !m.active {
			med.EndDate = dayPtr("2025-10-15")
		}
		out = append(out, med)
	}
	return out
}

func seedLabResults(owner string) []models.LabResult {
	type lab struct {
		name, value, unit, ref, date, provider string
		status                                 models.LabStatus
	}
	labs := []lab{
		{"INR", "2.1", "", "2.0-3.0", "2025-09-28", "Quest Diagnostics", models.LabNormal},
		{"INR", "2.3", "", "2.0-3.0", "2025-10-15", "Dr. Sarah Chen, MD", models.LabNormal},
		{"HbA1c", "7.2", "%", "<5.7", "2025-10-20", "Dr. Michael Rodriguez, MD", models.LabAbnormal},
		{"Fasting glucose", "118", "mg/dL", "70-99", "2025-10-20", "Dr. Michael Rodriguez, MD", models.LabAbnormal},
		{"TSH", "2.1", "mIU/L", "0.5-5.0", "2025-10-20", "Dr. Michael Rodriguez, MD", models.LabNormal},
		{"Creatinine", "0.9", "mg/dL", "0.6-1.2", "2025-10-20", "Dr. Michael Rodriguez, MD", models.LabNormal},
		{"Total cholesterol", "198", "mg/dL", "<200", "2025-10-25", "Dr. Amanda Foster, MD", models.LabNormal},
		{"LDL", "115", "mg/dL", "<100", "2025-10-25", "Dr. Amanda Foster, MD", models.LabAbnormal},
		{"HDL", "62", "mg/dL", ">40", "2025-10-25", "Dr. Amanda Foster, MD", models.LabNormal},
		{"Triglycerides", "105", "mg/dL", "<150", "2025-10-25", "Dr. Amanda Foster, MD", models.LabNormal},
		{"Vitamin D", "28", "ng/mL", "30-100", "2025-10-25", "Dr. Amanda Foster, MD", models.LabAbnormal},
	}
	out := make([]models.LabResult, 0, len(labs))
	for i, l := range labs {
		out = append(out, models.LabResult{
			BaseModel:      seededBase(fmt.Sprintf("demo-lab-result-%d", i+1), i),
			UserID:         owner,
			TestName:       l.name,
			Value:          l.value,
			Unit:           l.unit,
			ReferenceRange: l.ref,
			Status:         l.status,
			TestDate:       day(l.date),
			Provider:       l.provider,
		})
	}
	return out
}

func seedVitals(owner string) []models.VitalSign {
	const lb = 0.45359237
	type vital struct {
		date         string
		sys, dia, hr int
		weightLbs    float64
	}
	vitals := []vital{
		{"2025-10-15", 132, 82, 76, 185},
		{"2025-10-20", 138, 84, 72, 172},
		{"2025-10-22", 142, 88, 0, 195},
		{"2025-10-25", 118, 76, 68, 148},
		{"2025-10-28", 128, 80, 0, 178},
	}
	out := make([]models.VitalSign, 0, len(vitals))
	for i, v := range vitals {
		vs := models.VitalSign{
			BaseModel:  seededBase(fmt.Sprintf("demo-vital-%d", i+1), i),
			UserID:     owner,
			Systolic:   intPtr(v.sys),
			Diastolic:  intPtr(v.dia),
			Weight:     floatPtr(float64(int(v.weightLbs*lb*10+0.5)) / 10),
			Height:     floatPtr(165),
			RecordedAt: day(v.date).Add(10 * time.Hour),
			Source:     models.SourceClinic,
		}
		if v.hr > 0 {
			vs.HeartRate = intPtr(v.hr)
		}
		vs.DeriveBMI()
		out = append(out, vs)
	}
	return out
}

// seedWearables generates 14 days of one device ending on today.
func seedWearables(owner string, today time.Time) []models.WearableData {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]models.WearableData, 0, 14)
	for i := 0; i < 14; i++ {
		d := end.AddDate(0, 0, -i)
		out = append(out, models.WearableData{
			BaseModel:     seededBase(fmt.Sprintf("demo-wearable-%d", i+1), i),
			UserID:        owner,
			DeviceName:    "Fitbit Charge 6",
			Date:          d,
			Steps:         intPtr(4200 + (i*737)%5200),
			Calories:      intPtr(1850 + (i*53)%600),
			ActiveMinutes: intPtr(25 + (i*7)%45),
			SleepHours:    floatPtr(6.2 + float64(i%5)*0.35),
			HeartRateAvg:  intPtr(68 + i%6),
			HeartRateMin:  intPtr(52 + i%4),
			HeartRateMax:  intPtr(118 + (i*3)%25),
			StressLevel:   intPtr(3 + i%5),
			SyncTime:      d.Add(22 * time.Hour),
		})
	}
	return out
}

func seedInsights(owner string) []models.AIInsight {
	type insight struct {
		kind     models.InsightKind
		priority models.Priority
		title    string
		desc     string
	}
	insights := []insight{
		{models.InsightTrend, models.PriorityFollowup, "Blood Pressure Trending Up", "Your blood pressure readings have been creeping higher over the past 3 months. Current average is 132/82, up from 122/76. Monitor at home daily and discuss medication adjustment with your cardiologist."},
		{models.InsightTrend, models.PriorityRoutine, "Diabetes Control Improving", "Your HbA1c has dropped from 8.1% to 7.2% over 3 months. Keep up the diet changes and continue monitoring blood sugars twice daily."},
		{models.InsightTrend, models.PriorityRoutine, "Vitamin D Still Low", "Despite supplementation, your Vitamin D level is at the low end of normal (28 ng/mL). Consider increasing Vitamin D3 and getting midday sun exposure."},
		{models.InsightAction, models.PriorityUrgent, "Bleeding Risk Awareness", "You're on Warfarin. Avoid NSAIDs such as ibuprofen or naproxen as they can increase bleeding risk. Acetaminophen is safer for pain."},
		{models.InsightSuggestion, models.PriorityRoutine, "Heart Health Priority", "With AFib and rising BP, reduce sodium to under 2000mg daily and increase potassium-rich foods."},
		{models.InsightSuggestion, models.PriorityRoutine, "Medication Timing Matters", "Take Levothyroxine 30-60 minutes before breakfast on an empty stomach. Don't take with coffee."},
		{models.InsightSuggestion, models.PriorityRoutine, "Joint Protection", "Losing 10-15 lbs could significantly reduce knee pain and slow arthritis progression."},
		{models.InsightSuggestion, models.PriorityRoutine, "GERD Management", "Elevate the head of the bed 6-8 inches and eat dinner by 6 PM to reduce nighttime reflux."},
		{models.InsightReminder, models.PriorityFollowup, "Ask about blood pressure", "My BP is still high despite medications. Should we increase the Lisinopril dose or add another medication?"},
		{models.InsightReminder, models.PriorityFollowup, "Ask about medication count", "Are there any of my medications that could be combined or eliminated?"},
		{models.InsightReminder, models.PriorityFollowup, "Ask about Warfarin alternatives", "Is there a newer blood thinner that would be easier to manage than Warfarin?"},
		{models.InsightReminder, models.PriorityFollowup, "Ask about Glucosamine and Warfarin", "Is it safe to take Glucosamine with Warfarin?"},
	}
	out := make([]models.AIInsight, 0, len(insights))
	for i, in := range insights {
		ai := models.AIInsight{
			// first seed is the newest
			BaseModel:   seededBase(fmt.Sprintf("demo-insight-%d", i+1), len(insights)-i),
			UserID:      owner,
			Kind:        in.kind,
			Priority:    in.priority,
			Title:       in.title,
			Description: in.desc,
		}
		if i == 0 {
			ai.RelatedRecordID = strPtr("demo-visit-1")
		}
		out = append(out, ai)
	}
	return out
}

func seedProblems(owner string) []models.Problem {
	type problem struct {
		condition, icd10, onset, status string
		s, o, a, p                      string
	}
	problems := []problem{
		{"Atrial Fibrillation (Paroxysmal)", "I48.0", "2023-03-15", "Stable",
			"No palpitations or episodes since last visit. Compliant with Warfarin and INR monitoring.",
			"Heart rate 76 bpm, regular rhythm. INR 2.3 (therapeutic).",
			"Paroxysmal AFib well-controlled on rate control and anticoagulation.",
			"Continue Metoprolol and Warfarin. Monthly INR checks."},
		{"Hypertension", "I10", "2018-06-20", "Suboptimal Control",
			"Home BP readings averaging 128-135 systolic. Occasional morning headaches.",
			"Office BP 132/82. Target is <130/80.",
			"Hypertension not at goal despite dual therapy.",
			"Increase Lisinopril to 30mg daily. Home BP log for 2 weeks."},
		{"Type 2 Diabetes Mellitus", "E11.9", "2017-11-10", "Improved",
			"Better glucose control with diet changes. Fasting sugars 110-130.",
			"HbA1c improved from 8.1% to 7.2%. eGFR stable >60.",
			"Good response to Metformin and lifestyle changes.",
			"Continue Metformin. Start Jardiance 10mg daily. Target HbA1c <7%."},
		{"Osteoarthritis - Right Knee", "M17.11", "2022-04-01", "Progressive",
			"Right knee pain 6/10, worse with stairs. Morning stiffness 15-20 minutes.",
			"Moderate joint space narrowing on X-ray. Crepitus and mild effusion.",
			"Moderate osteoarthritis right knee.",
			"Hyaluronic acid injection series. PT for quad strengthening."},
		{"Gastroesophageal Reflux Disease", "K21.9", "2019-07-15", "Suboptimal Control",
			"Heartburn 3-4 times weekly despite Omeprazole.",
			"Mild epigastric tenderness. Prior EGD showed mild esophagitis.",
			"GERD inadequately controlled on standard PPI dose.",
			"Increase Omeprazole to 40mg BID. Add Gaviscon."},
		{"Hypothyroidism", "E03.9", "2020-02-12", "Well Controlled",
			"Energy level good since dose adjustment.",
			"TSH 2.1 mIU/L (normal range 0.5-5.0).",
			"Hypothyroidism well-controlled on Levothyroxine 100mcg daily.",
			"Continue current dose. Recheck TSH in 6 months."},
	}
	out := make([]models.Problem, 0, len(problems))
	for i, p := range problems {
		out = append(out, models.Problem{
			BaseModel:  seededBase(fmt.Sprintf("demo-problem-%d", i+1), i),
			UserID:     owner,
			Condition:  p.condition,
			ICD10:      p.icd10,
			Onset:      dayPtr(p.onset),
			Status:     p.status,
			Subjective: p.s,
			Objective:  p.o,
			Assessment: p.a,
			Plan:       p.p,
		})
	}
	return out
}

func seedNotes(owner string) []models.QuickNote {
	return []models.QuickNote{
		{BaseModel: seededBase("demo-note-1", 0), UserID: owner, Content: "Bring home BP log to cardiology follow-up.", IsPinned: true},
		{BaseModel: seededBase("demo-note-2", 1), UserID: owner, Content: "Knee felt better after PT session, less stiffness on stairs."},
	}
}

func seedUser(owner string) (models.User, models.Profile) {
	user := models.User{
		BaseModel: seededBase(owner, 0),
		Username:  "demo",
		Email:     "demo@biogram.example",
		Role:      models.RoleUser,
	}
	profile := models.Profile{
		BaseModel:        seededBase("demo-profile", 0),
		UserID:           owner,
		DateOfBirth:      dayPtr("1963-04-12"),
		EmergencyContact: "Jordan Demo (spouse)",
		BloodType:        "O+",
		Allergies:        "Penicillin",
	}
	return user, profile
}
