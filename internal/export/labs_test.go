package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"biogram-server/internal/models"
)

func TestLabResultsWorkbook(t *testing.T) {
	results := []models.LabResult{
		{
			TestName:       "Hemoglobin A1C",
			Value:          "7.2",
			Unit:           "%",
			ReferenceRange: "<5.7",
			Status:         models.LabAbnormal,
			TestDate:       time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
			Provider:       "Dr. Patel",
		},
		{
			TestName: "TSH",
			Value:    "2.1",
			Unit:     "mIU/L",
			Status:   models.LabNormal,
			TestDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := LabResultsWorkbook(results)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{labSheet}, f.GetSheetList())

	rows, err := f.GetRows(labSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, LabResultsHeader, rows[0])
	assert.Equal(t, []string{"2025-10-20", "Hemoglobin A1C", "7.2", "%", "<5.7", "abnormal", "Dr. Patel"}, rows[1])
	assert.Equal(t, "TSH", rows[2][1])
	assert.Equal(t, "normal", rows[2][5])

	flagged, err := f.GetCellStyle(labSheet, "B2")
	require.NoError(t, err)
	plain, err := f.GetCellStyle(labSheet, "B3")
	require.NoError(t, err)
	assert.NotEqual(t, flagged, plain)
}

func TestLabResultsWorkbook_Empty(t *testing.T) {
	data, err := LabResultsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(labSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
