package services

import (
	"path/filepath"
	"testing"

	"clock-client/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTranscriptServiceSave(t *testing.T) {
	service := NewTranscriptService()
	service.Record(models.TranscriptEntry{
		Timestamp:  "2024-03-13T14:05:00Z",
		Query:      "what time is it in Tokyo",
		TopIntent:  "GetTime",
		Confidence: 0.93,
		Entities:   []models.Entity{{Category: "Location", Text: "Tokyo"}},
		Answer:     "23:05",
	})
	service.Record(models.TranscriptEntry{
		Timestamp: "2024-03-13T14:06:00Z",
		Query:     "hello",
		Error:     "connection refused",
	})
	assert.Equal(t, 2, service.Len())

	path := filepath.Join(t.TempDir(), "transcript.xlsx")
	require.NoError(t, service.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(transcriptSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Query", rows[0][1])
	assert.Equal(t, "what time is it in Tokyo", rows[1][1])
	assert.Equal(t, "GetTime", rows[1][2])
	assert.Equal(t, "Location=Tokyo", rows[1][4])
	assert.Equal(t, "23:05", rows[1][5])
	assert.Equal(t, "hello", rows[2][1])
	assert.Equal(t, "connection refused", rows[2][6])
}

func TestTranscriptServiceSaveEmpty(t *testing.T) {
	service := NewTranscriptService()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, service.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(transcriptSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFormatEntities(t *testing.T) {
	assert.Equal(t, "", formatEntities(nil))
	assert.Equal(t, "Location=Tokyo; Weekday=Friday", formatEntities([]models.Entity{
		{Category: "Location", Text: "Tokyo"},
		{Category: "Weekday", Text: "Friday"},
	}))
}
