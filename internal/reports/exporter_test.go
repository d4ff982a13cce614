package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []ArtisanDirectoryRow {
	return []ArtisanDirectoryRow{
		{
			ID:               1,
			Name:             "Amina Bibi",
			CNIC:             "35202-1234567-8",
			Gender:           "Female",
			Craft:            "Textiles",
			Skill:            "Block printing",
			Tehsil:           "Shalimar",
			AvgMonthlyIncome: 18000,
			Experience:       6.5,
			CreatedAt:        time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, filename, contentType, err := NewExporter().Export(FormatCSV, sampleRows())
	require.NoError(t, err)

	assert.Equal(t, "text/csv", contentType)
	assert.Regexp(t, `^artisan_directory_\d{8}_\d{6}\.csv$`, filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, directoryHeaders, records[0])
	assert.Equal(t, "Amina Bibi", records[1][1])
	assert.Equal(t, "18000.00", records[1][11])
	assert.Equal(t, "6.5", records[1][12])
}

func TestExportExcelAndPDFProduceContent(t *testing.T) {
	exp := NewExporter()

	data, filename, contentType, err := exp.Export(FormatExcel, sampleRows())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, ".xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)

	data, filename, contentType, err = exp.Export(FormatPDF, sampleRows())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, ".pdf")
	assert.Equal(t, "application/pdf", contentType)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, _, _, err := NewExporter().Export("xml", nil)
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)

	// "to" covers its whole day.
	assert.Equal(t, "2024-01-31 23:59:59", to.Format("2006-01-02 15:04:05"))

	_, _, err = parseDateRange("01/01/2024", "")
	assert.Error(t, err)

	from, to, err = parseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}
