package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"universal-scraper/pkg/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		models.RecordOf("title", "Widget", "price", "9.99"),
		models.RecordOf("title", "Café & Co <deluxe>", "image_url", "a.jpg"),
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(sampleRecords())
	require.NoError(t, err)

	assert.Contains(t, string(data), "Café & Co <deluxe>")
	assert.Contains(t, string(data), "\n    {\n        \"title\": \"Widget\",")
	assert.NotEqual(t, byte('\n'), data[len(data)-1])

	var decoded []models.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, []string{"title", "price"}, decoded[0].Keys())
	assert.Equal(t, "9.99", decoded[0].Text("price"))
	assert.Equal(t, "Café & Co <deluxe>", decoded[1].Text("title"))
	assert.Equal(t, "a.jpg", decoded[1].Text("image_url"))
}

func TestJSONEmpty(t *testing.T) {
	data, err := JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCSVRoundTrip(t *testing.T) {
	data, err := CSV(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"title", "price", "image_url"},
		{"Widget", "9.99", ""},
		{"Café & Co <deluxe>", "", "a.jpg"},
	}, rows)
}

func TestCSVValuesAsText(t *testing.T) {
	rec := models.NewRecord()
	rec.Set("n", json.Number("42"))
	rec.Set("b", false)
	rec.Set("z", nil)
	rec.Set("tags", json.RawMessage(`[ "a", "b" ]`))

	data, err := CSV([]models.Record{rec})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "False", "", `["a","b"]`}, rows[1])
}

func TestXLSXReopens(t *testing.T) {
	data, err := XLSX(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"title", "price", "image_url"}, rows[0])
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, "9.99", rows[1][1])
	assert.Equal(t, "a.jpg", rows[2][2])
}

func TestExportArtifacts(t *testing.T) {
	artifacts, err := ExportAll(sampleRecords())
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	assert.Equal(t, "scraped_data.json", artifacts[0].Filename)
	assert.Equal(t, "application/json", artifacts[0].ContentType)
	assert.Equal(t, "scraped_data.csv", artifacts[1].Filename)
	assert.Equal(t, "text/csv", artifacts[1].ContentType)
	assert.Equal(t, "scraped_data.xlsx", artifacts[2].Filename)
	assert.Equal(t, XLSXContentType, artifacts[2].ContentType)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Export(Format("pdf"), nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
