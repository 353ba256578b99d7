package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSVQuoting(t *testing.T) {
	products := []Product{
		{ID: 1, Title: `He said "hi"`, Price: decimal.RequireFromString("9.99"), Description: "first"},
		{
			ID:          2,
			Title:       `He said "hi"`,
			Price:       decimal.RequireFromString("9.99"),
			Description: "a, b",
			Category:    &Category{ID: 1, Name: "Misc"},
			Images:      []string{"https://a.example.com/1.png", "https://a.example.com/2.png"},
		},
	}

	data, err := ExportCSV(products)
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.HasPrefix(out, "\uFEFF"), "output starts with a byte-order mark")

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Title,Price,Category,Description,Images", lines[0])
	assert.Equal(t, `1,"He said ""hi""",9.99,"","first",""`, lines[1])
	assert.Equal(t, `2,"He said ""hi""",9.99,"Misc","a, b","https://a.example.com/1.png; https://a.example.com/2.png"`, lines[2])

	assert.Contains(t, lines[2], `"He said ""hi"""`)
	assert.Contains(t, lines[2], ",9.99,")
	assert.NotContains(t, out, `"9.99"`)
}

func TestExportCSVEmpty(t *testing.T) {
	_, err := ExportCSV(nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "products_2024-03-07.csv", ExportFilename(now))
}
