package core

// export.go serializes the visible page to CSV.
//
// The output is written by hand rather than with encoding/csv: the file must
// quote every text column (even when no quoting is needed) and leave the
// numeric columns bare, and csv.Writer only quotes on demand.

import (
	"strconv"
	"strings"
	"time"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\uFEFF"

var exportHeader = []string{"ID", "Title", "Price", "Category", "Description", "Images"}

// ExportCSV renders products as CSV with a byte-order mark and a header row.
// Lines end in "\n". Text fields are always quoted; ID and price are not.
func ExportCSV(products []Product) ([]byte, error) {
	if len(products) == 0 {
		return nil, ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(exportHeader, ","))

	for _, p := range products {
		b.WriteByte('\n')
		b.WriteString(strconv.Itoa(p.ID))
		b.WriteByte(',')
		writeQuoted(&b, p.Title)
		b.WriteByte(',')
		b.WriteString(p.Price.String())
		b.WriteByte(',')
		writeQuoted(&b, p.CategoryName())
		b.WriteByte(',')
		writeQuoted(&b, p.Description)
		b.WriteByte(',')
		writeQuoted(&b, strings.Join(p.Images, "; "))
	}

	return []byte(b.String()), nil
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}

// ExportFilename returns the download name for an export made at now.
func ExportFilename(now time.Time) string {
	return "products_" + now.Format(time.DateOnly) + ".csv"
}
