package dispatch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/table"
)

// writeCSV renders rows into a CSV export. Column headers use the locale
// title when available. Without column config every row key would be
// untitled, so columns are required.
func writeCSV(columns []descriptor.Column, rows []table.Row, locale string) (*ExportFile, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("export: no columns configured")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		if title, ok := col.Lang[locale]; ok && title != "" {
			header[i] = title
		} else {
			header[i] = col.Key
		}
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			if v, ok := row[col.Key]; ok && v != nil {
				record[i] = fmt.Sprint(v)
			} else {
				record[i] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}

	name := fmt.Sprintf("export_%s_%s.csv",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	return &ExportFile{Name: name, Content: buf.Bytes()}, nil
}
