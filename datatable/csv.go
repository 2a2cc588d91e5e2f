package datatable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV writes a header of column labels followed by one record per row,
// in column order. Fields containing a comma, a quote or a line break are
// quoted with inner quotes doubled.
func WriteCSV(w io.Writer, columns []Column, rows []Row) error {
	writer := csv.NewWriter(w)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Label
		if headers[i] == "" {
			headers[i] = c.Key
		}
	}
	// A record of one empty field would be written as a blank line, which
	// CSV readers skip, so it is written quoted.
	write := func(record []string) error {
		if len(record) != 1 || record[0] != "" {
			return writer.Write(record)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\"\"\n")
		return err
	}

	if err := write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			record[i] = r.Get(c.Key).Formatted
		}
		if err := write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ToCSV renders columns and rows as CSV text without a trailing newline.
func ToCSV(columns []Column, rows []Row) string {
	var sb strings.Builder
	// strings.Builder never fails a write.
	_ = WriteCSV(&sb, columns, rows)
	return strings.TrimSuffix(sb.String(), "\n")
}
