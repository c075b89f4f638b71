package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rebeliceyang/crux/internal/models"
)

// WriteCSV writes a result as CSV, header first
func WriteCSV(w io.Writer, result models.QueryResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(result.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSV renders a result as CSV text
func CSV(result models.QueryResult) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RowCSV renders the row at index as a single CSV line without header
func RowCSV(result models.QueryResult, index int) (string, error) {
	if index < 0 || index >= len(result.Rows) {
		return "", fmt.Errorf("row %d out of range", index)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(result.Rows[index]); err != nil {
		return "", fmt.Errorf("failed to write CSV row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// JSON renders a result as an array of objects keyed by column name.
// Duplicate column names keep the last value.
func JSON(result models.QueryResult) (string, error) {
	records := make([]map[string]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		record := make(map[string]string, len(result.Columns))
		for i, col := range result.Columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(data), nil
}

// ExportToCSV writes a result to a CSV file
func ExportToCSV(result models.QueryResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteCSV(file, result)
}

// ExportToJSON writes a result to a JSON file
func ExportToJSON(result models.QueryResult, path string) error {
	data, err := JSON(result)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
