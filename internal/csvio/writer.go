package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/savegress/ledgermatch/pkg/models"
)

// Writer persists annotated reconciliation output. Rows keep the input
// field order with the status appended as the last column.
type Writer struct{}

// WriteFile writes an annotated sequence to the CSV file at the given path.
func (w *Writer) WriteFile(path string, records []models.AnnotatedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes an annotated sequence in CSV format to the given writer.
func (w *Writer) Write(out io.Writer, records []models.AnnotatedRecord) error {
	writer := csv.NewWriter(out)

	for _, rec := range records {
		if err := writer.Write(rec.Row()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteResult writes both annotated sequences of a reconciliation to their
// destination paths.
func (w *Writer) WriteResult(result models.ReconciliationResult, pathA, pathB string) error {
	if err := w.WriteFile(pathA, result.GroupA); err != nil {
		return err
	}
	return w.WriteFile(pathB, result.GroupB)
}
