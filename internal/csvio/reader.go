package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/savegress/ledgermatch/pkg/models"
)

// Reader loads transaction feeds. Feed files are headerless CSV with rows
// of date,department,amount,beneficiary.
type Reader struct{}

// ReadFile loads all transactions from the CSV file at the given path.
func (r *Reader) ReadFile(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file %q: %w", path, err)
	}
	defer f.Close()

	txns, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// Read loads all transactions from CSV data on the given reader.
func (r *Reader) Read(in io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	for i, record := range records {
		txn, err := models.TransactionFromRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}
