package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date format on input and output.
const DateLayout = "2006-01-02"

// Transaction represents one parsed financial record. It is a value type
// and is never mutated after construction.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Department  string          `json:"department"`
	Amount      decimal.Decimal `json:"amount"`
	Beneficiary string          `json:"beneficiary"`
}

// ParseField identifies which part of a raw row failed to parse.
type ParseField string

const (
	ParseFieldRow    ParseField = "row"
	ParseFieldDate   ParseField = "date"
	ParseFieldAmount ParseField = "amount"
)

// ParseError reports a malformed raw row. Malformed input is a data
// contract violation upstream of reconciliation and is never retried.
type ParseError struct {
	Field ParseField
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TransactionFromRow builds a Transaction from an ordered 4-field row
// [date, department, amount, beneficiary]. Fields are trimmed, the date is
// normalized to a calendar date and the amount to a decimal, so "16.0" and
// "16.00" compare equal downstream.
func TransactionFromRow(row []string) (Transaction, error) {
	if len(row) != 4 {
		return Transaction{}, &ParseError{
			Field: ParseFieldRow,
			Value: strings.Join(row, ","),
			Err:   fmt.Errorf("expected 4 fields, got %d", len(row)),
		}
	}

	dateStr := strings.TrimSpace(row[0])
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return Transaction{}, &ParseError{Field: ParseFieldDate, Value: dateStr, Err: err}
	}

	amountStr := strings.TrimSpace(row[2])
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Transaction{}, &ParseError{Field: ParseFieldAmount, Value: amountStr, Err: err}
	}

	return Transaction{
		Date:        date,
		Department:  strings.TrimSpace(row[1]),
		Amount:      amount,
		Beneficiary: strings.TrimSpace(row[3]),
	}, nil
}

// MatchesFields reports whether department, amount and beneficiary are all
// exactly equal. Amounts are compared as decimals, not strings; department
// and beneficiary are case-sensitive.
func (t Transaction) MatchesFields(other Transaction) bool {
	return t.Department == other.Department &&
		t.Amount.Equal(other.Amount) &&
		t.Beneficiary == other.Beneficiary
}

// WithinDateTolerance reports whether the two dates differ by at most the
// given number of days, inclusive in both directions.
func (t Transaction) WithinDateTolerance(other Transaction, days int) bool {
	diff := t.Date.Sub(other.Date)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

// Row returns the transaction rendered back to its canonical raw form.
func (t Transaction) Row() []string {
	return []string{t.Date.Format(DateLayout), t.Department, t.Amount.StringFixed(2), t.Beneficiary}
}
