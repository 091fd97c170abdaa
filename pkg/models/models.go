package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus is the terminal annotation attached to each record after
// reconciliation: FOUND when a counterpart was matched in the opposite
// group, MISSING otherwise.
type RecordStatus string

const (
	StatusFound   RecordStatus = "FOUND"
	StatusMissing RecordStatus = "MISSING"
)

// AnnotatedRecord is one output row of a reconciliation: the original
// transaction fields rendered back to their canonical string forms, plus
// the trailing status column.
type AnnotatedRecord struct {
	Date        string       `json:"date"`
	Department  string       `json:"department"`
	Amount      string       `json:"amount"`
	Beneficiary string       `json:"beneficiary"`
	Status      RecordStatus `json:"status"`
}

// Annotate renders a transaction into an output row with the given status.
func Annotate(txn Transaction, status RecordStatus) AnnotatedRecord {
	return AnnotatedRecord{
		Date:        txn.Date.Format(DateLayout),
		Department:  txn.Department,
		Amount:      txn.Amount.StringFixed(2),
		Beneficiary: txn.Beneficiary,
		Status:      status,
	}
}

// Row returns the record as a CSV row, input field order plus status.
func (r AnnotatedRecord) Row() []string {
	return []string{r.Date, r.Department, r.Amount, r.Beneficiary, string(r.Status)}
}

// ReconciliationResult holds both annotated output sequences. Each sequence
// mirrors the order of its corresponding input group.
type ReconciliationResult struct {
	GroupA []AnnotatedRecord `json:"group_a"`
	GroupB []AnnotatedRecord `json:"group_b"`
}

// ReconciliationBatch represents one reconciliation run between two feeds
type ReconciliationBatch struct {
	ID             string        `json:"id"`
	Source         string        `json:"source"`
	Target         string        `json:"target"`
	Status         BatchStatus   `json:"status"`
	GroupARecords  int           `json:"group_a_records"`
	GroupBRecords  int           `json:"group_b_records"`
	FoundA         int           `json:"found_a"`
	MissingA       int           `json:"missing_a"`
	FoundB         int           `json:"found_b"`
	MissingB       int           `json:"missing_b"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	Summary        *BatchSummary `json:"summary,omitempty"`
	FailureMessage string        `json:"failure_message,omitempty"`
}

// BatchStatus represents the status of a reconciliation batch
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusFailed    BatchStatus = "failed"
)

// BatchSummary contains the monetary totals of a completed batch
type BatchSummary struct {
	GroupATotal decimal.Decimal `json:"group_a_total"`
	GroupBTotal decimal.Decimal `json:"group_b_total"`
	Difference  decimal.Decimal `json:"difference"`
	MatchRate   float64         `json:"match_rate"`
}
