package reconciliation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savegress/ledgermatch/internal/config"
	"github.com/savegress/ledgermatch/pkg/models"
	"github.com/shopspring/decimal"
)

// Engine manages reconciliation batches
type Engine struct {
	config     *config.ReconciliationConfig
	reconciler *Reconciler
	batches    map[string]*models.ReconciliationBatch
	results    map[string]*models.ReconciliationResult
	mu         sync.RWMutex
	running    bool
	stopCh     chan struct{}
}

// NewEngine creates a new reconciliation engine
func NewEngine(cfg *config.ReconciliationConfig) *Engine {
	return &Engine{
		config:     cfg,
		reconciler: NewReconciler(NewToleranceMatcher(cfg.DateToleranceDays)),
		batches:    make(map[string]*models.ReconciliationBatch),
		results:    make(map[string]*models.ReconciliationResult),
		stopCh:     make(chan struct{}),
	}
}

// Start starts the reconciliation engine
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = true
	return nil
}

// Stop stops the reconciliation engine
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		close(e.stopCh)
		e.running = false
	}
}

// CreateBatch creates a new reconciliation batch between two feed labels
func (e *Engine) CreateBatch(source, target string) *models.ReconciliationBatch {
	e.mu.Lock()
	defer e.mu.Unlock()

	batch := &models.ReconciliationBatch{
		ID:        "batch-" + uuid.NewString(),
		Source:    source,
		Target:    target,
		Status:    models.BatchStatusPending,
		StartedAt: time.Now(),
	}

	e.batches[batch.ID] = batch
	return batch
}

// Run reconciles the two groups under the given batch and stores the
// annotated result. The inputs must not be mutated by the caller while the
// run is in progress.
func (e *Engine) Run(ctx context.Context, batchID string, groupA, groupB []models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	batch, ok := e.batches[batchID]
	if !ok {
		e.mu.Unlock()
		return ErrBatchNotFound
	}
	batch.Status = models.BatchStatusRunning
	batch.GroupARecords = len(groupA)
	batch.GroupBRecords = len(groupB)
	e.mu.Unlock()

	result, err := e.reconciler.Reconcile(groupA, groupB)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		batch.Status = models.BatchStatusFailed
		batch.FailureMessage = err.Error()
		return err
	}

	for _, rec := range result.GroupA {
		if rec.Status == models.StatusFound {
			batch.FoundA++
		} else {
			batch.MissingA++
		}
	}
	for _, rec := range result.GroupB {
		if rec.Status == models.StatusFound {
			batch.FoundB++
		} else {
			batch.MissingB++
		}
	}

	batch.Summary = summarize(batch, groupA, groupB)

	now := time.Now()
	batch.CompletedAt = &now
	batch.Status = models.BatchStatusCompleted

	e.results[batchID] = &result
	return nil
}

func summarize(batch *models.ReconciliationBatch, groupA, groupB []models.Transaction) *models.BatchSummary {
	var totalA, totalB decimal.Decimal
	for _, txn := range groupA {
		totalA = totalA.Add(txn.Amount)
	}
	for _, txn := range groupB {
		totalB = totalB.Add(txn.Amount)
	}

	matchRate := float64(0)
	if batch.GroupARecords > 0 {
		matchRate = float64(batch.FoundA) / float64(batch.GroupARecords)
	}

	return &models.BatchSummary{
		GroupATotal: totalA,
		GroupBTotal: totalB,
		Difference:  totalA.Sub(totalB).Abs(),
		MatchRate:   matchRate,
	}
}

// GetBatch retrieves a batch by ID
func (e *Engine) GetBatch(id string) (*models.ReconciliationBatch, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	batch, ok := e.batches[id]
	return batch, ok
}

// GetResult retrieves the annotated output of a completed batch
func (e *Engine) GetResult(id string) (*models.ReconciliationResult, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result, ok := e.results[id]
	return result, ok
}

// BatchFilter defines filters for batch queries
type BatchFilter struct {
	Status models.BatchStatus
	Source string
	Target string
	Limit  int
}

// GetBatches retrieves batches matching the filter, newest first
func (e *Engine) GetBatches(filter BatchFilter) []*models.ReconciliationBatch {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var results []*models.ReconciliationBatch
	for _, batch := range e.batches {
		if e.matchesBatchFilter(batch, filter) {
			results = append(results, batch)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}

	return results
}

func (e *Engine) matchesBatchFilter(batch *models.ReconciliationBatch, filter BatchFilter) bool {
	if filter.Status != "" && batch.Status != filter.Status {
		return false
	}
	if filter.Source != "" && batch.Source != filter.Source {
		return false
	}
	if filter.Target != "" && batch.Target != filter.Target {
		return false
	}
	return true
}

// GetStats returns reconciliation statistics across all batches
func (e *Engine) GetStats() *ReconcileStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := &ReconcileStats{
		ByStatus: make(map[string]int),
	}

	for _, batch := range e.batches {
		stats.TotalBatches++
		stats.ByStatus[string(batch.Status)]++

		stats.TotalRecords += batch.GroupARecords + batch.GroupBRecords
		stats.TotalFound += batch.FoundA + batch.FoundB
		stats.TotalMissing += batch.MissingA + batch.MissingB
	}

	if stats.TotalRecords > 0 {
		stats.OverallMatchRate = float64(stats.TotalFound) / float64(stats.TotalRecords)
	}

	return stats
}

// ReconcileStats contains reconciliation statistics
type ReconcileStats struct {
	TotalBatches     int            `json:"total_batches"`
	TotalRecords     int            `json:"total_records"`
	TotalFound       int            `json:"total_found"`
	TotalMissing     int            `json:"total_missing"`
	OverallMatchRate float64        `json:"overall_match_rate"`
	ByStatus         map[string]int `json:"by_status"`
}
