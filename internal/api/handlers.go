package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/savegress/ledgermatch/internal/config"
	"github.com/savegress/ledgermatch/internal/csvio"
	"github.com/savegress/ledgermatch/internal/lineio"
	"github.com/savegress/ledgermatch/internal/reconciliation"
	"github.com/savegress/ledgermatch/pkg/models"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	config    *config.Config
	reconcile *reconciliation.Engine
	reader    csvio.Reader
}

// NewHandlers creates new handlers
func NewHandlers(cfg *config.Config, recon *reconciliation.Engine) *Handlers {
	return &Handlers{
		config:    cfg,
		reconcile: recon,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ledgermatch",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Batch handlers

type createBatchRequest struct {
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	GroupA     [][]string `json:"group_a,omitempty"`
	GroupB     [][]string `json:"group_b,omitempty"`
	GroupAFile string     `json:"group_a_file,omitempty"`
	GroupBFile string     `json:"group_b_file,omitempty"`
}

// CreateBatch creates a reconciliation batch and runs it. Each group is
// supplied either as inline raw rows or as the name of a CSV file under the
// configured data directory.
func (h *Handlers) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req createBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	groupA, err := h.loadGroup(req.GroupA, req.GroupAFile)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("group_a: %v", err))
		return
	}
	groupB, err := h.loadGroup(req.GroupB, req.GroupBFile)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("group_b: %v", err))
		return
	}

	maxSize := h.config.Reconciliation.MaxGroupSize
	if len(groupA) > maxSize || len(groupB) > maxSize {
		respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("group size exceeds limit of %d records", maxSize))
		return
	}

	source := req.Source
	if source == "" {
		source = "group-a"
	}
	target := req.Target
	if target == "" {
		target = "group-b"
	}

	batch := h.reconcile.CreateBatch(source, target)
	if err := h.reconcile.Run(r.Context(), batch.ID, groupA, groupB); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	batch, _ = h.reconcile.GetBatch(batch.ID)
	respond(w, http.StatusCreated, batch)
}

func (h *Handlers) loadGroup(rows [][]string, fileName string) ([]models.Transaction, error) {
	if len(rows) > 0 && fileName != "" {
		return nil, errors.New("provide inline rows or a file name, not both")
	}

	if fileName != "" {
		path, err := h.resolveFeedPath(fileName)
		if err != nil {
			return nil, err
		}
		return h.reader.ReadFile(path)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		txn, err := models.TransactionFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

func (h *Handlers) resolveFeedPath(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("file name must be relative to the data directory")
	}
	return filepath.Join(h.config.Data.Dir, clean), nil
}

// ListBatches lists reconciliation batches
func (h *Handlers) ListBatches(w http.ResponseWriter, r *http.Request) {
	filter := reconciliation.BatchFilter{
		Limit: 100,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = models.BatchStatus(status)
	}
	if source := r.URL.Query().Get("source"); source != "" {
		filter.Source = source
	}
	if target := r.URL.Query().Get("target"); target != "" {
		filter.Target = target
	}

	batches := h.reconcile.GetBatches(filter)
	respond(w, http.StatusOK, batches)
}

// GetBatch gets a batch by ID
func (h *Handlers) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	batch, ok := h.reconcile.GetBatch(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	respond(w, http.StatusOK, batch)
}

// GetBatchResults gets the annotated output of a completed batch
func (h *Handlers) GetBatchResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.reconcile.GetBatch(id); !ok {
		respondError(w, http.StatusNotFound, "Batch not found")
		return
	}

	result, ok := h.reconcile.GetResult(id)
	if !ok {
		respondError(w, http.StatusConflict, "Batch has no results yet")
		return
	}

	respond(w, http.StatusOK, result)
}

// TailFeedFile returns the trailing lines of a feed file under the data
// directory, for inspecting incoming data without loading the whole file.
func (h *Handlers) TailFeedFile(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	count := 10
	if raw := r.URL.Query().Get("lines"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "lines must be a positive integer")
			return
		}
		count = n
	}

	path, err := h.resolveFeedPath(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := lineio.LastLines(path, count)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"file":  name,
		"lines": lines,
	})
}

// GetStats gets reconciliation statistics
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.reconcile.GetStats()
	respond(w, http.StatusOK, stats)
}

// Helper functions

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
