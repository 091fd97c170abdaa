package reconciliation

import (
	"github.com/savegress/ledgermatch/pkg/models"
)

// Reconciler pairs records from two independently sourced transaction
// groups. Matching is at-most-once per record on either side and the output
// sequences preserve input order.
type Reconciler struct {
	matcher Matcher
}

// NewReconciler creates a reconciler using the given matcher
func NewReconciler(matcher Matcher) *Reconciler {
	return &Reconciler{matcher: matcher}
}

// Reconcile annotates every record of both groups as FOUND or MISSING.
//
// Group A is scanned in input order; each record takes the first unused
// record of group B, in B's input order, that the matcher accepts.
// First-fit is deliberate: picking the nearest date instead would change
// observable output whenever several candidates sit inside the tolerance
// window. Group B's statuses fall out of the used markers. The call is
// pure: it allocates its own bookkeeping and never mutates its inputs.
func (r *Reconciler) Reconcile(groupA, groupB []models.Transaction) (models.ReconciliationResult, error) {
	usedB := make([]bool, len(groupB))
	matched := 0

	annotatedA := make([]models.AnnotatedRecord, 0, len(groupA))
	for _, a := range groupA {
		status := models.StatusMissing
		for j, b := range groupB {
			if usedB[j] {
				continue
			}
			if r.matcher.Match(a, b) {
				usedB[j] = true
				matched++
				status = models.StatusFound
				break
			}
		}
		annotatedA = append(annotatedA, models.Annotate(a, status))
	}

	annotatedB := make([]models.AnnotatedRecord, 0, len(groupB))
	usedCount := 0
	for j, b := range groupB {
		status := models.StatusMissing
		if usedB[j] {
			usedCount++
			status = models.StatusFound
		}
		annotatedB = append(annotatedB, models.Annotate(b, status))
	}

	// A violated invariant here is a programming bug, not bad input.
	if matched > len(groupA) || matched > len(groupB) || usedCount != matched {
		return models.ReconciliationResult{}, ErrBookkeeping
	}

	return models.ReconciliationResult{GroupA: annotatedA, GroupB: annotatedB}, nil
}

// Errors
var (
	ErrBatchNotFound = &Error{Code: "BATCH_NOT_FOUND", Message: "Batch not found"}
	ErrBookkeeping   = &Error{Code: "BOOKKEEPING", Message: "Match bookkeeping is inconsistent with input size"}
)

// Error represents a reconciliation error
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
