package services

import "sync"

// BatchFailure records one skipped record inside a best-effort write loop.
// Records that exist in the database report their ID; generated matches that
// never got a row report their draw reference (for example "R2M1") instead,
// since an order number alone is ambiguous across rounds.
type BatchFailure struct {
	ID     int    `json:"id,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Reason string `json:"reason"`
}

// BatchResult is the explicit outcome of a per-record persistence pass:
// which records were written and which were skipped. A failed record is
// logged and skipped rather than aborting the pass, since a half-written
// draw is recoverable by re-running generation.
type BatchResult struct {
	Succeeded []int          `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`

	mu sync.Mutex
}

func (b *BatchResult) ok(id int) {
	b.mu.Lock()
	b.Succeeded = append(b.Succeeded, id)
	b.mu.Unlock()
}

func (b *BatchResult) fail(id int, err error) {
	b.mu.Lock()
	b.Failed = append(b.Failed, BatchFailure{ID: id, Reason: err.Error()})
	b.mu.Unlock()
}

func (b *BatchResult) failRef(ref string, err error) {
	b.mu.Lock()
	b.Failed = append(b.Failed, BatchFailure{Ref: ref, Reason: err.Error()})
	b.mu.Unlock()
}

func (b *BatchResult) FailedCount() int {
	return len(b.Failed)
}
