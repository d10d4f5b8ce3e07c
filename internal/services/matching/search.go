package matching

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

// debouncedSearch coalesces rapid query updates into one upstream call per
// debounce window. Each issued call carries a monotonically increasing
// sequence number; a response is dropped unless its sequence is still the
// latest issued, so a slow early response can never overwrite a newer one.
type debouncedSearch struct {
	mu sync.Mutex

	api      ReceiptAPI
	debounce time.Duration
	limit    int

	timer      *time.Timer
	issuedSeq  uint64
	candidates []model.RequestCandidate
}

func newDebouncedSearch(api ReceiptAPI, debounce time.Duration, limit int) *debouncedSearch {
	return &debouncedSearch{
		api:      api,
		debounce: debounce,
		limit:    limit,
	}
}

func (d *debouncedSearch) Schedule(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if query == "" {
		d.candidates = nil
		d.timer = nil
		return
	}
	d.timer = time.AfterFunc(d.debounce, func() {
		d.run(query)
	})
}

func (d *debouncedSearch) run(query string) {
	d.mu.Lock()
	d.issuedSeq++
	seq := d.issuedSeq
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := d.api.SearchRequestCandidates(ctx, query, d.limit)
	if err != nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.issuedSeq {
		// A newer search was issued while this one was in flight.
		return
	}
	d.candidates = results
}

func (d *debouncedSearch) Candidates() []model.RequestCandidate {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.RequestCandidate, len(d.candidates))
	copy(out, d.candidates)
	return out
}
