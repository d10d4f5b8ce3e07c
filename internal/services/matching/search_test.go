package matching

import (
	"testing"
	"time"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
)

func waitFor(t *testing.T, timeout time.Duration, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSearchDebounceCollapsesRapidQueries(t *testing.T) {
	api := &stubAPI{
		searchResults: map[string][]model.RequestCandidate{
			"kim": {{RequestID: 42, UserName: "Kim"}},
		},
	}
	search := newDebouncedSearch(api, 20*time.Millisecond, 20)

	search.Schedule("k")
	search.Schedule("ki")
	search.Schedule("kim")

	waitFor(t, time.Second, func() bool {
		return len(search.Candidates()) == 1
	})

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.searchCalls) != 1 || api.searchCalls[0] != "kim" {
		t.Fatalf("rapid queries must collapse to the final one, got %v", api.searchCalls)
	}
}

func TestSearchDiscardsStaleResponse(t *testing.T) {
	slowRelease := make(chan struct{})
	api := &stubAPI{
		searchResults: map[string][]model.RequestCandidate{
			"old": {{RequestID: 1, UserName: "Old"}},
			"new": {{RequestID: 2, UserName: "New"}},
		},
		searchBlock: map[string]chan struct{}{
			"old": slowRelease,
		},
	}
	search := newDebouncedSearch(api, time.Millisecond, 20)

	// Issue the slow query first, then the fast one; release the slow
	// response only after the fast one has landed.
	go search.run("old")
	waitFor(t, time.Second, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.searchCalls) == 1
	})

	search.run("new")
	waitFor(t, time.Second, func() bool {
		candidates := search.Candidates()
		return len(candidates) == 1 && candidates[0].RequestID == 2
	})

	close(slowRelease)
	time.Sleep(20 * time.Millisecond)

	candidates := search.Candidates()
	if len(candidates) != 1 || candidates[0].RequestID != 2 {
		t.Fatalf("late stale response must be discarded, got %+v", candidates)
	}
}

func TestSearchEmptyQueryClearsCandidates(t *testing.T) {
	api := &stubAPI{
		searchResults: map[string][]model.RequestCandidate{
			"kim": {{RequestID: 42}},
		},
	}
	search := newDebouncedSearch(api, time.Millisecond, 20)

	search.Schedule("kim")
	waitFor(t, time.Second, func() bool {
		return len(search.Candidates()) == 1
	})

	search.Schedule("   ")
	if got := search.Candidates(); len(got) != 0 {
		t.Fatalf("blank query must clear candidates without a call, got %+v", got)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.searchCalls) != 1 {
		t.Fatalf("blank query must not hit the upstream, got %v", api.searchCalls)
	}
}
