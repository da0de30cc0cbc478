package depletion

import (
	"sort"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// View is the read-only side of a Registry handed to presentation code
type View interface {
	IsDepleted(key domain.NodeKey) bool
	Record(key domain.NodeKey) (domain.DepletionRecord, bool)
	Records() []domain.DepletionRecord
	Successes(key domain.NodeKey) int
}

// Registry tracks which nodes are exhausted and how many harvests each live node has yielded.
//
// A node's success counter restarts from zero whenever it is depleted or respawns.
// Respawn timing is owned by the caller; the registry only stores RespawnAt.
type Registry struct {
	mu        sync.RWMutex
	records   map[domain.NodeKey]domain.DepletionRecord
	successes map[domain.NodeKey]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		records:   make(map[domain.NodeKey]domain.DepletionRecord),
		successes: make(map[domain.NodeKey]int),
	}
}

// IsDepleted reports whether key currently has a depletion record
func (r *Registry) IsDepleted(key domain.NodeKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[key]
	return ok
}

// Record returns the depletion record for key
func (r *Registry) Record(key domain.NodeKey) (domain.DepletionRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	return rec, ok
}

// Records returns every depletion record ordered by key
func (r *Registry) Records() []domain.DepletionRecord {
	r.mu.RLock()
	out := make([]domain.DepletionRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	sortRecords(out)
	return out
}

// Due returns the records whose respawn time has passed, ordered by key
func (r *Registry) Due(now time.Time) []domain.DepletionRecord {
	r.mu.RLock()
	var out []domain.DepletionRecord
	for _, rec := range r.records {
		if rec.RespawnDue(now) {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sortRecords(out)
	return out
}

// Successes returns the consecutive successful harvests on key since its last respawn
func (r *Registry) Successes(key domain.NodeKey) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.successes[key]
}

// RecordSuccess bumps the success counter of a live node and returns the new count.
// Harvests reported against a depleted node are not counted.
func (r *Registry) RecordSuccess(key domain.NodeKey) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, depleted := r.records[key]; depleted {
		return 0
	}
	r.successes[key]++
	return r.successes[key]
}

// Deplete inserts rec and resets the node's counter.
// It returns false and keeps the existing record when the node is already depleted.
func (r *Registry) Deplete(rec domain.DepletionRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.Key]; exists {
		return false
	}
	r.records[rec.Key] = rec
	delete(r.successes, rec.Key)
	return true
}

// Respawn removes the record for key and resets its counter.
// Applying it to a live node is a no-op and returns false.
func (r *Registry) Respawn(key domain.NodeKey) (domain.DepletionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return domain.DepletionRecord{}, false
	}
	delete(r.records, key)
	delete(r.successes, key)
	return rec, true
}

// Reset forgets every record and counter
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[domain.NodeKey]domain.DepletionRecord)
	r.successes = make(map[domain.NodeKey]int)
}

func sortRecords(recs []domain.DepletionRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Key.X != recs[j].Key.X {
			return recs[i].Key.X < recs[j].Key.X
		}
		return recs[i].Key.Y < recs[j].Key.Y
	})
}
