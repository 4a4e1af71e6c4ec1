// Package store owns the durable, deduplicated article history: it
// assigns identity at merge time, enforces the retention cap, and writes
// a snapshot after every mutation.
package store

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

// DefaultCap is the retention limit on persisted records.
const DefaultCap = 50

// Snapshot is the durable storage collaborator. Save is best-effort: a
// failed write is logged, never surfaced to callers.
type Snapshot interface {
	Load() ([]model.Article, error)
	Save([]model.Article) error
}

// Patch is an additive-only update to a record's derived-content fields.
// Nil fields are left untouched; fields already set on the record are
// never overwritten.
type Patch struct {
	DeepDive *string
	Image    *model.GeneratedImage
}

type Store struct {
	mu      sync.Mutex
	records []model.Article // newest ingestion first
	snap    Snapshot
	cap     int
	now     func() time.Time
}

// Open rehydrates a store from the snapshot. A failed or corrupt load
// starts with empty history.
func Open(snap Snapshot) *Store {
	s := &Store{snap: snap, cap: DefaultCap, now: time.Now}
	history, err := snap.Load()
	if err != nil {
		log.Printf("store: unreadable snapshot, starting empty: %v", err)
		history = nil
	}
	s.records = history
	return s
}

// SetCap overrides the retention cap. Values below 1 keep the default.
func (s *Store) SetCap(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	s.cap = n
	s.mu.Unlock()
}

// Merge folds a draft list into history. A draft whose title exactly
// matches an existing record is silently dropped (first-seen wins); each
// remaining draft becomes a record with a fresh ID and FetchedAt set to
// the current time. New records are prepended in draft order, the oldest
// surplus beyond the cap is evicted, and the result is persisted. Returns
// the number of records inserted.
func (s *Store) Merge(drafts []model.Draft) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		existing[r.Title] = true
	}

	now := s.now()
	var fresh []model.Article
	for _, d := range drafts {
		if existing[d.Title] {
			continue
		}
		existing[d.Title] = true
		fresh = append(fresh, model.Article{
			ID:            uuid.NewString(),
			Title:         d.Title,
			Summary:       d.Summary,
			Category:      d.Category,
			Source:        d.Source,
			PublishedTime: d.PublishedTime,
			ImageKeyword:  d.ImageKeyword,
			URL:           d.URL,
			FetchedAt:     now,
		})
	}
	if len(fresh) == 0 {
		return 0
	}

	s.records = append(fresh, s.records...)
	s.evict()
	s.persist()
	return len(fresh)
}

// evict drops the oldest records by FetchedAt until the cap holds.
// Callers must hold the mutex.
func (s *Store) evict() {
	if len(s.records) <= s.cap {
		return
	}
	// Records are normally newest-first already, but eviction is defined
	// by ingestion time, so order explicitly before splicing.
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].FetchedAt.After(s.records[j].FetchedAt)
	})
	s.records = s.records[:s.cap]
}

// Patch applies an additive update to the record with the given id and
// persists. Unknown ids and already-populated fields are no-ops.
func (s *Store) Patch(id string, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		changed := false
		if p.DeepDive != nil && s.records[i].DeepDive == "" {
			s.records[i].DeepDive = *p.DeepDive
			changed = true
		}
		if p.Image != nil && s.records[i].Image == nil {
			s.records[i].Image = p.Image
			changed = true
		}
		if changed {
			s.persist()
		}
		return
	}
}

// All returns a copy of the history, newest ingestion first.
func (s *Store) All() []model.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Article, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Article{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// persist writes the snapshot. Callers must hold the mutex.
func (s *Store) persist() {
	if err := s.snap.Save(s.records); err != nil {
		log.Printf("store: snapshot write failed: %v", err)
	}
}
