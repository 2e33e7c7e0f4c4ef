package browse

import (
	"sync"
	"time"

	"digitallibrary/model"
	"digitallibrary/service/catalog"
)

// Catalog is the read side of the catalog store.
type Catalog interface {
	Books() []model.Book
}

// Session is one client's ephemeral browse state: active filters, search term
// and page cursor. It is never persisted; every filter change recomputes the
// filtered subset from the full catalog and resets the cursor to page 1.
type Session struct {
	id       string
	cat      Catalog
	debounce time.Duration

	mu       sync.Mutex
	genre    string
	language string
	search   string
	page     int
	filtered []model.Book

	timer    *time.Timer
	timerSeq uint64 // identity of the pending debounce task
	lastUsed time.Time
}

// State is a read snapshot of a session plus its visible slice.
type State struct {
	ID       string       `json:"id"`
	Genre    string       `json:"genre,omitempty"`
	Language string       `json:"language,omitempty"`
	Search   string       `json:"search,omitempty"`
	Page     int          `json:"page"`
	Total    int          `json:"total"`
	Books    []model.Book `json:"books"`
	HasMore  bool         `json:"has_more"`
}

func newSession(id string, cat Catalog, debounce time.Duration) *Session {
	s := &Session{
		id:       id,
		cat:      cat,
		debounce: debounce,
		page:     1,
		lastUsed: time.Now(),
	}
	s.filtered = catalog.ApplyFilters(cat.Books(), "", "", "")
	return s
}

// SetFilters applies genre and language immediately: the filtered subset is
// recomputed from the full catalog and the page cursor resets to 1. A pending
// debounced search keeps its schedule; its eventual firing recomputes again
// with the filters set here.
func (s *Session) SetFilters(genre, language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genre = genre
	s.language = language
	s.recomputeLocked()
}

// SetSearch schedules a debounced recomputation. Rapid successive calls
// collapse into one: each call cancels the previously scheduled task and only
// the most recent value is ever evaluated.
func (s *Session) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timerSeq++
	seq := s.timerSeq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A newer keystroke superseded this task after it was scheduled.
		if seq != s.timerSeq {
			return
		}
		s.search = q
		s.recomputeLocked()
	})
}

// LoadMore advances the page cursor. It never decrements.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page++
	s.lastUsed = time.Now()
}

// Snapshot returns the current state with the visible slice materialized.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	n := catalog.VisibleCount(len(s.filtered), s.page)
	books := make([]model.Book, n)
	copy(books, s.filtered[:n])

	return State{
		ID:       s.id,
		Genre:    s.genre,
		Language: s.language,
		Search:   s.search,
		Page:     s.page,
		Total:    len(s.filtered),
		Books:    books,
		HasMore:  n < len(s.filtered),
	}
}

// recomputeLocked rebuilds the filtered subset and resets pagination.
// Callers hold s.mu.
func (s *Session) recomputeLocked() {
	s.filtered = catalog.ApplyFilters(s.cat.Books(), s.genre, s.language, s.search)
	s.page = 1
	s.lastUsed = time.Now()
}
