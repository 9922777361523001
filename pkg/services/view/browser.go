// Package view holds the per-page view-models. Each page owns exactly one
// model; all of its state mutates through the model's methods so invariants
// like "the current result is cleared when its session is deleted" live in
// one place instead of scattered page code.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/builder"
	"github.com/de-tools/stat-atlas/pkg/services/session"
)

// ErrStaleResponse marks a fetch whose result arrived after a newer action
// superseded it. The response is discarded; newer state is never
// overwritten by a slow fetch.
var ErrStaleResponse = errors.New("stale response discarded")

// Fetcher is the slice of the analysis client a session browser needs.
type Fetcher interface {
	ListSessions(ctx context.Context, q analysis.ListQuery) ([]domain.AnalysisSession, *api.Pagination, error)
	GetSession(ctx context.Context, id int) (map[string]any, error)
	DeleteSession(ctx context.Context, id int) error
}

// SessionBrowser is the view-model of one history page: the filtered
// session list, the selected session and its canonical result. Every
// network fetch carries a generation token; a response only applies while
// its token is still current.
type SessionBrowser struct {
	mu sync.Mutex

	kind     domain.AnalysisKind
	fetcher  Fetcher
	debounce time.Duration

	searchText  string
	searchTimer *time.Timer

	// baseCtx bounds fetches the browser starts on its own (debounced
	// refreshes); Close cancels it so no fetch outlives the page.
	baseCtx context.Context
	cancel  context.CancelFunc

	listToken   uint64
	detailToken uint64

	sessions   []domain.AnalysisSession
	selectedID int
	current    domain.AnalysisResult
}

func NewSessionBrowser(fetcher Fetcher, kind domain.AnalysisKind, debounce time.Duration) *SessionBrowser {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionBrowser{
		kind:     kind,
		fetcher:  fetcher,
		debounce: debounce,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Close stops any pending debounced refresh and abandons one already in
// flight. The browser must not be used afterwards.
func (b *SessionBrowser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.searchTimer != nil {
		b.searchTimer.Stop()
	}
	b.cancel()
}

// Refresh re-fetches the session list, applying the defensive kind filter.
func (b *SessionBrowser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.listToken++
	token := b.listToken
	query := analysis.ListQuery{Kind: b.kind, Search: b.searchText}
	b.mu.Unlock()

	sessions, _, err := b.fetcher.ListSessions(ctx, query)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.listToken {
		return ErrStaleResponse
	}
	b.sessions = session.Filter(sessions, b.kind)
	return nil
}

// SetSearch records the text and schedules a debounced refresh: the timer
// restarts on every keystroke so only the last pending refresh runs.
func (b *SessionBrowser) SetSearch(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.searchText = text
	if b.searchTimer != nil {
		b.searchTimer.Stop()
	}
	b.searchTimer = time.AfterFunc(b.debounce, func() {
		// Refresh's own token guard handles the race with explicit
		// refreshes triggered meanwhile.
		_ = b.Refresh(b.baseCtx)
	})
}

// Select fetches one session's detail and installs its canonical result. A
// response for a session the user has already navigated away from is
// rejected.
func (b *SessionBrowser) Select(ctx context.Context, id int) error {
	b.mu.Lock()
	b.detailToken++
	token := b.detailToken
	b.selectedID = id
	b.mu.Unlock()

	raw, err := b.fetcher.GetSession(ctx, id)
	if err != nil {
		return err
	}
	result, err := builder.Build(ctx, b.kind, raw, id)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.detailToken || b.selectedID != id {
		return ErrStaleResponse
	}
	b.current = result
	return nil
}

// Delete removes the session remotely and clears any in-memory result that
// referenced it, which would otherwise be stale.
func (b *SessionBrowser) Delete(ctx context.Context, id int) error {
	if err := b.fetcher.DeleteSession(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.sessions[:0]
	for _, s := range b.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	b.sessions = kept
	if b.current != nil && b.current.Header().SessionID == id {
		b.current = nil
		b.selectedID = 0
	}
	return nil
}

// Current returns the active canonical result, or nil when no session is
// selected; the page renders an explicit empty state for nil.
func (b *SessionBrowser) Current() domain.AnalysisResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *SessionBrowser) Sessions() []domain.AnalysisSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.AnalysisSession, len(b.sessions))
	copy(out, b.sessions)
	return out
}
