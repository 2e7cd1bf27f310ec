// Package board coordinates layout state for one dashboard surface: which
// category is showing, which chart items it holds, and the per-tier
// arrangements driving the frontend.
//
// The board owns the persistence lifecycle. Loads are asynchronous and
// last-request-wins: defaults render immediately while the saved state is
// fetched, and a stale fetch result is discarded if the user has already
// switched category. Saves are debounced whole-state overwrites - the store
// never sees a partial update. Store failures are absorbed: the session
// continues on generated defaults and the failure is only logged.
package board

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	dgerrors "github.com/dashgrid/dashgrid/pkg/errors"
	"github.com/dashgrid/dashgrid/pkg/layout"
	"github.com/dashgrid/dashgrid/pkg/observability"
	"github.com/dashgrid/dashgrid/pkg/store"
)

// ErrBoardClosed is returned when an operation is attempted after Close.
var ErrBoardClosed = errors.New("board: closed")

// ErrLoadInFlight is returned when an edit arrives while a persisted layout
// is still being fetched. The frontend is locked during that window, so this
// only happens when a caller bypasses the lock signal.
var ErrLoadInFlight = errors.New("board: layout load in flight")

// saveTimeout bounds a single persistence write.
const saveTimeout = 5 * time.Second

// Config configures a Board. Zero-value fields fall back to safe defaults:
// a store that persists nothing, the built-in templates, a no-op frontend,
// and a discarded logger.
type Config struct {
	Store     store.Store
	Templates *layout.Registry
	Frontend  Frontend
	Logger    *log.Logger

	// SaveDelay is the debounce window for persisting edits.
	// Zero means DefaultSaveDelay.
	SaveDelay time.Duration
}

// Board is the persistence and breakpoint coordinator for one surface.
// All methods are safe for concurrent use.
type Board struct {
	store store.Store
	reg   *layout.Registry
	front Frontend
	log   *log.Logger
	saver *Debouncer

	mu       sync.Mutex
	category string
	itemIDs  []string
	layouts  layout.Responsive

	// loadToken identifies the in-flight load. A fetch result is only
	// committed when its token still matches; switching category mints a
	// new token, which orphans the older fetch.
	loadToken string

	closed bool
}

// New creates a board.
func New(cfg Config) *Board {
	if cfg.Store == nil {
		cfg.Store = store.NewNullStore()
	}
	if cfg.Templates == nil {
		cfg.Templates = layout.BuiltinRegistry()
	}
	if cfg.Frontend == nil {
		cfg.Frontend = NoopFrontend{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Board{
		store: cfg.Store,
		reg:   cfg.Templates,
		front: cfg.Frontend,
		log:   cfg.Logger,
		saver: NewDebouncer(cfg.SaveDelay),
	}
}

// ShowCategory switches the board to a category with the given chart items.
// Generated defaults are pushed to the frontend immediately and the surface
// is locked; the saved arrangement is fetched in the background and, when it
// arrives and this request is still the latest, reconciled against the item
// set and pushed as the final state.
//
// Calling ShowCategory again before the previous load resolves supersedes
// it: the older result is discarded no matter when it arrives.
func (b *Board) ShowCategory(ctx context.Context, category string, itemIDs []string) error {
	if err := dgerrors.ValidateCategory(category); err != nil {
		return err
	}

	ids := slices.Clone(itemIDs)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBoardClosed
	}
	tpl, _ := b.reg.Template(category)
	provisional := layout.GenerateAll(ids, tpl)
	token := uuid.NewString()

	b.category = category
	b.itemIDs = ids
	b.layouts = provisional
	b.loadToken = token
	b.mu.Unlock()

	for _, tier := range breakpoint.Tiers() {
		observability.Layout().OnGenerate(ctx, category, tier.Name, len(ids))
	}

	b.front.SetLocked(true)
	b.front.ApplyLayouts(provisional.Clone())

	go b.load(ctx, category, ids, token, tpl)
	return nil
}

// load fetches the persisted state for a category and commits it if this
// request is still the latest. Runs on its own goroutine.
func (b *Board) load(ctx context.Context, category string, ids []string, token string, tpl *layout.Template) {
	key := store.LayoutKey(category)

	var persisted layout.Responsive
	data, hit, err := b.store.Get(ctx, key)
	switch {
	case err != nil:
		// Fail open: the generated defaults already on screen stand.
		b.log.Warn("layout load failed, keeping defaults", "category", category, "err", err)
	case hit:
		observability.Store().OnHit(ctx, key)
		persisted, err = layout.UnmarshalResponsive(data)
		if err != nil {
			b.log.Warn("saved layouts unreadable, keeping defaults", "category", category, "err", err)
			persisted = nil
		}
	default:
		observability.Store().OnMiss(ctx, key)
	}

	b.mu.Lock()
	if b.closed || token != b.loadToken {
		// Superseded. The request that replaced this one owns the frontend
		// lock now.
		b.mu.Unlock()
		return
	}
	b.loadToken = ""

	if persisted == nil {
		b.mu.Unlock()
		b.front.SetLocked(false)
		return
	}

	merged := layout.PatchAll(persisted, ids, tpl)
	b.layouts = merged
	snapshot := merged.Clone()
	b.mu.Unlock()

	for _, tier := range breakpoint.Tiers() {
		kept := countKept(persisted[tier.Name], ids)
		observability.Layout().OnPatch(ctx, category, tier.Name, kept, len(ids)-kept)
	}

	b.front.ApplyLayouts(snapshot)
	b.front.SetLocked(false)
}

// countKept counts persisted entries that survive reconciliation with the
// current item set (stale ids and duplicates do not).
func countKept(persisted layout.Layout, ids []string) int {
	current := make(map[string]bool, len(ids))
	for _, id := range ids {
		current[id] = true
	}
	kept := 0
	for _, it := range persisted {
		if current[it.ID] {
			kept++
			delete(current, it.ID)
		}
	}
	return kept
}

// ApplyEdit accepts a user drag or resize as a full candidate state: every
// tier, every item. The candidate is verified against the current item set
// per tier, normalized per tier, committed, pushed back to the frontend,
// and scheduled for a debounced save.
func (b *Board) ApplyEdit(ctx context.Context, candidate layout.Responsive) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBoardClosed
	}
	if b.loadToken != "" {
		b.mu.Unlock()
		return ErrLoadInFlight
	}

	normalized := make(layout.Responsive, len(breakpoint.Tiers()))
	for _, tier := range breakpoint.Tiers() {
		l, ok := candidate[tier.Name]
		if !ok {
			b.mu.Unlock()
			return dgerrors.New(dgerrors.ErrCodeInvalidLayout, "edit missing tier %q", tier.Name)
		}
		if err := verifyIDSet(l, b.itemIDs); err != nil {
			b.mu.Unlock()
			return dgerrors.Wrap(dgerrors.ErrCodeInvalidLayout, err, "edit rejected for tier %q", tier.Name)
		}
		normalized[tier.Name] = layout.Normalize(l.Clone(), tier.Cols)
	}

	b.layouts = normalized
	snapshot := normalized.Clone()
	b.mu.Unlock()

	b.front.ApplyLayouts(snapshot)
	b.saver.Trigger(b.persist)
	return nil
}

// verifyIDSet checks that a tier layout covers exactly the current item set:
// no omissions, no strangers, no duplicates.
func verifyIDSet(l layout.Layout, ids []string) error {
	if len(l) != len(ids) {
		return dgerrors.New(dgerrors.ErrCodeInvalidLayout, "%d items, want %d", len(l), len(ids))
	}
	current := make(map[string]bool, len(ids))
	for _, id := range ids {
		current[id] = true
	}
	seen := make(map[string]bool, len(l))
	for _, it := range l {
		if !current[it.ID] {
			return dgerrors.New(dgerrors.ErrCodeInvalidLayout, "unknown item %q", it.ID)
		}
		if seen[it.ID] {
			return dgerrors.New(dgerrors.ErrCodeInvalidLayout, "duplicate item %q", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

// CrossBreakpoint handles the viewport moving into a tier. If the tier
// already has a usable arrangement nothing happens. A missing or degenerate
// tier is regenerated from defaults, announced to the frontend, and
// persisted immediately - regeneration is not an edit burst, so the
// debounce is skipped.
func (b *Board) CrossBreakpoint(ctx context.Context, tierName string) error {
	cols, ok := breakpoint.Columns(tierName)
	if !ok {
		return dgerrors.New(dgerrors.ErrCodeInvalidTier, "unknown tier %q", tierName)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBoardClosed
	}

	l, exists := b.layouts[tierName]
	if exists && !layout.IsDegenerate(l, cols) {
		b.mu.Unlock()
		return nil
	}
	degenerate := exists

	var tpl *layout.Template
	if tierName == breakpoint.Widest().Name {
		tpl, _ = b.reg.Template(b.category)
	}
	if b.layouts == nil {
		b.layouts = make(layout.Responsive)
	}
	b.layouts[tierName] = layout.Generate(b.itemIDs, cols, tpl)

	category := b.category
	itemCount := len(b.itemIDs)
	snapshot := b.layouts.Clone()
	b.mu.Unlock()

	if degenerate {
		observability.Layout().OnDegenerate(ctx, category, tierName)
	}
	observability.Layout().OnGenerate(ctx, category, tierName, itemCount)

	b.front.ResetNotice(tierName)
	b.front.ApplyLayouts(snapshot)

	b.saver.Cancel()
	b.persist()
	return nil
}

// persist writes the current whole state to the store. Failures are logged
// and dropped; the in-memory state remains authoritative for the session.
func (b *Board) persist() {
	b.mu.Lock()
	if b.closed || b.category == "" {
		b.mu.Unlock()
		return
	}
	category := b.category
	data, err := layout.MarshalResponsive(b.layouts)
	b.mu.Unlock()

	if err != nil {
		b.log.Error("marshal layouts", "category", category, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	key := store.LayoutKey(category)
	if err := b.store.Set(ctx, key, data); err != nil {
		b.log.Warn("layout save dropped", "category", category, "err", err)
		return
	}
	observability.Store().OnSet(ctx, key, len(data))
}

// Flush forces any pending debounced save to run now.
func (b *Board) Flush() {
	b.saver.Cancel()
	b.persist()
}

// Category returns the currently shown category.
func (b *Board) Category() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.category
}

// ItemIDs returns the current item set.
func (b *Board) ItemIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.itemIDs)
}

// Layouts returns a deep copy of the current per-tier arrangements.
func (b *Board) Layouts() layout.Responsive {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layouts.Clone()
}

// Loading reports whether a persisted-layout fetch is still in flight.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadToken != ""
}

// Close cancels any pending save and stops the board. No store writes
// happen after Close returns; an orphaned load result is discarded.
// The underlying store is not closed - the caller owns it.
func (b *Board) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.saver.Cancel()
	return nil
}
