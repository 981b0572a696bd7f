package recents

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	list "github.com/bahlo/generic-list-go"

	"recents-server/internal/logging"
	"recents-server/internal/metrics"
)

// SettingsKey is the settings entry holding the persisted list.
const SettingsKey = "RecentsMRL/list"

// DefaultCapacity is the list bound used when Config.Capacity is not positive.
const DefaultCapacity = 10

const persistTimeout = 5 * time.Second

// ErrInvalidFilter is returned by New when the filter pattern does not compile.
var ErrInvalidFilter = errors.New("invalid recents filter")

// SettingsStore persists string lists by key. A missing key yields a nil
// list and no error.
type SettingsStore interface {
	StringList(ctx context.Context, key string) ([]string, error)
	SetStringList(ctx context.Context, key string, values []string) error
}

// MenuNotifier is told about the current list after it changes.
type MenuNotifier interface {
	UpdateRecents(entries []string)
}

// ShellIntegration forwards played MRLs to the host OS recent-document list.
// Implementations must not block for long and never fail the caller.
type ShellIntegration interface {
	NotifyRecentDocument(mrl string)
}

// Config holds the options read at startup.
type Config struct {
	// Enabled mirrors the qt-recentplay option.
	Enabled bool
	// Filter mirrors qt-recentplay-filter. Empty means no filter.
	Filter string
	// Capacity bounds the list. Zero or negative selects DefaultCapacity.
	Capacity int
}

// List is the bounded MRU list. Use New to create one.
type List struct {
	entries  *list.List[string]
	capacity int
	filter   *regexp.Regexp
	enabled  bool

	store    SettingsStore
	notifier MenuNotifier
	shell    ShellIntegration
}

// New builds a List from cfg and the entries persisted in store.
//
// Persisted entries matching the filter are dropped, as are duplicates and
// anything past the capacity. The trimmed list is not written back; the
// store catches up on the next mutation. If cfg.Enabled is false the list
// is cleared right away.
//
// Nil collaborators are replaced with no-ops.
func New(ctx context.Context, cfg Config, store SettingsStore, notifier MenuNotifier, shell ShellIntegration) (*List, error) {
	filter, err := compileFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if store == nil {
		store = nopStore{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if shell == nil {
		shell = nopShell{}
	}

	l := &List{
		entries:  list.New[string](),
		capacity: capacity,
		filter:   filter,
		enabled:  cfg.Enabled,
		store:    store,
		notifier: notifier,
		shell:    shell,
	}

	l.load(ctx)
	if !l.enabled {
		l.Clear()
	}
	metrics.RecentsEntries.Set(float64(l.entries.Len()))

	return l, nil
}

func compileFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidFilter, pattern, err)
	}
	return re, nil
}

func (l *List) load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	persisted, err := l.store.StringList(ctx, SettingsKey)
	if err != nil {
		logging.Warn("Failed to load recent MRLs, starting empty: %v", err)
		return
	}

	seen := make(map[string]struct{}, len(persisted))
	for _, mrl := range persisted {
		if l.entries.Len() >= l.capacity {
			break
		}
		if l.filtered(mrl) {
			logging.Debug("Dropping filtered recent MRL: %s", mrl)
			continue
		}
		if _, dup := seen[mrl]; dup {
			continue
		}
		seen[mrl] = struct{}{}
		l.entries.PushBack(mrl)
	}
}

func (l *List) filtered(mrl string) bool {
	return l.filter != nil && l.filter.MatchString(mrl)
}

func (l *List) find(mrl string) *list.Element[string] {
	for e := l.entries.Front(); e != nil; e = e.Next() {
		if e.Value == mrl {
			return e
		}
	}
	return nil
}

// AddRecent records mrl as the most recently played entry. It does nothing
// when the list is disabled or mrl matches the filter.
func (l *List) AddRecent(mrl string) {
	if !l.enabled {
		metrics.RecentsAdmissionsTotal.WithLabelValues(metrics.AdmissionDisabled).Inc()
		return
	}
	if l.filtered(mrl) {
		logging.Debug("Recent MRL rejected by filter: %s", mrl)
		metrics.RecentsAdmissionsTotal.WithLabelValues(metrics.AdmissionFiltered).Inc()
		return
	}

	logging.Debug("Adding a new MRL to recent ones: %s", mrl)
	l.shell.NotifyRecentDocument(mrl)

	if e := l.find(mrl); e != nil {
		l.entries.MoveToFront(e)
		metrics.RecentsAdmissionsTotal.WithLabelValues(metrics.AdmissionMoved).Inc()
	} else {
		l.entries.PushFront(mrl)
		if l.entries.Len() > l.capacity {
			l.entries.Remove(l.entries.Back())
		}
		metrics.RecentsAdmissionsTotal.WithLabelValues(metrics.AdmissionAdded).Inc()
	}

	l.notifier.UpdateRecents(l.Snapshot())
	l.save()
}

// Remove drops mrl from the list and reports whether it was present.
func (l *List) Remove(mrl string) bool {
	e := l.find(mrl)
	if e == nil {
		return false
	}
	l.entries.Remove(e)
	metrics.RecentsRemovalsTotal.Inc()

	if l.enabled {
		l.notifier.UpdateRecents(l.Snapshot())
	}
	l.save()
	return true
}

// Clear empties the list. Clearing an empty list has no side effects.
func (l *List) Clear() {
	if l.entries.Len() == 0 {
		return
	}

	l.entries.Init()
	metrics.RecentsClearsTotal.Inc()

	if l.enabled {
		l.notifier.UpdateRecents(l.Snapshot())
	}
	l.save()
}

// SetEnabled switches the list on or off at runtime. Disabling clears it.
func (l *List) SetEnabled(enabled bool) {
	if l.enabled == enabled {
		return
	}
	if !enabled {
		// Notify while still enabled so the menu empties too.
		l.Clear()
	}
	l.enabled = enabled
	logging.Info("Recently played list enabled: %v", enabled)
}

// Snapshot returns a copy of the entries, most recent first.
func (l *List) Snapshot() []string {
	out := make([]string, 0, l.entries.Len())
	for e := l.entries.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

// Enabled reports whether new entries are admitted.
func (l *List) Enabled() bool { return l.enabled }

// Len returns the number of entries.
func (l *List) Len() int { return l.entries.Len() }

// Capacity returns the list bound.
func (l *List) Capacity() int { return l.capacity }

func (l *List) save() {
	metrics.RecentsEntries.Set(float64(l.entries.Len()))

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := l.store.SetStringList(ctx, SettingsKey, l.Snapshot()); err != nil {
		metrics.RecentsPersistErrors.Inc()
		logging.Warn("Failed to save recent MRLs: %v", err)
	}
}

type nopStore struct{}

func (nopStore) StringList(context.Context, string) ([]string, error) { return nil, nil }

func (nopStore) SetStringList(context.Context, string, []string) error { return nil }

type nopNotifier struct{}

func (nopNotifier) UpdateRecents([]string) {}

type nopShell struct{}

func (nopShell) NotifyRecentDocument(string) {}
