// Package autosave debounces editor auto-saves. Each draft key gets one timer; every Touch
// restarts it and only the latest snapshot is written once the editor goes quiet.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DefaultDelay = 5 * time.Second

var (
	ErrClosed      = errors.New("autosave: manager closed")
	ErrUnknownKind = errors.New("autosave: unknown draft kind")
)

var saves = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brainhints_autosave_saves_total",
	Help: "Auto-save attempts by draft kind and result (saved, skipped, failed).",
}, []string{"kind", "result"})

// Draft is the editor state at the time of a change.
type Draft struct {
	Kind     string
	ID       string
	Title    string
	Disabled bool // auto-save switched off in the editor
	Data     any
}

func (d Draft) Key() string { return Key(d.Kind, d.ID) }

func Key(kind, id string) string { return kind + ":" + id }

// SaveFunc persists one draft. It receives the Data given to Touch.
type SaveFunc func(ctx context.Context, d Draft) error

type entry struct {
	draft Draft
	gen   uint64
	timer *time.Timer
}

type Manager struct {
	delay       time.Duration
	saveTimeout time.Duration

	mu      sync.Mutex
	savers  map[string]SaveFunc
	pending map[string]*entry
	closed  bool
}

func NewManager(delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Manager{
		delay:       delay,
		saveTimeout: 30 * time.Second,
		savers:      map[string]SaveFunc{},
		pending:     map[string]*entry{},
	}
}

// Register installs the saver for a draft kind such as "article".
func (m *Manager) Register(kind string, fn SaveFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savers[kind] = fn
}

func (m *Manager) Kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.savers))
	for k := range m.savers {
		out = append(out, k)
	}
	return out
}

// Touch records a change and restarts the draft's timer.
func (m *Manager) Touch(d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.savers[d.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	key := d.Key()
	e, ok := m.pending[key]
	if !ok {
		e = &entry{}
		m.pending[key] = e
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.gen++
	e.draft = d

	gen := e.gen
	e.timer = time.AfterFunc(m.delay, func() { m.fire(key, gen) })
	return nil
}

// Pending reports whether a save is waiting for the key.
func (m *Manager) Pending(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[key]
	return ok
}

// Flush saves the pending draft now. It returns false when nothing was saved.
func (m *Manager) Flush(ctx context.Context, key string) (bool, error) {
	d, ok := m.take(key, 0)
	if !ok {
		return false, nil
	}
	return m.save(ctx, d)
}

// FlushAll saves every pending draft; used on shutdown.
func (m *Manager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	keys := make([]string, 0, len(m.pending))
	for k := range m.pending {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	for _, k := range keys {
		if _, err := m.Flush(ctx, k); err != nil {
			log.Printf("[Autosave] flush %s on shutdown failed: %v", k, err)
		}
	}
}

// Cancel drops a pending save, e.g. when the editor is closed without changes worth keeping.
func (m *Manager) Cancel(key string) bool {
	_, ok := m.take(key, 0)
	return ok
}

// Close stops every timer. Pending drafts are discarded; call FlushAll first to keep them.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for k, e := range m.pending {
		e.timer.Stop()
		delete(m.pending, k)
	}
}

func (m *Manager) fire(key string, gen uint64) {
	d, ok := m.take(key, gen)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	defer cancel()
	if _, err := m.save(ctx, d); err != nil {
		log.Printf("[Autosave] %s: %v", key, err)
	}
}

// take removes the entry for key. A non-zero gen must match, so a timer that lost the race
// with a newer Touch never saves.
func (m *Manager) take(key string, gen uint64) (Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.pending[key]
	if !ok || (gen != 0 && e.gen != gen) {
		return Draft{}, false
	}
	e.timer.Stop()
	delete(m.pending, key)
	return e.draft, true
}

func (m *Manager) save(ctx context.Context, d Draft) (bool, error) {
	if d.Disabled || strings.TrimSpace(d.Title) == "" {
		saves.WithLabelValues(d.Kind, "skipped").Inc()
		return false, nil
	}

	m.mu.Lock()
	fn := m.savers[d.Kind]
	m.mu.Unlock()

	if err := fn(ctx, d); err != nil {
		saves.WithLabelValues(d.Kind, "failed").Inc()
		return false, fmt.Errorf("save %s: %w", d.Key(), err)
	}
	saves.WithLabelValues(d.Kind, "saved").Inc()
	log.Printf("[Autosave] saved %s", d.Key())
	return true, nil
}

func IsErrClosed(err error) bool      { return errors.Is(err, ErrClosed) }
func IsErrUnknownKind(err error) bool { return errors.Is(err, ErrUnknownKind) }
