package projects

import (
	"sync"
	"time"

	"github.com/launchpad-labs/project-starter/internal/generation"
)

// Registry keeps one Form per browser session. Nothing is persisted.
type Registry struct {
	generator generation.Generator
	now       func() time.Time

	mu    sync.Mutex
	forms map[string]*entry
}

type entry struct {
	form     *Form
	lastUsed time.Time
}

func NewRegistry(generator generation.Generator) *Registry {
	return &Registry{
		generator: generator,
		now:       time.Now,
		forms:     make(map[string]*entry),
	}
}

// Get returns the form for sessionID, creating an empty one if needed.
func (r *Registry) Get(sessionID string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[sessionID]
	if !ok {
		e = &entry{form: NewForm(r.generator)}
		r.forms[sessionID] = e
	}
	e.lastUsed = r.now()
	return e.form
}

// Reset replaces the form for sessionID with an empty one. A form with a
// request in flight is kept as is, so its result still lands and a second
// submission stays rejected until it finishes.
func (r *Registry) Reset(sessionID string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.forms[sessionID]; ok && e.form.State().Loading {
		e.lastUsed = r.now()
		return e.form
	}

	e := &entry{form: NewForm(r.generator), lastUsed: r.now()}
	r.forms[sessionID] = e
	return e.form
}

// Drop forgets the form for sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, sessionID)
}

// Prune drops forms idle for longer than idle and not loading. Returns how many were removed.
func (r *Registry) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, e := range r.forms {
		if e.lastUsed.Before(cutoff) && !e.form.State().Loading {
			delete(r.forms, id)
			removed++
		}
	}
	return removed
}

// Len reports how many forms are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}
