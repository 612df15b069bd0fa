package widget

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is an in-process Registrar.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]*Widget
}

func NewRegistry() *Registry {
	return &Registry{widgets: map[string]*Widget{}}
}

func (r *Registry) RegisterWidget(meta Metadata, w *Widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.widgets[meta.IDBase]; ok {
		return fmt.Errorf("widget %q already registered", meta.IDBase)
	}
	r.widgets[meta.IDBase] = w
	return nil
}

func (r *Registry) Get(idBase string) (*Widget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[idBase]
	return w, ok
}

// List returns the registered widgets ordered by id base.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Metadata, 0, len(r.widgets))
	for _, w := range r.widgets {
		list = append(list, w.meta)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].IDBase < list[j].IDBase })
	return list
}
