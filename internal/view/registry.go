package view

import (
	"context"
	"sync"

	"emotiguide/internal/catalog"
	"emotiguide/internal/guidance"
	"emotiguide/internal/session"
)

// Registry owns one Controller per profile.
type Registry struct {
	sessions *session.Registry
	guidance guidance.Client
	catalog  *catalog.Catalog
	opts     Options

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewRegistry creates controllers on demand for stores of sessions.
func NewRegistry(sessions *session.Registry, client guidance.Client, c *catalog.Catalog, opts Options) *Registry {
	return &Registry{
		sessions:    sessions,
		guidance:    client,
		catalog:     c,
		opts:        opts,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller of profile, loading its session store first.
func (r *Registry) Get(ctx context.Context, profile string) (*Controller, error) {
	store, err := r.sessions.Get(ctx, profile)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.controllers[store.Profile()]
	if !ok {
		ctrl = NewController(store, r.guidance, r.catalog, r.opts)
		r.controllers[store.Profile()] = ctrl
	}
	return ctrl, nil
}

// Wait blocks until every controller's background work has finished.
func (r *Registry) Wait() {
	r.mu.Lock()
	controllers := make([]*Controller, 0, len(r.controllers))
	for _, ctrl := range r.controllers {
		controllers = append(controllers, ctrl)
	}
	r.mu.Unlock()

	for _, ctrl := range controllers {
		ctrl.Wait()
	}
}
