package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Talha76/memorize-words/internal/study"
)

type entry struct {
	workspace study.Workspace
	updatedAt time.Time
}

// WorkspaceRepo implements repository.WorkspaceRepository in process memory
type WorkspaceRepo struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewWorkspaceRepo creates an empty in-memory repository
func NewWorkspaceRepo() *WorkspaceRepo {
	return &WorkspaceRepo{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the owner's workspace or nil
func (r *WorkspaceRepo) Get(_ context.Context, owner string) (*study.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[owner]
	if !ok {
		return nil, nil
	}
	w := e.workspace
	return &w, nil
}

// Save replaces the owner's workspace
func (r *WorkspaceRepo) Save(_ context.Context, owner string, w study.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[owner] = entry{workspace: w, updatedAt: r.now()}
	return nil
}

// Delete removes the owner's workspace
func (r *WorkspaceRepo) Delete(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, owner)
	return nil
}

// DeleteIdle removes workspaces saved more than idle ago
func (r *WorkspaceRepo) DeleteIdle(_ context.Context, idle time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	var removed int64
	for owner, e := range r.entries {
		if e.updatedAt.Before(cutoff) {
			delete(r.entries, owner)
			removed++
		}
	}
	return removed, nil
}
