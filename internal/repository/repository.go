package repository

import (
	"context"
	"time"

	"github.com/Talha76/memorize-words/internal/study"
)

// WorkspaceRepository stores the live study workspace of each owner
type WorkspaceRepository interface {
	// Get returns nil when the owner has no workspace
	Get(ctx context.Context, owner string) (*study.Workspace, error)
	Save(ctx context.Context, owner string, w study.Workspace) error
	Delete(ctx context.Context, owner string) error
	// DeleteIdle removes workspaces not saved for longer than idle and returns how many
	DeleteIdle(ctx context.Context, idle time.Duration) (int64, error)
}
