package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Talha76/memorize-words/internal/study"
)

// WorkspaceRepo implements repository.WorkspaceRepository
type WorkspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepo creates a new workspace repository
func NewWorkspaceRepo(db *sql.DB) *WorkspaceRepo {
	return &WorkspaceRepo{db: db}
}

// Get loads the owner's workspace, nil if there is none
func (r *WorkspaceRepo) Get(ctx context.Context, owner string) (*study.Workspace, error) {
	var state []byte
	query := `SELECT state FROM workspaces WHERE owner = $1`
	err := r.db.QueryRowContext(ctx, query, owner).Scan(&state)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var w study.Workspace
	if err := json.Unmarshal(state, &w); err != nil {
		return nil, fmt.Errorf("decode workspace %q: %w", owner, err)
	}
	return &w, nil
}

// Save upserts the owner's workspace and bumps updated_at
func (r *WorkspaceRepo) Save(ctx context.Context, owner string, w study.Workspace) error {
	state, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode workspace %q: %w", owner, err)
	}

	query := `
		INSERT INTO workspaces (owner, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner)
		DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query, owner, state)
	return err
}

// Delete removes the owner's workspace
func (r *WorkspaceRepo) Delete(ctx context.Context, owner string) error {
	query := `DELETE FROM workspaces WHERE owner = $1`
	_, err := r.db.ExecContext(ctx, query, owner)
	return err
}

// DeleteIdle removes workspaces not updated within idle
func (r *WorkspaceRepo) DeleteIdle(ctx context.Context, idle time.Duration) (int64, error) {
	query := `
		DELETE FROM workspaces
		WHERE updated_at < NOW() - INTERVAL '1 second' * $1
	`
	res, err := r.db.ExecContext(ctx, query, int64(idle.Seconds()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
