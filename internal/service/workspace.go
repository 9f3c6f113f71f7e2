package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"sync"

	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/repository"
	"github.com/Talha76/memorize-words/internal/scoring"
	"github.com/Talha76/memorize-words/internal/study"
	"github.com/Talha76/memorize-words/internal/wordfile"

	"go.uber.org/zap"
)

// Upload is a file handed in by a front end. A nil *Upload means no file was selected.
type Upload struct {
	Name     string
	MIMEType string
	Body     io.Reader
}

// WorkspaceService applies learner events to stored workspaces.
// Domain failures end up in the workspace error slot; only store failures are returned.
type WorkspaceService struct {
	repo        repository.WorkspaceRepository
	partitioner *scoring.Partitioner
	logger      *zap.Logger

	// Per-owner locks so events of one owner apply in order.
	// An entry lives only while someone holds or waits for it.
	locks    map[string]*ownerLock
	locksMux sync.Mutex
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	repo repository.WorkspaceRepository,
	partitioner *scoring.Partitioner,
	logger *zap.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		repo:        repo,
		partitioner: partitioner,
		logger:      logger,
		locks:       make(map[string]*ownerLock),
	}
}

func (s *WorkspaceService) lock(owner string) func() {
	s.locksMux.Lock()
	lock, exists := s.locks[owner]
	if !exists {
		lock = &ownerLock{}
		s.locks[owner] = lock
	}
	lock.refs++
	s.locksMux.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.locksMux.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, owner)
		}
		s.locksMux.Unlock()
	}
}

func (s *WorkspaceService) load(ctx context.Context, owner string) (study.Workspace, error) {
	w, err := s.repo.Get(ctx, owner)
	if err != nil {
		return study.Workspace{}, fmt.Errorf("load workspace: %w", err)
	}
	if w == nil {
		return study.New(), nil
	}
	return *w, nil
}

// update loads the owner's workspace, applies fn and saves the result
func (s *WorkspaceService) update(ctx context.Context, owner string, fn func(study.Workspace) study.Workspace) (View, error) {
	unlock := s.lock(owner)
	defer unlock()

	w, err := s.load(ctx, owner)
	if err != nil {
		return View{}, err
	}

	next := fn(w)
	if err := s.repo.Save(ctx, owner, next); err != nil {
		return View{}, fmt.Errorf("save workspace: %w", err)
	}

	return NewView(next), nil
}

// View returns the owner's current screen
func (s *WorkspaceService) View(ctx context.Context, owner string) (View, error) {
	unlock := s.lock(owner)
	defer unlock()

	w, err := s.load(ctx, owner)
	if err != nil {
		return View{}, err
	}
	return NewView(w), nil
}

// Upload parses a word file and starts studying it.
// A rejected file leaves the current workspace as it was and sets the error slot.
func (s *WorkspaceService) Upload(ctx context.Context, owner string, upload *Upload) (View, error) {
	records, readErr := readUpload(upload)

	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		if readErr != nil {
			s.logger.Info("Upload rejected",
				zap.String("owner", owner),
				zap.Error(readErr),
			)
			return w.WithError(domain.UserMessage(readErr))
		}

		s.logger.Info("Word file loaded",
			zap.String("owner", owner),
			zap.String("file", upload.Name),
			zap.Int("pairs", len(records)),
		)
		return w.Load(records, s.partitioner)
	})
}

func readUpload(upload *Upload) ([]domain.PairRecord, error) {
	if upload == nil || upload.Body == nil {
		return nil, domain.ErrNoFileSelected
	}

	mediaType, _, err := mime.ParseMediaType(upload.MIMEType)
	if err != nil || mediaType != wordfile.MIMEType {
		return nil, domain.ErrWrongFileType
	}

	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, &domain.FileReadError{Err: err}
	}

	return wordfile.Parse(string(data))
}

// Reveal toggles the translation of the current card
func (s *WorkspaceService) Reveal(ctx context.Context, owner string) (View, error) {
	return s.update(ctx, owner, study.Workspace.ToggleReveal)
}

// Answer records a correct or wrong answer for the current card
func (s *WorkspaceService) Answer(ctx context.Context, owner string, correct bool) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		return w.RecordAnswer(correct)
	})
}

// Navigate moves to the previous or next card
func (s *WorkspaceService) Navigate(ctx context.Context, owner string, dir study.Direction) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		return w.Navigate(dir)
	})
}

// Finish ends the pass over the current pool
func (s *WorkspaceService) Finish(ctx context.Context, owner string) (View, error) {
	return s.update(ctx, owner, study.Workspace.Finish)
}

// PracticeRemaining studies the pairs that were held back
func (s *WorkspaceService) PracticeRemaining(ctx context.Context, owner string) (View, error) {
	return s.update(ctx, owner, study.Workspace.PracticeRemaining)
}

// AddWords switches to add-words mode
func (s *WorkspaceService) AddWords(ctx context.Context, owner string) (View, error) {
	return s.update(ctx, owner, study.Workspace.AddWords)
}

// AddPair adds a "word = translation" entry typed by the learner.
// Blank input and input outside add-words mode are ignored.
func (s *WorkspaceService) AddPair(ctx context.Context, owner, text string) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		if w.Phase != study.PhaseAddingWords || strings.TrimSpace(text) == "" {
			return w
		}

		record, err := wordfile.ParseManual(text)
		if err != nil {
			return w.WithError(domain.UserMessage(err))
		}
		return w.AddPair(record)
	})
}

// DeletePair removes every pair with these exact texts
func (s *WorkspaceService) DeletePair(ctx context.Context, owner, primary, secondary string) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		return w.DeletePair(primary, secondary)
	})
}

// DeleteAdded removes the pair at index i of the added list, along with every
// pair sharing its texts. An index past the end is ignored.
func (s *WorkspaceService) DeleteAdded(ctx context.Context, owner string, i int) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		if i < 0 || i >= len(w.Added) {
			return w
		}
		r := w.Added[i]
		return w.DeletePair(r.Primary, r.Secondary)
	})
}

// StartNewSession re-partitions all pairs by their updated scores
func (s *WorkspaceService) StartNewSession(ctx context.Context, owner string) (View, error) {
	return s.update(ctx, owner, func(w study.Workspace) study.Workspace {
		return w.StartNewSession(s.partitioner)
	})
}

// Reset drops the owner's workspace and returns to the upload screen
func (s *WorkspaceService) Reset(ctx context.Context, owner string) (View, error) {
	unlock := s.lock(owner)
	defer unlock()

	if err := s.repo.Delete(ctx, owner); err != nil {
		return View{}, fmt.Errorf("delete workspace: %w", err)
	}
	return NewView(study.New()), nil
}

// Export renders every pair with its updated stats in word file format.
// The second result is false when there is nothing to export.
func (s *WorkspaceService) Export(ctx context.Context, owner string) (string, bool, error) {
	unlock := s.lock(owner)
	defer unlock()

	w, err := s.load(ctx, owner)
	if err != nil {
		return "", false, err
	}

	records := w.Records()
	if len(records) == 0 {
		return "", false, nil
	}
	return wordfile.Serialize(records), true, nil
}

// Summary counts the owner's pairs per pool
func (s *WorkspaceService) Summary(ctx context.Context, owner string) (scoring.Summary, error) {
	unlock := s.lock(owner)
	defer unlock()

	w, err := s.load(ctx, owner)
	if err != nil {
		return scoring.Summary{}, err
	}
	return scoring.Summarize(w.Records()), nil
}
