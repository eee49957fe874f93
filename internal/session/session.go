// Package session owns the live transcription state of one project. A session
// holds an exclusive lock on the project so only one process mutates the
// state at a time; every change is written back to the store immediately.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/store"
	"github.com/aidanlsb/scribe/internal/tei"
)

// StateKey is the versioned key of the persisted state blob. Changing the
// blob layout means changing the key; old blobs are then ignored.
const StateKey = "transcription_data_v4"

// LockFile is the lock file name inside the project's private directory.
const LockFile = "session.lock"

// ErrSessionBusy indicates another process holds the project lock.
var ErrSessionBusy = errors.New("another scribe session is using this project")

// Options configures a session.
type Options struct {
	Logger *zap.Logger
}

// Session is the single owner of a project's state.
type Session struct {
	dir    string
	lock   *flock.Flock
	store  *store.Store
	logger *zap.Logger
	state  model.State

	// fresh is set when no saved state existed at Open.
	fresh bool
}

// Open locks the project at dir, opens its store and loads the state.
// A second concurrent Open on the same project fails with ErrSessionBusy.
func Open(ctx context.Context, dir string, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	private := filepath.Join(dir, store.DirName)
	if err := os.MkdirAll(private, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", store.DirName, err)
	}

	lock := flock.New(filepath.Join(private, LockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrSessionBusy
	}

	st, err := store.Open(dir)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	s := &Session{dir: dir, lock: lock, store: st, logger: logger}
	s.state = s.load(ctx)
	return s, nil
}

// LastSaved reports when the state of the project at dir was last written,
// without taking the session lock. The zero time means nothing was saved yet.
func LastSaved(ctx context.Context, dir string) (time.Time, error) {
	path := filepath.Join(dir, store.DirName, store.FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	st, err := store.OpenPath(path)
	if err != nil {
		return time.Time{}, err
	}
	defer st.Close()

	at, err := st.UpdatedAt(ctx, StateKey)
	if errors.Is(err, store.ErrNotFound) {
		return time.Time{}, nil
	}
	return at, err
}

// load restores the persisted state. Missing or unreadable data is never an
// error: the session starts from the default state instead.
func (s *Session) load(ctx context.Context) model.State {
	blob, err := s.store.Get(ctx, StateKey)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("no saved state, starting fresh", zap.String("project", s.dir))
		s.fresh = true
		return model.DefaultState()
	}
	if err != nil {
		s.logger.Warn("failed to read saved state", zap.Error(err))
		return model.DefaultState()
	}

	var st model.State
	if err := json.Unmarshal(blob, &st); err != nil {
		s.logger.Warn("failed to load saved data, starting from defaults",
			zap.String("key", StateKey),
			zap.Error(err),
		)
		return model.DefaultState()
	}
	return st.Normalize()
}

// Dir returns the project directory.
func (s *Session) Dir() string {
	return s.dir
}

// Fresh reports whether the project had no saved state when opened.
func (s *Session) Fresh() bool {
	return s.fresh
}

// State returns the current state.
func (s *Session) State() model.State {
	return s.state
}

// Apply runs one mutation. On error the state is left untouched. On success
// the new state replaces the old one and is persisted; a persistence failure
// is logged, not returned.
func (s *Session) Apply(ctx context.Context, fn func(model.State) (model.State, error)) (model.State, error) {
	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.replace(ctx, next)
	return s.state, nil
}

// Import replaces the whole state with the contents of a TEI document. A
// document that cannot be read leaves the state unchanged.
func (s *Session) Import(ctx context.Context, text string) (model.State, error) {
	next, err := tei.Import(text)
	if err != nil {
		s.logger.Warn("import failed", zap.Error(err))
		return s.state, err
	}
	s.replace(ctx, next)
	return s.state, nil
}

// Reset discards everything and starts over from the default state.
func (s *Session) Reset(ctx context.Context) model.State {
	s.replace(ctx, s.state.Reset())
	return s.state
}

func (s *Session) replace(ctx context.Context, next model.State) {
	s.state = next
	s.persist(ctx)
}

func (s *Session) persist(ctx context.Context) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Error("failed to encode state", zap.Error(err))
		return
	}
	if err := s.store.Put(ctx, StateKey, blob); err != nil {
		s.logger.Error("failed to save state", zap.String("path", s.store.Path()), zap.Error(err))
		return
	}
	s.logger.Debug("state saved", zap.Int("entries", len(s.state.Entries)), zap.Int("bytes", len(blob)))
}

// Close releases the store and the project lock.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	storeErr := s.store.Close()
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release session lock", zap.Error(err))
		return err
	}
	return storeErr
}
