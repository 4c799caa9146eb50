package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"proompter/config"
	"proompter/model"

	"github.com/google/uuid"
)

// DialogStore persists one dialog per session key as a JSON array of
// {role, content} records: <dir>/<key>.json.
//
// There is no locking; concurrent invocations under the same session key
// race on Save and the last writer wins. Writes go through a temp file and
// rename, so readers never observe a partial file.
type DialogStore struct {
	dir         string
	maxMessages int
	staleAfter  time.Duration

	// Replaceable in tests.
	now   func() time.Time
	alive func(pid int) bool
}

// NewDialogStore creates a store rooted at dir. The directory is created lazily on Save.
func NewDialogStore(dir string) *DialogStore {
	return &DialogStore{
		dir:         dir,
		maxMessages: config.MaxHistoryMessages,
		staleAfter:  config.PruneAfterDays * 24 * time.Hour,
		now:         time.Now,
		alive:       processAlive,
	}
}

// SessionKey returns the key for the current shell: the parent process id.
func SessionKey() string {
	return strconv.Itoa(os.Getppid())
}

func (s *DialogStore) Dir() string { return s.dir }

// Path returns the dialog file for key.
func (s *DialogStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func validateKey(key string) error {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid session key %q", key)
	}
	return nil
}

// Load returns the persisted dialog for key, or an empty dialog if none exists.
// A file that exists but does not parse yields a *model.CorruptSessionError.
func (s *DialogStore) Load(key string) ([]model.Message, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	path := s.Path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var dialog []model.Message
	if err := json.Unmarshal(data, &dialog); err != nil {
		return nil, &model.CorruptSessionError{Path: path, Err: err}
	}
	for i, msg := range dialog {
		switch msg.Role {
		case model.RoleSystem, model.RoleUser, model.RoleAssistant:
		default:
			return nil, &model.CorruptSessionError{
				Path: path,
				Err:  fmt.Errorf("message %d has unknown role %q", i, msg.Role),
			}
		}
	}
	if dialog == nil {
		dialog = []model.Message{}
	}

	// Files written by older versions may still carry a system prompt.
	return model.WithoutSystem(dialog), nil
}

// Save drops system messages, keeps the most recent messages up to the
// history limit, and atomically replaces the session file.
func (s *DialogStore) Save(key string, dialog []model.Message) error {
	if err := validateKey(key); err != nil {
		return err
	}

	dialog = model.Tail(model.WithoutSystem(dialog), s.maxMessages)

	data, err := json.MarshalIndent(dialog, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal dialog: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}

	tmpPath := filepath.Join(s.dir, fmt.Sprintf(".%s.%s.tmp", key, uuid.New().String()))
	// 0600 - session files contain conversation history
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync session file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	config.Debugf("[Storage] saved %d message(s) to %s", len(dialog), s.Path(key))
	return nil
}

// Reset deletes the session file for key and reports whether one existed.
func (s *DialogStore) Reset(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	err := os.Remove(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete session file: %w", err)
	}
	return true, nil
}

// PruneAll deletes session files whose owning process is gone or whose last
// modification is older than the staleness threshold, plus temp files
// abandoned past the same threshold. The file for activeKey is never touched.
// Returns the number of files removed.
func (s *DialogStore) PruneAll(activeKey string) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read context directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		info, err := entry.Info()
		if err != nil {
			continue // removed concurrently
		}
		stale := s.now().Sub(info.ModTime()) > s.staleAfter

		if strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp") {
			if stale && s.remove(name, "abandoned temp file") {
				removed++
			}
			continue
		}

		key, ok := strings.CutSuffix(name, ".json")
		if !ok || key == activeKey {
			continue
		}
		pid, err := strconv.Atoi(key)
		if err != nil || pid <= 0 {
			continue // not ours
		}

		switch {
		case !s.alive(pid):
			if s.remove(name, fmt.Sprintf("pid %d not running", pid)) {
				removed++
			}
		case stale:
			if s.remove(name, fmt.Sprintf("older than %s", s.staleAfter)) {
				removed++
			}
		}
	}

	return removed, nil
}

func (s *DialogStore) remove(name, reason string) bool {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		config.Debugf("[Storage] failed to prune %s: %v", name, err)
		return false
	}
	config.Debugf("[Storage] pruned %s from %s (%s)", name, s.dir, reason)
	return true
}
