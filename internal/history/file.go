package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Earthpatel/Business-Operations-Bot/internal/utils"
)

// FileStore keeps the transcript as an indented JSON array on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on first Append.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the transcript file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() ([]Message, error) {
	msgs, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []Message{GreetingMessage()}, nil
	}
	return msgs, nil
}

func (s *FileStore) read() ([]Message, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", s.path, err)
	}
	return msgs, nil
}

func (s *FileStore) Append(msgs ...Message) error {
	all, err := s.Load()
	if err != nil {
		return err
	}
	return s.save(append(all, msgs...))
}

func (s *FileStore) save(msgs []Message) error {
	if err := utils.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(msgs)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.path, data)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
