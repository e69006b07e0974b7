package config

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Document is the panel configuration the frontend edits: which voice the
// speech endpoints should use and which language translations default to.
// It is replaced wholesale on every update; the last writer wins.
type Document struct {
	SelectedVoice         string `json:"selectedVoice"`
	DefaultTargetLanguage string `json:"defaultTargetLanguage"`
}

// DefaultDocument matches what the panel ships with before anyone saves.
func DefaultDocument() Document {
	return Document{
		SelectedVoice:         "default",
		DefaultTargetLanguage: "en",
	}
}

// Store holds the single panel Document. Implementations must be safe for
// concurrent use; there is deliberately no compare-and-swap, concurrent
// replaces race and whichever lands last sticks.
type Store interface {
	Get() Document
	Replace(doc Document) error
}

// MemStore keeps the document in memory only. Used in tests and as the
// building block for FileStore.
type MemStore struct {
	mu  sync.RWMutex
	doc Document
}

func NewMemStore(initial Document) *MemStore {
	return &MemStore{doc: initial}
}

func (s *MemStore) Get() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

func (s *MemStore) Replace(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	return nil
}

// FileStore persists the document as JSON under the storage directory
// (config.json in the original deployment). The file is read once at
// construction; every Replace rewrites it completely.
type FileStore struct {
	fs   afero.Fs
	path string
	mem  MemStore
}

// NewFileStore loads path from fs, falling back to initial when the file
// does not exist yet. A malformed file is an error - better to refuse
// startup than to silently clobber someone's saved settings.
func NewFileStore(fs afero.Fs, path string, initial Document) (*FileStore, error) {
	store := &FileStore{fs: fs, path: path}
	store.mem.doc = initial

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &store.mem.doc); jsonErr != nil {
			return nil, errors.Wrapf(jsonErr, "cannot parse config document %s", path)
		}
		log.Debug().Str("path", path).Str("selected_voice", store.mem.doc.SelectedVoice).Msg("config document loaded")
	case isNotExist(fs, path):
		log.Debug().Str("path", path).Msg("no config document yet, using defaults")
	default:
		return nil, errors.Wrapf(err, "cannot read config document %s", path)
	}

	return store, nil
}

func (s *FileStore) Get() Document {
	return s.mem.Get()
}

func (s *FileStore) Replace(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode config document")
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write config document %s", s.path)
	}
	return s.mem.Replace(doc)
}

func isNotExist(fs afero.Fs, path string) bool {
	exists, err := afero.Exists(fs, path)
	return err == nil && !exists
}
