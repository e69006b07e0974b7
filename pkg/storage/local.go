package storage

import (
	"context"
	"net/http"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// urlPrefix is where the HTTP layer mounts the storage directory.
const urlPrefix = "/storage"

// LocalStore writes audio files into a directory on an afero filesystem.
// Tests hand in a MemMapFs; production uses the OS filesystem.
type LocalStore struct {
	fs  afero.Fs
	dir string
}

func NewLocalStore(fs afero.Fs, dir string) (*LocalStore, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "cannot create storage dir %s", dir)
	}
	return &LocalStore{fs: fs, dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	// Strip any path components so a crafted name cannot escape the dir.
	name = filepath.Base(name)

	target := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, target, data, 0644); err != nil {
		return "", errors.Wrapf(err, "cannot write %s", target)
	}
	log.Debug().Str("path", target).Int("byte_size", len(data)).Msg("stored audio locally")
	return path.Join(urlPrefix, name), nil
}

// HTTPFileSystem exposes the storage directory for the /storage route, so
// the URLs returned by Save resolve against the same process.
func (s *LocalStore) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.dir))
}
