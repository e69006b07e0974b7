package storage_test

import (
	"context"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markuskoenig271/asiaspanel/pkg/storage"
)

func TestLocalStoreSaveReturnsServableURL(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "tts_abc.mp3", []byte("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/tts_abc.mp3", url)

	data, err := afero.ReadFile(fs, "storage/tts_abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../evil.mp3", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/evil.mp3", url)

	exists, err := afero.Exists(fs, "storage/evil.mp3")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStoreOverwriteByNameIsAllowed(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "same.mp3", []byte("first"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "same.mp3", []byte("second"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "storage/same.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestLocalStoreHTTPFileSystemServesSavedFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalStore(fs, "storage")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "tts_abc.mp3", []byte("audio-bytes"))
	require.NoError(t, err)

	file, err := store.HTTPFileSystem().Open("/tts_abc.mp3")
	require.NoError(t, err)
	defer func() { require.NoError(t, file.Close()) }()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)
}
