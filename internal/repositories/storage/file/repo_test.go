package filerepo

import (
	"bytes"
	"docserver/internal/models"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadDelete(t *testing.T) {
	t.Parallel()

	repo := NewRepository(t.TempDir())

	err := repo.SaveFile("key-1", bytes.NewReader([]byte("abc")))
	require.NoError(t, err)

	file, err := repo.LoadFile("key-1")
	require.NoError(t, err)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, []byte("abc"), content)

	require.NoError(t, repo.DeleteFile("key-1"))

	_, err = repo.LoadFile("key-1")
	assert.ErrorIs(t, err, models.ErrVersionNotFound)
}

func TestDeleteFile_Missing(t *testing.T) {
	t.Parallel()

	repo := NewRepository(t.TempDir())

	err := repo.DeleteFile("missing")
	assert.ErrorIs(t, err, models.ErrVersionNotFound)
}

func TestPath_StripsDirectoryComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewRepository(dir)

	err := repo.SaveFile("../escape", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	file, err := repo.LoadFile("escape")
	require.NoError(t, err)
	require.NoError(t, file.Close())
}
