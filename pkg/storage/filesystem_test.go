package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadStoreSaveAndResolve(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	locator, err := store.SaveStream("course1_notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "course1_notes.pdf", locator)

	abs, err := store.Resolve(locator)
	require.NoError(t, err)
	assert.True(t, store.Exists(abs))

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}

func TestUploadStoreResolveRejectsTraversal(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	for _, stored := range []string{
		"../outside.txt",
		"sub/../../outside.txt",
		"..\\windows\\style.txt",
	} {
		_, err := store.Resolve(stored)
		assert.ErrorIs(t, err, ErrOutsideRoot, stored)
	}
}

func TestUploadStoreResolveRejectsForeignAbsolutePath(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Resolve(filepath.Join(os.TempDir(), "elsewhere.pdf"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestUploadStoreResolveNormalisesBackslashes(t *testing.T) {
	store, err := NewUploadStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveStream("course2_slides.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	abs, err := store.Resolve("course2_slides.pdf")
	require.NoError(t, err)
	assert.True(t, store.Exists(abs))
}
