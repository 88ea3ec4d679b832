package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	baseDir := t.TempDir()
	storage := NewLocalStorage(baseDir, zap.NewNop())
	ctx := context.Background()

	content := "%PDF-1.4 blood panel"
	filePath, err := storage.Save(ctx, "user_1", "medicalReports-1-abc.pdf", "application/pdf", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(baseDir, "user_1", "medicalReports-1-abc.pdf")), filePath)

	stored, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))

	require.NoError(t, storage.Delete(ctx, filePath))
	_, err = os.Stat(filePath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete(ctx, filePath), "deleting a missing file is not an error")
}

func TestLocalStorageKeepsFilesInsideUserDirectory(t *testing.T) {
	baseDir := t.TempDir()
	storage := NewLocalStorage(baseDir, zap.NewNop())

	filePath, err := storage.Save(context.Background(), "../user_2", "../../escape.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(baseDir, "user_2", "escape.pdf")), filePath)
}
