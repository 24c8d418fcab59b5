package scheduler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/branch-analytics-api/internal/config"
)

func newCleanupService(t *testing.T, maxAgeHours int) (*UploadCleanupService, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Upload.Dir = dir
	cfg.UploadCleanup.CronSchedule = "0 * * * *"
	cfg.UploadCleanup.MaxAgeHours = maxAgeHours
	cfg.UploadCleanup.Enabled = true

	return NewUploadCleanupService(cfg), dir
}

func writeFileAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	return path
}

func TestUploadCleanupService_RemovesExpiredFiles(t *testing.T) {
	service, dir := newCleanupService(t, 6)

	old := writeFileAged(t, dir, "old.xlsx", 8*time.Hour)
	fresh := writeFileAged(t, dir, "fresh.xlsx", 1*time.Hour)

	service.cleanupUploads()

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestUploadCleanupService_KeepsDirectories(t *testing.T) {
	service, dir := newCleanupService(t, 6)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mtime := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(sub, mtime, mtime))

	service.cleanupUploads()

	_, err := os.Stat(sub)
	assert.NoError(t, err)
}

func TestUploadCleanupService_MissingDirIsNotAnError(t *testing.T) {
	cfg := &config.Config{}
	cfg.Upload.Dir = filepath.Join(t.TempDir(), "does-not-exist")
	cfg.UploadCleanup.Enabled = true

	service := NewUploadCleanupService(cfg)
	service.cleanupUploads()

	assert.False(t, service.cleanupRunning)
}
