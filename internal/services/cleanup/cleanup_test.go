package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("mp3"), 0o644))
	old := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, old, old))
	return path
}

func TestSweepRemovesOldAnnouncements(t *testing.T) {
	dir := t.TempDir()

	oldFile := writeFileAged(t, dir, "ai-host-1700000000000.mp3", 48*time.Hour)
	freshFile := writeFileAged(t, dir, "ai-host-1700000099999.mp3", time.Minute)
	otherFile := writeFileAged(t, dir, "jingle.mp3", 48*time.Hour)

	svc := NewService(dir, "ai-host", 24*time.Hour, time.Hour)
	svc.sweep()

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, freshFile)
	assert.FileExists(t, otherFile, "files the pipeline did not produce are left alone")
}

func TestSweepMissingDirIsNoop(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "does-not-exist"), "", 24*time.Hour, time.Hour)
	svc.sweep()
}

func TestStartStop(t *testing.T) {
	svc := NewService(t.TempDir(), "", 24*time.Hour, 10*time.Millisecond)
	svc.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	svc.Stop()
}
