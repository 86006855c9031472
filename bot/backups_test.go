package bot

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func archivedNames(t *testing.T, archive string) []string {
	t.Helper()
	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()

	xzr, err := xz.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(xzr)

	names := []string{}
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return names
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
}

func TestBackups(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	b.backupDir = filepath.Join(t.TempDir(), "backups")
	b.backupFile = "honkbot.db"

	require.Equal(t, "Created DDR Rival GOOSE!", rivalCmd(t, b, b.ddr, "1", "create goose 1234-5678"))
	require.NoError(t, b.createBackup())

	backups, err := listBackups(b.backupDir, b.backupFile)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	created := backups[0].Name()
	assert.True(t, strings.HasPrefix(created, "honkbot.db.20"))

	older := "honkbot.db.2026-01-01_12-00-00"
	require.NoError(t, os.WriteFile(filepath.Join(b.backupDir, older), []byte("old"), 0o644))
	ts := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(b.backupDir, older), ts, ts))
	// unrelated files stay untouched
	require.NoError(t, os.WriteFile(filepath.Join(b.backupDir, "notes.txt"), []byte("honk"), 0o644))

	backups, err = listBackups(b.backupDir, b.backupFile)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	expected := archiveName(backups)

	require.NoError(t, b.compressBackups())

	archives, err := filepath.Glob(filepath.Join(b.backupDir, archivePrefix+"*"+archiveSuffix))
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, expected, filepath.Base(archives[0]))
	assert.Equal(t, []string{older, created}, archivedNames(t, archives[0]))

	backups, err = listBackups(b.backupDir, b.backupFile)
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.FileExists(t, filepath.Join(b.backupDir, "notes.txt"))

	// nothing left to compress
	require.NoError(t, b.compressBackups())
}

func TestPrintDailyStatistics(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	require.Equal(t, "Created IIDX Rival DJ!", rivalCmd(t, b, b.iidx, "1", "create dj 1234-5678"))
	assert.NoError(t, b.printDailyStatistics())
}

func TestPrintDailyStatisticsClosedDB(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	require.NoError(t, b.db.Close())
	assert.Error(t, b.printDailyStatistics())
}

func TestSchedulerShutdownWaitsForBackup(t *testing.T) {
	t.Parallel()
	b := newTestBot(t)
	b.backupDir = filepath.Join(t.TempDir(), "backups")
	b.backupFile = "honkbot.db"

	scheduler, err := newScheduler()
	require.NoError(t, err)

	started := make(chan struct{})
	_, err = scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(func() {
			close(started)
			time.Sleep(100 * time.Millisecond)
			_ = b.createBackup()
		}),
	)
	require.NoError(t, err)

	scheduler.Start()
	<-started
	require.NoError(t, scheduler.Shutdown())

	backups, err := listBackups(b.backupDir, b.backupFile)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
