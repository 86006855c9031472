package bot

import (
	"archive/tar"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

const (
	backupTimeLayout = "2006-01-02_15-04-05"
	archivePrefix    = "backups."
	archiveSuffix    = ".tar.xz"
)

// createBackup writes a consistent copy of the rival database next to the
// previous backups.
func (b *Bot) createBackup() (err error) {
	name := backupName(b.backupFile, time.Now())
	log.Printf("creating backup: %s", name)
	defer func() {
		if err != nil {
			log.Printf("error while creating backup %s: %v", name, err)
		} else {
			log.Printf("backup %s created", name)
		}
	}()

	err = os.MkdirAll(b.backupDir, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	_, err = b.db.ExecContext(b.ctx, "VACUUM INTO ?", filepath.Join(b.backupDir, name))
	return err
}

func backupName(file string, now time.Time) string {
	return fmt.Sprintf("%s.%s", file, now.Format(backupTimeLayout))
}

// compressBackups moves every uncompressed backup into a single xz
// compressed tar archive named after the oldest and newest backup.
func (b *Bot) compressBackups() (err error) {
	log.Println("compressing backups")
	defer func() {
		if err != nil {
			log.Printf("error while compressing backups: %v", err)
		}
	}()

	backups, err := listBackups(b.backupDir, b.backupFile)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		log.Println("no backups found to compress")
		return nil
	}

	archive := filepath.Join(b.backupDir, archiveName(backups))
	err = writeArchive(archive, b.backupDir, backups)
	if err != nil {
		return errors.Join(err, os.Remove(archive))
	}

	for _, info := range backups {
		err = os.Remove(filepath.Join(b.backupDir, info.Name()))
		if err != nil {
			return fmt.Errorf("failed to remove backup file: %w", err)
		}
	}
	log.Printf("compressed %d backups into %s", len(backups), archive)
	return nil
}

// listBackups returns the uncompressed backup files sorted from oldest to newest.
func listBackups(dir, prefix string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]fs.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info: %w", err)
		}
		backups = append(backups, info)
	}

	slices.SortFunc(backups, func(a, b fs.FileInfo) int {
		return cmp.Or(
			a.ModTime().Compare(b.ModTime()),
			cmp.Compare(a.Name(), b.Name()),
		)
	})
	return backups, nil
}

func archiveName(backups []fs.FileInfo) string {
	var (
		first = backups[0].ModTime().Format(backupTimeLayout)
		last  = backups[len(backups)-1].ModTime().Format(backupTimeLayout)
	)
	return archivePrefix + first + "_" + last + archiveSuffix
}

func writeArchive(archive, dir string, backups []fs.FileInfo) (err error) {
	f, err := os.Create(archive)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	xzw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	for _, info := range backups {
		err = addFile(tw, dir, info)
		if err != nil {
			return errors.Join(err, tw.Close(), xzw.Close())
		}
	}

	// the tar footer must be flushed before the xz stream is closed
	err = tw.Close()
	if err != nil {
		return errors.Join(err, xzw.Close())
	}
	return xzw.Close()
}

func addFile(tw *tar.Writer, dir string, info fs.FileInfo) error {
	file, err := os.Open(filepath.Join(dir, info.Name()))
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to create tar header of %s: %w", info.Name(), err)
	}
	hdr.Name = info.Name()

	err = tw.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to write tar header of %s: %w", info.Name(), err)
	}
	_, err = io.Copy(tw, file)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", info.Name(), err)
	}
	return nil
}
