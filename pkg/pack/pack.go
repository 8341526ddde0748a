package pack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tqbf/emojipack/pkg/paths"
)

const (
	DefaultArchiveName = "generated_emotes.zip"

	entryMode = 0755
)

var (
	ErrNotFound = errors.New("not found")

	// Zip timestamps cannot predate 1980.
	entryTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Archive writes every regular file and directory below sourceDir
// into a new zip at destFile and returns the number of files
// written. Entries that cannot be enumerated are skipped, but a
// file that fails to read or write aborts the archive and removes
// destFile.
func Archive(sourceDir, destFile string) (int, error) {
	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, sourceDir)
	}
	walkRoot, err := filepath.EvalSymlinks(sourceDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotFound, sourceDir, err)
	}

	return writeZipFile(destFile, func(zw *zip.Writer) (int, error) {
		destInfo, err := os.Stat(destFile)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", destFile, err)
		}

		count := 0
		err = filepath.WalkDir(
			walkRoot,
			func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					slog.Debug("skip entry", "path", p, "err", err)
					return nil
				}
				rel, err := paths.RelSlash(walkRoot, p)
				if err != nil || rel == "." {
					return nil
				}
				if d.IsDir() {
					return addDirToZip(zw, rel)
				}
				if !d.Type().IsRegular() {
					return nil
				}
				if fi, err := d.Info(); err == nil &&
					os.SameFile(fi, destInfo) {
					return nil
				}
				if err := addFileToZip(zw, p, rel); err != nil {
					return err
				}
				count++
				return nil
			},
		)
		return count, err
	})
}

// PackZip writes the named files of dir, plus an explicit entry for
// each directory above them, to w. It returns the number of files
// written.
func PackZip(
	dir string,
	filePaths []string,
	w io.Writer,
) (int, error) {
	zw := zip.NewWriter(w)
	count, err := packFiles(zw, dir, filePaths)
	if closeErr := zw.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("finish zip: %w", closeErr)
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// PackZipFile is PackZip into a newly created file at destFile.
func PackZipFile(
	dir string,
	filePaths []string,
	destFile string,
) (int, error) {
	return writeZipFile(destFile, func(zw *zip.Writer) (int, error) {
		return packFiles(zw, dir, filePaths)
	})
}

func packFiles(
	zw *zip.Writer,
	dir string,
	filePaths []string,
) (int, error) {
	for _, d := range paths.Ancestors(filePaths) {
		if err := addDirToZip(zw, d); err != nil {
			return 0, err
		}
	}

	count := 0
	for _, rel := range filePaths {
		if err := paths.ValidateRelPath(rel); err != nil {
			return 0, fmt.Errorf("invalid path %s: %w", rel, err)
		}
		rel = paths.CleanRelPath(rel)
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if !paths.IsWithinDir(dir, abs) {
			return 0, fmt.Errorf("path escapes dir: %s", rel)
		}
		if err := addFileToZip(zw, abs, rel); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// writeZipFile creates destFile, lets fill populate it and closes
// the zip writer exactly once. On any failure destFile is removed.
func writeZipFile(
	destFile string,
	fill func(*zip.Writer) (int, error),
) (count int, err error) {
	f, err := os.Create(destFile)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", destFile, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", destFile, closeErr)
		}
		if err != nil {
			count = 0
			os.Remove(destFile)
		}
	}()

	zw := zip.NewWriter(f)
	count, err = fill(zw)
	if closeErr := zw.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("finish zip: %w", closeErr)
	}
	return count, err
}

func addDirToZip(zw *zip.Writer, rel string) error {
	hdr := &zip.FileHeader{
		Name:     rel + "/",
		Method:   zip.Store,
		Modified: entryTime,
	}
	hdr.SetMode(fs.ModeDir | entryMode)
	if _, err := zw.CreateHeader(hdr); err != nil {
		return fmt.Errorf("write dir entry %s: %w", rel, err)
	}
	slog.Debug("added dir", "entry", rel)
	return nil
}

func addFileToZip(
	zw *zip.Writer,
	absPath, relPath string,
) error {
	f, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", relPath, err)
	}
	defer f.Close()

	hdr := &zip.FileHeader{
		Name:     relPath,
		Method:   zip.Deflate,
		Modified: entryTime,
	}
	hdr.SetMode(entryMode)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header %s: %w", relPath, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write body %s: %w", relPath, err)
	}
	slog.Debug("added file", "entry", relPath, "path", absPath)
	return nil
}
