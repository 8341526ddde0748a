package pack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tqbf/emojipack/pkg/paths"
)

type ZipEntry struct {
	Name     string
	Dir      bool
	Size     uint64
	Mode     os.FileMode
	Deflated bool
}

func ListZip(path string) ([]ZipEntry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	entries := make([]ZipEntry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, ZipEntry{
			Name:     f.Name,
			Dir:      strings.HasSuffix(f.Name, "/"),
			Size:     f.UncompressedSize64,
			Mode:     f.Mode(),
			Deflated: f.Method == zip.Deflate,
		})
	}
	return entries, nil
}

// UnpackZip extracts the archive at path into dir and returns the
// number of files written. Entries that would land outside dir are
// rejected.
func UnpackZip(path, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create dir: %w", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	count := 0
	for _, f := range zr.File {
		name := strings.TrimSuffix(f.Name, "/")
		if err := paths.ValidateRelPath(name); err != nil {
			return count, fmt.Errorf("bad entry %q: %w", f.Name, err)
		}

		target := filepath.Join(dir, filepath.FromSlash(name))
		if !paths.IsWithinDir(dir, target) {
			return count, fmt.Errorf(
				"path escapes dir: %s", f.Name,
			)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf(
					"mkdir %s: %w", name, err,
				)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("mkdir parent: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(
		target,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		f.Mode().Perm(),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Name, err)
	}

	_, copyErr := io.Copy(out, rc)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("write %s: %w", f.Name, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", f.Name, closeErr)
	}
	return nil
}
