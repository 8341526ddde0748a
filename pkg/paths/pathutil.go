package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ValidateRelPath rejects names that cannot be used as an archive
// entry: empty, absolute, NUL-bearing, or escaping the base dir.
func ValidateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("path contains null byte")
	}
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return fmt.Errorf("absolute path not allowed: %s", p)
	}
	cleaned := path.Clean(filepath.ToSlash(p))
	if cleaned == "." {
		return fmt.Errorf("path resolves to current directory")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf(
			"path escapes base directory: %s", p,
		)
	}
	return nil
}

func CleanRelPath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	return p
}

// RelSlash returns full relative to base in slash form.
func RelSlash(base, full string) (string, error) {
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func IsWithinDir(dir, full string) bool {
	rel, err := filepath.Rel(dir, full)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." &&
		!strings.HasPrefix(rel, "../") &&
		!filepath.IsAbs(rel)
}

// Ancestors lists every parent directory of the slash-separated
// relative paths, shallowest first, each exactly once.
func Ancestors(relPaths []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, p := range relPaths {
		dir := path.Dir(CleanRelPath(p))
		if dir == "." {
			continue
		}
		var b strings.Builder
		for i, part := range strings.Split(dir, "/") {
			if i > 0 {
				b.WriteString("/")
			}
			b.WriteString(part)
			d := b.String()
			if !seen[d] {
				seen[d] = true
				result = append(result, d)
			}
		}
	}
	return result
}
