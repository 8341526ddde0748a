// Package naming derives emoji identifiers and categories from file
// paths. Every function here is pure.
package naming

import (
	"path"
	"path/filepath"
	"strings"
)

const categorySep = " - "

var nameReplacer = strings.NewReplacer(
	" ", "_",
	"-", "_",
	".", "",
)

// Name turns a file name (or path) into an emoji identifier: the
// lowercased base name without its trailing extension, with spaces
// and hyphens as underscores and all other dots dropped.
//
// Two different files may map to the same name.
func Name(fileName string) string {
	base := path.Base(filepath.ToSlash(fileName))
	if base == "." || base == "/" {
		return ""
	}
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, path.Ext(base))
	return nameReplacer.Replace(base)
}

// Subcategory flattens the directory part of relPath, a file path
// relative to the scan root, by dropping separators and dots.
// Files at the root have an empty subcategory.
func Subcategory(relPath string) string {
	dir := path.Dir(path.Clean(filepath.ToSlash(relPath)))
	if dir == "." || dir == "/" {
		return ""
	}
	var b strings.Builder
	for _, seg := range strings.Split(dir, "/") {
		b.WriteString(strings.ReplaceAll(seg, ".", ""))
	}
	return b.String()
}

func Category(group, subcategory string) string {
	return group + categorySep + subcategory
}
