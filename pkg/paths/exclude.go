package paths

import (
	"path"
	"strings"
)

// ExcludeMatcher decides which entries of a source tree are left out
// of a pack. Patterns without a slash match any single path segment
// ("*.txt", ".git"); patterns with a slash match the whole relative
// path, and "**" spans any number of segments.
type ExcludeMatcher struct {
	patterns []string
}

func NewExcludeMatcher(patterns []string) *ExcludeMatcher {
	var clean []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			clean = append(clean, p)
		}
	}
	return &ExcludeMatcher{patterns: clean}
}

func (m *ExcludeMatcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

func (m *ExcludeMatcher) Match(relPath string) bool {
	if m.Empty() {
		return false
	}
	relPath = CleanRelPath(relPath)
	for _, pat := range m.patterns {
		if matchPattern(pat, relPath) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, relPath string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	if strings.Contains(pattern, "**") {
		return matchDoublestar(pattern, relPath)
	}
	if strings.Contains(pattern, "/") {
		matched, _ := path.Match(pattern, relPath)
		return matched
	}
	for _, seg := range strings.Split(relPath, "/") {
		if matched, _ := path.Match(pattern, seg); matched {
			return true
		}
	}
	return false
}

func matchDoublestar(pattern, relPath string) bool {
	head, tail, _ := strings.Cut(pattern, "**")
	if strings.Contains(tail, "**") {
		return false
	}
	prefix := strings.TrimSuffix(head, "/")
	suffix := strings.TrimPrefix(tail, "/")

	switch {
	case prefix == "" && suffix == "":
		return true
	case prefix == "":
		return matchTail(suffix, relPath)
	case suffix == "":
		return relPath == prefix ||
			strings.HasPrefix(relPath, prefix+"/")
	}
	rest, ok := strings.CutPrefix(relPath, prefix+"/")
	if !ok {
		return false
	}
	return matchTail(suffix, rest)
}

// matchTail reports whether pattern matches any trailing run of
// segments of relPath.
func matchTail(pattern, relPath string) bool {
	segs := strings.Split(relPath, "/")
	for i := range segs {
		tail := strings.Join(segs[i:], "/")
		if matched, _ := path.Match(pattern, tail); matched {
			return true
		}
	}
	return false
}
