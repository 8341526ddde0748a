package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludeBareName(t *testing.T) {
	m := NewExcludeMatcher([]string{"drafts"})
	assert.True(t, m.Match("drafts"))
	assert.True(t, m.Match("animals/drafts"))
	assert.True(t, m.Match("drafts/cat.png"))
	assert.False(t, m.Match("drafts.png"))
}

func TestExcludeTrailingSlash(t *testing.T) {
	m := NewExcludeMatcher([]string{"old/"})
	assert.True(t, m.Match("old"))
	assert.True(t, m.Match("faces/old"))
	assert.True(t, m.Match("old/smile.gif"))
}

func TestExcludeWildcardExtension(t *testing.T) {
	m := NewExcludeMatcher([]string{"*.psd"})
	assert.True(t, m.Match("cat.psd"))
	assert.True(t, m.Match("animals/cat.psd"))
	assert.False(t, m.Match("cat.png"))
	assert.False(t, m.Match("cat.psdx"))
}

func TestExcludeQuestionMark(t *testing.T) {
	m := NewExcludeMatcher([]string{"?.png"})
	assert.True(t, m.Match("a.png"))
	assert.True(t, m.Match("faces/x.png"))
	assert.False(t, m.Match("ab.png"))
}

func TestExcludeDoublestar(t *testing.T) {
	m := NewExcludeMatcher([]string{"**/*_wip.png"})
	assert.True(t, m.Match("cat_wip.png"))
	assert.True(t, m.Match("a/b/cat_wip.png"))
	assert.False(t, m.Match("cat.png"))

	m = NewExcludeMatcher([]string{"src/**/*.gif"})
	assert.True(t, m.Match("src/a/b/party.gif"))
	assert.True(t, m.Match("src/party.gif"))
	assert.False(t, m.Match("other/party.gif"))

	m = NewExcludeMatcher([]string{"build/**"})
	assert.True(t, m.Match("build"))
	assert.True(t, m.Match("build/x/y.png"))
	assert.False(t, m.Match("src/build.png"))

	assert.True(t, NewExcludeMatcher([]string{"**"}).Match("a/b"))
	assert.False(t, NewExcludeMatcher([]string{"a/**/b/**"}).Match("a/x/b/y"))
}

func TestExcludePathPattern(t *testing.T) {
	m := NewExcludeMatcher([]string{"faces/*.webp"})
	assert.True(t, m.Match("faces/grin.webp"))
	assert.True(t, m.Match("./faces/grin.webp"))
	assert.False(t, m.Match("faces/sub/grin.webp"))
	assert.False(t, m.Match("other/grin.webp"))
}

func TestExcludeEmptyPatterns(t *testing.T) {
	m := NewExcludeMatcher([]string{"", "  "})
	assert.True(t, m.Empty())
	assert.False(t, m.Match("anything"))

	var nilMatcher *ExcludeMatcher
	assert.True(t, nilMatcher.Empty())
	assert.False(t, nilMatcher.Match("a/b.png"))
}

func TestExcludeDotfiles(t *testing.T) {
	m := NewExcludeMatcher([]string{".DS_Store", ".*"})
	assert.True(t, m.Match(".DS_Store"))
	assert.True(t, m.Match("faces/.hidden.png"))
	assert.True(t, m.Match(".git/config"))
	assert.False(t, m.Match("faces/smile.png"))
}
