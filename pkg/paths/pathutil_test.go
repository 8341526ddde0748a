package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRelPath(t *testing.T) {
	assert.NoError(t, ValidateRelPath("meta.json"))
	assert.NoError(t, ValidateRelPath("icons/happy.PNG"))
	assert.NoError(t, ValidateRelPath("emoji with spaces.gif"))
	assert.NoError(t, ValidateRelPath("日本語/笑.png"))

	assert.Error(t, ValidateRelPath(""))
	assert.Error(t, ValidateRelPath("/abs/cat.png"))
	assert.Error(t, ValidateRelPath("../cat.png"))
	assert.Error(t, ValidateRelPath("a/../../cat.png"))
	assert.Error(t, ValidateRelPath("cat\x00.png"))
	assert.Error(t, ValidateRelPath("."))
	assert.Error(t, ValidateRelPath("./"))
	assert.Error(t, ValidateRelPath(".."))
}

func TestCleanRelPath(t *testing.T) {
	assert.Equal(t, "icons/a.png", CleanRelPath("./icons/a.png"))
	assert.Equal(t, "icons/a.png", CleanRelPath("icons//a.png"))
	assert.Equal(t, "icons/a.png", CleanRelPath("icons/./a.png"))
	assert.Equal(t, "icons", CleanRelPath("icons/sub/.."))
}

func TestRelSlash(t *testing.T) {
	rel, err := RelSlash("/work", "/work/icons/a.png")
	require.NoError(t, err)
	assert.Equal(t, "icons/a.png", rel)

	rel, err = RelSlash("/work", "/work")
	require.NoError(t, err)
	assert.Equal(t, ".", rel)
}

func TestIsWithinDir(t *testing.T) {
	assert.True(t, IsWithinDir("/work", "/work/icons"))
	assert.True(t, IsWithinDir("/work/", "/work/icons/a.png"))
	assert.True(t, IsWithinDir("/work", "/work"))

	assert.False(t, IsWithinDir("/work", "/other"))
	assert.False(t, IsWithinDir("/work", "/generated_emotes.zip"))
	assert.False(t, IsWithinDir("/tmp/a", "/tmp/ab/c"))
}

func TestAncestors(t *testing.T) {
	got := Ancestors([]string{
		"meta.json",
		"icons/happy.png",
		"icons/faces/grin.png",
		"icons/faces/wink.png",
		"./animals/cat.gif",
	})
	assert.Equal(t, []string{
		"icons",
		"icons/faces",
		"animals",
	}, got)

	assert.Nil(t, Ancestors([]string{"meta.json"}))
}
