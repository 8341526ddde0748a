package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tqbf/emojipack/pkg/pack"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.Group)
	assert.Equal(t, pack.DefaultHost, cfg.Host)
	assert.Equal(t, ".", cfg.WorkDir)
	assert.Empty(t, cfg.Folder)
	assert.Empty(t, cfg.Excludes)
	assert.True(t, cfg.Verify)
	assert.False(t, cfg.Verbose)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojipack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"folder: emojis\n"+
			"group: Team\n"+
			"exclude:\n"+
			"  - drafts\n"+
			"  - \"*.psd\"\n"+
			"verify: false\n",
	), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "emojis", cfg.Folder)
	assert.Equal(t, "Team", cfg.Group)
	assert.Equal(t, []string{"drafts", "*.psd"}, cfg.Excludes)
	assert.False(t, cfg.Verify)
	assert.Equal(t, pack.DefaultHost, cfg.Host)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("EMOJIPACK_GROUP", "FromEnv")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.Group)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t,
		filepath.Join("..", "generated_emotes.zip"),
		cfg.OutputPath(),
	)

	cfg.WorkDir = "/work/pack"
	assert.Equal(t, "/work/generated_emotes.zip", cfg.OutputPath())

	cfg.Output = "/tmp/out.zip"
	assert.Equal(t, "/tmp/out.zip", cfg.OutputPath())
}

func TestValidate(t *testing.T) {
	work := t.TempDir()
	emojis := filepath.Join(work, "emojis")
	require.NoError(t, os.Mkdir(emojis, 0755))

	cfg := Default()
	cfg.WorkDir = work

	assert.ErrorIs(t, cfg.Validate(), ErrNoFolder)

	cfg.Folder = emojis
	assert.NoError(t, cfg.Validate())

	cfg.Folder = work
	assert.NoError(t, cfg.Validate())

	cfg.Folder = filepath.Join(work, "missing")
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFolder)

	file := filepath.Join(work, "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	cfg.Folder = file
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFolder)

	cfg.Folder = t.TempDir()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidFolder)
}

func TestLoadArchiveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojipack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"archive_all: true\n",
	), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ArchiveAll)
}
