package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tqbf/emojipack/pkg/imagesniff"
	"github.com/tqbf/emojipack/pkg/naming"
	"github.com/tqbf/emojipack/pkg/paths"
)

var ErrRootNotFound = errors.New("source folder not found")

// Classifier decides whether the file at path holds an image.
// Unreadable files are not images.
type Classifier interface {
	IsImage(path string) bool
}

// Builder walks a source folder and collects every image in it
// into a Manifest. The zero value is ready to use.
type Builder struct {
	Classifier Classifier
	Excludes   []string
	Host       string
	Now        func() time.Time
}

func Build(root, group string) (*Manifest, error) {
	var b Builder
	return b.Build(root, group)
}

// Build walks root and returns the manifest of every image below
// it, in walk order. Only a missing or non-directory root is an
// error; entries that fail to read are skipped.
func (b *Builder) Build(
	root, group string,
) (*Manifest, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v",
			ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory",
			ErrRootNotFound, root)
	}
	// WalkDir does not descend into a symlinked root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v",
			ErrRootNotFound, root, err)
	}

	classifier := b.Classifier
	if classifier == nil {
		classifier = imagesniff.Sniffer{}
	}
	matcher := paths.NewExcludeMatcher(b.Excludes)

	emojis := []Emoji{}
	walkErr := filepath.WalkDir(
		walkRoot,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Debug("skip entry", "path", p, "err", err)
				if d != nil && d.IsDir() && p != walkRoot {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := paths.RelSlash(walkRoot, p)
			if err != nil {
				slog.Debug("skip entry", "path", p, "err", err)
				return nil
			}
			if rel == "." {
				return nil
			}
			if matcher.Match(rel) {
				slog.Debug("excluded", "path", rel)
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !classifier.IsImage(p) {
				slog.Debug("not an image", "path", p)
				return nil
			}

			e := newEmoji(
				filepath.Join(root, filepath.FromSlash(rel)),
				rel, group,
			)
			slog.Debug("emoji",
				"file", e.FileName,
				"name", e.Emoji.Name,
				"category", e.Emoji.Category,
			)
			emojis = append(emojis, e)
			return nil
		},
	)
	if walkErr != nil {
		return nil, walkErr
	}

	host := b.Host
	if host == "" {
		host = DefaultHost
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	return &Manifest{
		MetaVersion: MetaVersion,
		Host:        host,
		ExportedAt:  now().UTC().Format(time.RFC3339),
		Emojis:      emojis,
	}, nil
}

func newEmoji(discovered, rel, group string) Emoji {
	return Emoji{
		Downloaded: true,
		FileName:   filepath.ToSlash(discovered),
		Emoji: EmojiData{
			Name: naming.Name(discovered),
			Category: naming.Category(
				group, naming.Subcategory(rel),
			),
			Aliases: []string{},
		},
	}
}
