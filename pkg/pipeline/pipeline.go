// Package pipeline runs one emoji pack export: discover images,
// write meta.json into the working directory, and zip the manifest
// together with the discovered files.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/tqbf/emojipack/pkg/config"
	"github.com/tqbf/emojipack/pkg/pack"
	"github.com/tqbf/emojipack/pkg/paths"
)

type Result struct {
	Manifest     *pack.Manifest
	ManifestPath string
	ArchivePath  string
	Files        int
}

func Run(cfg config.Config) (*Result, error) {
	return run(cfg, &pack.Builder{
		Excludes: cfg.Excludes,
		Host:     cfg.Host,
	})
}

func run(
	cfg config.Config,
	builder *pack.Builder,
) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := builder.Build(cfg.Folder, cfg.Group)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	slog.Info("discovered emojis",
		"count", len(m.Emojis),
		"folder", cfg.Folder,
		"group", cfg.Group,
	)
	if dups := pack.DuplicateNames(m); len(dups) > 0 {
		slog.Warn("duplicate emoji names", "names", dups)
	}

	manifestPath := filepath.Join(cfg.WorkDir, pack.ManifestName)
	if err := pack.WriteManifest(manifestPath, m); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	files, err := archiveList(cfg.WorkDir, m)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	output := cfg.OutputPath()
	var count int
	if cfg.ArchiveAll {
		count, err = pack.Archive(cfg.WorkDir, output)
	} else {
		count, err = pack.PackZipFile(cfg.WorkDir, files, output)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	slog.Debug("wrote archive",
		"path", output,
		"files", count,
		"all", cfg.ArchiveAll,
	)

	if cfg.Verify {
		check := verify
		if cfg.ArchiveAll {
			check = verifyContains
		}
		if err := check(output, files); err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
	}

	return &Result{
		Manifest:     m,
		ManifestPath: manifestPath,
		ArchivePath:  output,
		Files:        count,
	}, nil
}

// archiveList returns meta.json followed by every emoji file, as
// slash paths relative to workDir.
func archiveList(
	workDir string,
	m *pack.Manifest,
) ([]string, error) {
	work, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir: %w", err)
	}

	seen := map[string]bool{pack.ManifestName: true}
	files := []string{pack.ManifestName}
	for _, e := range m.Emojis {
		abs, err := filepath.Abs(filepath.FromSlash(e.FileName))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", e.FileName, err)
		}
		if !paths.IsWithinDir(work, abs) {
			return nil, fmt.Errorf(
				"%s is outside %s", e.FileName, work,
			)
		}
		rel, err := paths.RelSlash(work, abs)
		if err != nil {
			return nil, err
		}
		if seen[rel] {
			continue
		}
		seen[rel] = true
		files = append(files, rel)
	}
	return files, nil
}

func verify(archivePath string, files []string) error {
	entries, err := pack.ListZip(archivePath)
	if err != nil {
		return err
	}

	want := append([]string{}, files...)
	for _, d := range paths.Ancestors(files) {
		want = append(want, d+"/")
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	sort.Strings(want)
	sort.Strings(got)

	if len(want) != len(got) {
		return fmt.Errorf(
			"archive has %d entries, want %d",
			len(got), len(want),
		)
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf(
				"unexpected entry %q (want %q)",
				got[i], want[i],
			)
		}
	}
	return nil
}

// verifyContains checks that every one of files made it into the
// archive, which may hold other entries too.
func verifyContains(archivePath string, files []string) error {
	entries, err := pack.ListZip(archivePath)
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(entries))
	for _, e := range entries {
		have[e.Name] = true
	}
	for _, f := range files {
		if !have[f] {
			return fmt.Errorf("missing entry %q", f)
		}
	}
	return nil
}
