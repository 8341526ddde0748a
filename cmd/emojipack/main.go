package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/tqbf/emojipack/pkg/config"
	"github.com/tqbf/emojipack/pkg/pipeline"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "emojipack",
		Usage:     "bundle a folder of images into an importable emoji pack",
		ArgsUsage: "[folder]",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"f"},
				EnvVars: []string{"EMOJIPACK_FOLDER"},
				Usage:   "folder with the custom emojis to generate the pack from",
			},
			&cli.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				EnvVars: []string{"EMOJIPACK_GROUP"},
				Value:   config.DefaultGroup,
				Usage:   "name for the pack",
			},
			&cli.StringFlag{
				Name:    "host",
				EnvVars: []string{"EMOJIPACK_HOST"},
				Usage:   "host recorded in meta.json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				EnvVars: []string{"EMOJIPACK_OUTPUT"},
				Usage:   "archive path (default ../generated_emotes.zip)",
			},
			&cli.StringFlag{
				Name:    "workdir",
				EnvVars: []string{"EMOJIPACK_WORKDIR"},
				Value:   ".",
				Usage:   "directory meta.json is written to and archived from",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "exclude pattern (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "archive the whole working directory, not only meta.json and the emojis",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Value: true,
				Usage: "re-read the archive after writing it",
			},
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"EMOJIPACK_CONFIG"},
				Usage:   "config file (yaml, toml or json)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Action: packAction,
	}
}

func configureLogging(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	slog.SetDefault(slog.New(
		log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: verbose,
		}),
	))
}

func packAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: emojipack [--group name] <folder>")
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		configureLogging(true)
	}

	res, err := pipeline.Run(cfg)
	if errors.Is(err, config.ErrNoFolder) {
		return fmt.Errorf("%w: pass --folder or a positional folder", err)
	}
	if err != nil {
		return err
	}

	fmt.Printf(
		"✅ Done! Importable ZIP file under '%s' (%d emojis)\n",
		res.ArchivePath, len(res.Manifest.Emojis),
	)
	return nil
}

// resolveConfig layers explicitly set flags over the config file
// and environment.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if c.NArg() == 1 {
		cfg.Folder = c.Args().First()
	}
	if c.IsSet("folder") {
		cfg.Folder = c.String("folder")
	}
	if c.IsSet("group") {
		cfg.Group = c.String("group")
	}
	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("workdir") {
		cfg.WorkDir = c.String("workdir")
	}
	if c.IsSet("exclude") {
		cfg.Excludes = append(cfg.Excludes, c.StringSlice("exclude")...)
	}
	if c.IsSet("all") {
		cfg.ArchiveAll = c.Bool("all")
	}
	if c.IsSet("verify") {
		cfg.Verify = c.Bool("verify")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	return cfg, nil
}
