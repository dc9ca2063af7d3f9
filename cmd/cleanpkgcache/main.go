package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/zhangzhishan/cleanpkgcache/internal/app"
	"github.com/zhangzhishan/cleanpkgcache/internal/config"
	"github.com/zhangzhishan/cleanpkgcache/internal/fsprobe"
	"github.com/zhangzhishan/cleanpkgcache/internal/logging"
	"github.com/zhangzhishan/cleanpkgcache/internal/report"
)

func main() {
	cliApp := &cli.App{
		Name:    "cleanpkgcache",
		Usage:   "clean package cache by keeping only the latest 2 versions of each package",
		Version: "0.2.1",
		Commands: []*cli.Command{
			cleanCommand(),
			daemonCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "remove stale package versions from a cache directory",
		ArgsUsage: "[PATH]",
		Flags: append(
			commonFlags(),
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "show what would be deleted without actually deleting",
			},
			&cli.BoolFlag{
				Name:  "clean-checkpoints",
				Usage: "also clean task checkpoints older than 60 days",
			},
		),
		Action: runClean,
	}
}

func daemonCommand() *cli.Command {
	return &cli.Command{
		Name:  "daemon",
		Usage: "run cache cleaning on a schedule",
		Flags: append(
			commonFlags(),
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "show what would be deleted without actually deleting",
			},
		),
		Action: runDaemon,
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to config yaml (optional; built-in defaults apply)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable verbose output",
		},
	}
}

func runClean(c *cli.Context) error {
	cfg, err := loadValidatedConfig(c.String("config"))
	if err != nil {
		return err
	}
	if _, err := logging.Init(cfg.Logging); err != nil {
		return err
	}

	dryRun := c.Bool("dry-run")
	verbose := c.Bool("verbose")
	cleanCheckpoints := c.Bool("clean-checkpoints")
	fs := afero.NewOsFs()

	root := c.Args().First()
	if root == "" {
		root = cfg.Cache.Root
	}

	if dryRun {
		fmt.Println("DRY RUN MODE - No files will be deleted")
	}

	cleanCache := true
	if cleanCheckpoints {
		// checkpoint mode tolerates a missing cache root; probe it up front
		// so the skip never reaches the engine as a failed run
		ok, err := fsprobe.New(fs).DirExists(root)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("Skipping package cache: %s is not an existing directory\n", root)
			cleanCache = false
		}
	}

	if cleanCache {
		summary, err := app.RunClean(c.Context, cfg, fs, app.CleanOptions{
			Root:   root,
			DryRun: dryRun,
		})
		if err != nil {
			return err
		}
		report.PrintClean(os.Stdout, summary, verbose)
	}

	if cleanCheckpoints {
		cs, err := app.RunCheckpointClean(c.Context, cfg, fs, time.Now().UTC(), dryRun)
		if err != nil {
			return err
		}
		report.PrintCheckpoints(os.Stdout, cs, verbose)
	}

	return nil
}

func runDaemon(c *cli.Context) error {
	cfg, err := loadValidatedConfig(c.String("config"))
	if err != nil {
		return err
	}
	if _, err := logging.Init(cfg.Logging); err != nil {
		return err
	}

	return app.RunDaemon(c.Context, cfg, afero.NewOsFs(), c.Bool("dry-run"))
}

func loadValidatedConfig(cfgPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
