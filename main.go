package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/astei/blueprintcheck/blueprint"
	"github.com/astei/blueprintcheck/config"
	"github.com/astei/blueprintcheck/nbt"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if v, ok := intFlag(c, "min-level"); ok {
		cfg.MinLevel = v
	}
	if v, ok := intFlag(c, "max-level"); ok {
		cfg.MaxLevel = v
	}
	if v, ok := intFlag(c, "workers"); ok {
		cfg.Workers = v
	}
	if c.NArg() > 0 {
		cfg.Root = c.Args().Get(0)
	}
	return cfg, cfg.Validate()
}

// intFlag returns an int flag from the innermost command it was set on, so
// `--max-level 3 check` and `check --max-level 3` behave the same.
func intFlag(c *cli.Context, name string) (int, bool) {
	for _, ctx := range c.Lineage() {
		for _, set := range ctx.LocalFlagNames() {
			if set == name {
				return ctx.Int(name), true
			}
		}
	}
	return 0, false
}

func levelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "min-level", Usage: "lowest allowed level number"},
		&cli.IntFlag{Name: "max-level", Usage: "highest allowed level number"},
		&cli.IntFlag{Name: "workers", Usage: "files decoded in parallel"},
	}
}

func runCheck(c *cli.Context, stdout io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	paths, err := blueprint.Discover(cfg.Root)
	if err != nil {
		return cli.Exit(fmt.Sprintf("could not scan %s: %s", cfg.Root, err), 2)
	}
	logger.Info("discovered blueprints", zap.String("root", cfg.Root), zap.Int("files", len(paths)))

	checker := cfg.Checker()
	checker.Logger = logger
	report, err := checker.Check(c.Context, paths)
	if err != nil {
		return err
	}
	if err = report.WriteText(stdout); err != nil {
		return err
	}
	if !report.OK() {
		return cli.Exit("", 1)
	}
	return nil
}

func runDump(c *cli.Context, stdout io.Writer) error {
	if c.NArg() == 0 {
		return cli.Exit("need a blueprint file to dump", 2)
	}
	root, err := nbt.ReadFile(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nbt.Dump(stdout, root)
}

func newApp(stdout io.Writer) *cli.App {
	check := func(c *cli.Context) error { return runCheck(c, stdout) }
	return &cli.App{
		Name:      "blueprintcheck",
		Usage:     "validates naming and dimensions of leveled .blueprint files",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "blueprintcheck.yaml", Usage: "YAML config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every decoded file"},
		}, levelFlags()...),
		Action: check,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "check every blueprint below ROOT",
				ArgsUsage: "[ROOT]",
				Flags:     levelFlags(),
				Action:    check,
			},
			{
				Name:      "dump",
				Usage:     "print the tag tree of a blueprint",
				ArgsUsage: "FILE",
				Action:    func(c *cli.Context) error { return runDump(c, stdout) },
			},
		},
	}
}

func main() {
	err := newApp(os.Stdout).RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
