package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"topology-builder/internal/api"
	"topology-builder/internal/api/handler"
	"topology-builder/internal/config"
	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/internal/store"
	"topology-builder/internal/translation"
	"topology-builder/pkg/router"
	"topology-builder/pkg/utils"
)

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "topology",
		Usage:     "Translate pipeline graphs into stream runtime descriptors",
		UsageText: "topology [global options] command [command options] [arguments...]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "HCL configuration file", EnvVars: []string{"TOPOLOGY_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
			&cli.StringFlag{Name: "output-dir", Usage: "directory for translation workspaces"},
		},
		Before: withEnv(stderr),
		After:  closeEnv,
		Commands: []*cli.Command{
			newTranslateCmd(),
			newServeCmd(),
			{
				Name:  "schema",
				Usage: "Module version schema commands",
				Subcommands: []*cli.Command{
					newSchemaImportCmd(),
				},
			},
			{
				Name:  "module",
				Usage: "Module commands",
				Subcommands: []*cli.Command{
					newModuleImportCmd(),
				},
			},
		},
	}
}

// env is what every command works with.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *store.Store
	workspace *utils.Workspace
}

func withEnv(stderr io.Writer) cli.BeforeFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return err
		}
		if c.IsSet("log-level") {
			cfg.LogLevel = c.String("log-level")
		}
		if c.IsSet("log-format") {
			cfg.LogFormat = c.String("log-format")
		}
		if c.IsSet("db") {
			cfg.Database = c.String("db")
		}
		if c.IsSet("output-dir") {
			cfg.OutputDir = c.String("output-dir")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, stderr)
		slog.SetDefault(logger)

		st, err := store.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", cfg.Database, err)
		}
		c.App.Metadata["env"] = &env{
			cfg:       cfg,
			logger:    logger,
			store:     st,
			workspace: utils.NewWorkspace(cfg.OutputDir),
		}
		return nil
	}
}

func closeEnv(c *cli.Context) error {
	if e, ok := c.App.Metadata["env"].(*env); ok {
		return e.store.Close()
	}
	return nil
}

func getEnv(c *cli.Context) *env {
	e, ok := c.App.Metadata["env"].(*env)
	if !ok {
		panic("missing command environment")
	}
	return e
}

func newTranslateCmd() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "Translate pipeline model files and write their workspaces",
		ArgsUsage: "[file ... or '-' for stdin]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "fail when any node, parameter or wire is skipped"},
			&cli.BoolFlag{Name: "forward-all-globals", Usage: "process every global variable wire"},
			&cli.IntFlag{Name: "workers", Value: 4, Usage: "concurrent translations when several files are given"},
		},
		Action: func(c *cli.Context) error {
			e := getEnv(c)
			cfg := e.cfg
			if c.IsSet("strict") {
				cfg.Strict = c.Bool("strict")
			}
			if c.IsSet("forward-all-globals") {
				cfg.ForwardAllGlobals = c.Bool("forward-all-globals")
			}

			paths := c.Args().Slice()
			if len(paths) == 0 {
				return errors.New("missing input file")
			}
			topos := make([]*model.Topology, 0, len(paths))
			for _, path := range paths {
				var topo model.Topology
				if err := readJSON(c, path, &topo); err != nil {
					return err
				}
				topos = append(topos, &topo)
			}

			ctx := ctxlog.WithLogger(c.Context, e.logger)
			runner := translation.NewRunner(e.store, e.workspace, cfg)

			if len(topos) == 1 {
				out, err := runner.Translate(ctx, topos[0])
				if out != nil {
					if werr := writeJSON(c.App.Writer, out); werr != nil {
						return werr
					}
				}
				return err
			}

			failed := 0
			for _, res := range runner.TranslateAll(ctx, topos, c.Int("workers")) {
				line := map[string]interface{}{"file": paths[res.Index]}
				if res.Outcome != nil {
					line["translation"] = res.Outcome.Translation.ID
					line["status"] = res.Outcome.Translation.Status
					line["diagnostics"] = len(res.Outcome.Diagnostics)
				}
				if res.Err != nil {
					failed++
					line["error"] = res.Err.Error()
				}
				if err := json.NewEncoder(c.App.Writer).Encode(line); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d translations failed", failed, len(topos))
			}
			return nil
		},
	}
}

func newServeCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "listen address"},
		},
		Action: func(c *cli.Context) error {
			e := getEnv(c)
			addr := e.cfg.ListenAddr
			if c.IsSet("listen") {
				addr = c.String("listen")
			}

			runner := translation.NewRunner(e.store, e.workspace, e.cfg)
			r := router.New(e.logger)
			api.RegisterRoutes(r, handler.New(e.store, runner, e.workspace))
			return r.Start(c.Context, addr, utils.ParseDuration(e.cfg.ReadTimeout, 15*time.Second))
		},
	}
}

func newSchemaImportCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Store module version schemas from a JSON file (one object or an array)",
		ArgsUsage: "[file or '-' for stdin]",
		Action: func(c *cli.Context) error {
			e := getEnv(c)
			var versions []model.ModuleVersion
			if err := readOneOrMany(c, &versions); err != nil {
				return err
			}
			for _, mv := range versions {
				if mv.ID == "" {
					return errors.New("module version without id")
				}
				if err := e.store.SaveModuleVersion(c.Context, mv); err != nil {
					return fmt.Errorf("module version %s: %w", mv.ID, err)
				}
			}
			e.logger.Info("Module versions imported.", "count", len(versions))
			return nil
		},
	}
}

func newModuleImportCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Store modules from a JSON file (one object or an array)",
		ArgsUsage: "[file or '-' for stdin]",
		Action: func(c *cli.Context) error {
			e := getEnv(c)
			var modules []model.Module
			if err := readOneOrMany(c, &modules); err != nil {
				return err
			}
			for _, m := range modules {
				if m.ID == "" || m.Name == "" {
					return errors.New("module without id or name")
				}
				if err := e.store.SaveModule(c.Context, m); err != nil {
					return fmt.Errorf("module %s: %w", m.ID, err)
				}
			}
			e.logger.Info("Modules imported.", "count", len(modules))
			return nil
		},
	}
}

func readInput(c *cli.Context, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, errors.New("missing input file")
	case "-":
		return io.ReadAll(c.App.Reader)
	default:
		return os.ReadFile(path)
	}
}

func readJSON(c *cli.Context, path string, v interface{}) error {
	data, err := readInput(c, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// readOneOrMany decodes the first argument as either a JSON array into out
// or a single object appended to it.
func readOneOrMany[T any](c *cli.Context, out *[]T) error {
	path := c.Args().First()
	data, err := readInput(c, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	*out = append(*out, one)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
