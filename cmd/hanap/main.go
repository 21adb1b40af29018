// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/poiesic/hanap"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hanap",
		Usage: "Search burial records with free-text queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides the config file)",
			},
			&cli.BoolFlag{
				Name:  "semantic",
				Usage: "Rank with embeddings from the configured embedding service",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import burial records from a JSON Lines file",
				ArgsUsage: "FILE (- for stdin)",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records embedded per request",
						Value: 32,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search burial records",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "cemetery",
						Usage: "Restrict results to one cemetery ID",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Result page, starting at 1",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Results per page (1-100, default from config)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the response as JSON",
					},
				},
			},
			{
				Name:      "interpret",
				Usage:     "Show how a query is interpreted",
				ArgsUsage: "QUERY...",
				Action:    interpretCommand,
			},
			{
				Name:      "suggest",
				Usage:     "Suggest stored names close to the name in a query",
				ArgsUsage: "QUERY...",
				Action:    suggestCommand,
			},
			{
				Name:      "autocomplete",
				Usage:     "Complete a name prefix from stored records",
				ArgsUsage: "PREFIX",
				Action:    autocompleteCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:  "cemetery",
						Usage: "Restrict names to one cemetery ID",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of names",
						Value: 10,
					},
				},
			},
			{
				Name:   "cemeteries",
				Usage:  "List cemeteries and their burial counts",
				Action: cemeteriesCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all burial records with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (overrides the config file)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name (overrides the config file)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "only-missing",
						Usage: "Only embed records without a vector",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Count the records that would be reembedded",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	if c.Bool("no-color") {
		color.NoColor = true
	}

	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	installLogger(level)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	levelStr := strings.ToLower(s)
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
}

func installLogger(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(c *cli.Context) (*hanap.Config, error) {
	config, err := hanap.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("db") {
		config.Database = c.String("db")
	}
	if c.IsSet("semantic") {
		config.Semantic = c.Bool("semantic")
	}
	if !c.IsSet("log-level") && config.LogLevel != "" {
		level, err := config.Level()
		if err != nil {
			return nil, err
		}
		installLogger(level)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func openEngine(config *hanap.Config) (*hanap.Engine, error) {
	engine, err := hanap.NewEngine(config.Database, config.EngineOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}
