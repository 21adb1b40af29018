package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poiesic/hanap"
	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/ingestion"
	"github.com/poiesic/hanap/interpret"
	"github.com/poiesic/hanap/reembed"
	"github.com/urfave/cli/v2"
)

var errQueryRequired = errors.New("query is required")

func queryArg(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", errQueryRequired
	}
	return query, nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}

	var input io.Reader = os.Stdin
	if path := c.Args().First(); path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		input = file
	}

	records, err := ingestion.DecodeRecords(input)
	if err != nil {
		return err
	}

	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline(ingestion.WithBatchSize(c.Int("batch-size")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Ingest(c.Context, records...)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	pipeline.Wait()

	printImportResult(c.App.Writer, result)
	return nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	resp, err := engine.Search(c.Context, query, hanap.SearchOptions{
		CemeteryId: core.ID(c.Uint64("cemetery")),
		Page:       c.Int("page"),
		PageSize:   c.Int("page-size"),
	})
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return printJSON(c.App.Writer, resp)
	}
	printSearchResponse(c.App.Writer, resp)
	return nil
}

func interpretCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	sc := interpret.Interpret(query)
	return printJSON(c.App.Writer, &sc)
}

func suggestCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	suggestions, err := engine.Suggest(c.Context, query)
	if err != nil {
		return err
	}
	printNames(c.App.Writer, suggestions, "No suggestions.")
	return nil
}

func autocompleteCommand(c *cli.Context) error {
	prefix := strings.Join(c.Args().Slice(), " ")

	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	names, err := engine.Autocomplete(c.Context, prefix, core.ID(c.Uint64("cemetery")), c.Int("limit"))
	if err != nil {
		return err
	}
	printNames(c.App.Writer, names, "No matching names.")
	return nil
}

func cemeteriesCommand(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	cemeteries, err := engine.Cemeteries(c.Context)
	if err != nil {
		return err
	}
	printCemeteries(c.App.Writer, cemeteries)
	return nil
}

func reembedCommand(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	config.Semantic = true
	if c.IsSet("embedding-host") {
		config.AI.EmbeddingHost = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		config.AI.EmbeddingModel = c.String("embedding-model")
	}
	if err := config.AI.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		OnlyMissing:    c.Bool("only-missing"),
		DryRun:         c.Bool("dry-run"),
	}
	if err := validateReembedConfig(reembedConfig); err != nil {
		return err
	}

	engine, err := openEngine(config)
	if err != nil {
		return err
	}
	defer engine.Close()

	reembedder, err := engine.NewReembedder(reembedConfig, c.App.ErrWriter)
	if err != nil {
		return err
	}

	printAIConfig(c.App.ErrWriter, config.Database, &config.AI)
	if _, err := reembedder.Run(c.Context); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func validateReembedConfig(config *reembed.Config) error {
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAIConfig(w io.Writer, database string, config *ai.Config) {
	fmt.Fprintf(w, "Database: %s\n", database)
	fmt.Fprintf(w, "Embedding host: %s\n", config.EmbeddingHost)
	fmt.Fprintf(w, "Embedding model: %s\n", config.EmbeddingModel)
	fmt.Fprintln(w)
}
