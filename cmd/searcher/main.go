package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/hanap"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	engine, err := hanap.NewEngine(hanap.DefaultDatabasePath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	query := "Hanap si Juan dela Cruz"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	resp, err := engine.Search(context.Background(), query, hanap.SearchOptions{PageSize: 5})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d hits (%s)\n", len(resp.Results), resp.Context.Intent)
	for i, hit := range resp.Results {
		fmt.Printf("%d: '%s' %s (%d)[%0.3f]\n", i, hit.Record.DisplayName(), hit.Record.PlotNumber, hit.Record.Id, hit.Score)
	}
	if len(resp.Suggestions) > 0 {
		fmt.Printf("Did you mean: %s\n", strings.Join(resp.Suggestions, ", "))
	}
}
