package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/poiesic/hanap"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/ingestion"
)

var (
	seedFileName = flag.String("src", "", "JSON Lines file of burial records to seed from")
	dbPath       = flag.String("db", hanap.DefaultDatabasePath, "BadgerDB database directory")
	count        = flag.Int("count", 250, "number of generated burials when -src is not set")
)

var firstNames = []string{
	"Juan", "Maria", "José", "Pedro", "Rosario", "Ana", "Antonio", "Teresita",
	"Ricardo", "Lourdes", "Eduardo", "Corazon", "Fernando", "Luz", "Manuel", "Remedios",
	"Robert", "Elizabeth", "William", "Margaret", "James", "Catherine", "Michael", "Patricia",
}

var middleNames = []string{"", "", "Santos", "Reyes", "Bautista", "Mendoza", "Lee", "Ann"}

var lastNames = []string{
	"Dela Cruz", "Santos", "Reyes", "Garcia", "Mendoza", "Bautista", "Villanueva", "De Leon",
	"Ramos", "Aquino", "Castillo", "Del Rosario", "Smith", "Johnson", "Williams", "Brown",
}

var cemeteries = []struct {
	id    core.ID
	name  string
	block string
}{
	{id: 1, name: "Manila North Cemetery", block: "A"},
	{id: 2, name: "Paco Park Cemetery", block: "P"},
	{id: 3, name: "Loyola Memorial Park", block: "L"},
	{id: 4, name: "Manila American Cemetery", block: "M"},
}

var plotTypes = []string{core.PlotTypeSingle, core.PlotTypeFamily, core.PlotTypeLawn, core.PlotTypeMausoleum}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// generatedBurials returns an iterator over n reproducible sample burials.
func generatedBurials(n int) iter.Seq[*core.Record] {
	return func(yield func(*core.Record) bool) {
		rng := rand.New(rand.NewPCG(1898, 6))
		for i := range n {
			cemetery := cemeteries[rng.IntN(len(cemeteries))]
			record := &core.Record{
				FirstName:    firstNames[rng.IntN(len(firstNames))],
				MiddleName:   middleNames[rng.IntN(len(middleNames))],
				LastName:     lastNames[rng.IntN(len(lastNames))],
				PlotId:       core.ID(i + 1),
				PlotNumber:   fmt.Sprintf("%s-%d", cemetery.block, 1+rng.IntN(400)),
				PlotType:     plotTypes[rng.IntN(len(plotTypes))],
				CemeteryId:   cemetery.id,
				CemeteryName: cemetery.name,
			}

			// A few old records only survive with a death date.
			death := time.Date(1900+rng.IntN(125), time.Month(1+rng.IntN(12)), 1+rng.IntN(28), 0, 0, 0, 0, time.UTC)
			record.DateOfDeath = death
			if rng.IntN(10) > 0 {
				record.DateOfBirth = death.AddDate(-(1 + rng.IntN(95)), -rng.IntN(12), -rng.IntN(28))
			}

			if !yield(record) {
				return
			}
		}
	}
}

// burialsFromFile returns an iterator over the records in a JSON Lines file.
func burialsFromFile(filename string) (iter.Seq[*core.Record], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ingestion.DecodeRecords(f)
	if err != nil {
		return nil, err
	}
	return func(yield func(*core.Record) bool) {
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}, nil
}

// ingestBatched reads from a source iterator and ingests records in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[*core.Record], batchSize int) (added int, err error) {
	batch := make([]*core.Record, 0, batchSize)
	flush := func() error {
		result, err := pipeline.Ingest(ctx, batch...)
		if err != nil {
			return err
		}
		added += len(result.Added)
		for _, rejection := range result.Rejected {
			slog.Warn("rejected burial", "name", rejection.Record.DisplayName(), "err", rejection.Err)
		}
		batch = batch[:0]
		return nil
	}

	for record := range source {
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return added, err
			}
		}
	}

	// Process any remaining records
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return added, err
		}
	}
	return added, nil
}

func main() {
	engine, err := hanap.NewEngine(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ingester, err := engine.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[*core.Record]
	if seedFileName != nil && *seedFileName != "" {
		source, err = burialsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = generatedBurials(*count)
	}

	added, err := ingestBatched(ctx, ingester, source, 50)
	if err != nil {
		panic(err)
	}
	ingester.Wait()
	slog.Info("seeded burials", "added", added, "db", *dbPath)
}
