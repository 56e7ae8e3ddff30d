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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/substrate"
	"github.com/poiesic/substrate/ingest"
	"github.com/poiesic/substrate/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "substrate",
		Usage: "Inspect and manage pluggable storage backends",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to backend configuration file",
				Required: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "providers",
				Usage:  "List registered providers per backend type",
				Action: providersCommand,
			},
			{
				Name:  "checkpoint",
				Usage: "Operate on a checkpoint store backend",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Backend name (empty selects the default)",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List checkpoint IDs",
						Action: checkpointListCommand,
					},
					{
						Name:   "show",
						Usage:  "Print a checkpoint's state to stdout",
						Action: checkpointShowCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "id",
								Usage:    "Checkpoint ID",
								Required: true,
							},
						},
					},
					{
						Name:   "delete",
						Usage:  "Delete a checkpoint",
						Action: checkpointDeleteCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "id",
								Usage:    "Checkpoint ID",
								Required: true,
							},
						},
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Run a similarity query against a vector store backend",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Backend name (empty selects the default)",
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Comma-separated query vector, e.g. 0.1,0.2,0.3",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of matches",
						Value: 10,
					},
				},
			},
			{
				Name:   "traverse",
				Usage:  "Run a bounded-depth traversal against a knowledge graph backend",
				Action: traverseCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Backend name (empty selects the default)",
					},
					&cli.StringFlag{
						Name:     "start",
						Usage:    "Entity ID to start from",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "relation",
						Usage: "Relation type to follow (empty follows all types)",
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Maximum number of hops",
						Value: 1,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Bulk-load vector records from a JSON file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Backend name (empty selects the default)",
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of records",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "generate-ids",
						Usage: "Assign UUIDs to records without an ID or content",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openStore opens the store declared by the --config flag.
func openStore(c *cli.Context) (*substrate.Store, error) {
	store, err := substrate.Open(substrate.WithConfigFile(c.String("config")))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return store, nil
}

func providersCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	factory := store.Registry().Factory()
	for _, typ := range storage.BackendTypes() {
		fmt.Printf("%s: %s\n", typ, strings.Join(factory.Providers(typ), ", "))
	}
	return nil
}

func checkpointListCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoints, err := store.CheckpointStore(c.String("backend"))
	if err != nil {
		return err
	}
	ids, err := checkpoints.ListCheckpoints(context.Background())
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func checkpointShowCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoints, err := store.CheckpointStore(c.String("backend"))
	if err != nil {
		return err
	}
	checkpoint, err := checkpoints.LoadCheckpoint(context.Background(), c.String("id"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "id: %s\nsaved: %s\n", checkpoint.Id, checkpoint.UpdatedAt)
	for k, v := range checkpoint.Metadata {
		fmt.Fprintf(os.Stderr, "%s: %s\n", k, v)
	}
	_, err = os.Stdout.Write(checkpoint.State)
	return err
}

func checkpointDeleteCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoints, err := store.CheckpointStore(c.String("backend"))
	if err != nil {
		return err
	}
	return checkpoints.DeleteCheckpoint(context.Background(), c.String("id"))
}

func searchCommand(c *cli.Context) error {
	query, err := parseVector(c.String("query"))
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	vectors, err := store.VectorStore(c.String("backend"))
	if err != nil {
		return err
	}
	matches, err := vectors.Search(context.Background(), query, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, match := range matches {
		fmt.Printf("%s\t%.4f\n", match.Id, match.Score)
	}
	return nil
}

func traverseCommand(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	graph, err := store.KnowledgeGraph(c.String("backend"))
	if err != nil {
		return err
	}
	ids, err := graph.Traverse(context.Background(), c.String("start"), c.String("relation"), c.Int("depth"))
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("reading records file: %w", err)
	}
	var records []ingest.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing records file: %w", err)
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	vectors, err := store.VectorStore(c.String("backend"))
	if err != nil {
		return err
	}

	opts := []ingest.Option{ingest.WithWorkers(c.Int("workers"))}
	if c.Bool("generate-ids") {
		opts = append(opts, ingest.WithGeneratedIDs())
	}
	loader, err := ingest.NewLoader(vectors, opts...)
	if err != nil {
		return err
	}
	defer loader.Release()

	if err := loader.Load(context.Background(), records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "loaded %d records\n", len(records))
	return nil
}

// parseVector parses a comma-separated list of numbers.
func parseVector(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	vector := make([]float32, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", part, err)
		}
		vector = append(vector, float32(f))
	}
	return vector, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
