// Copyright 2025 Veritell Systems
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
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/veritell/matchbook"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/match"
	"github.com/veritell/matchbook/oracle"
	"github.com/veritell/matchbook/oracle/openai"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB catalog directory",
		Required: true,
	}
	oracleFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "oracle-host",
			Usage: "Semantic oracle host URL (enables escalation when set)",
		},
		&cli.StringFlag{
			Name:  "oracle-model",
			Usage: "Semantic oracle model name",
			Value: "qwen2.5:3b",
		},
	}

	app := &cli.App{
		Name:   "matchbook",
		Usage:  "Entity resolution against a reference catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import catalog entities from a CSV file (name,alt_name,category,city,state)",
				ArgsUsage: "<file.csv>",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entities to write per transaction",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "header",
						Usage: "Skip the first row as a header",
						Value: true,
					},
				},
			},
			{
				Name:      "match",
				Usage:     "Resolve a free-text name against the catalog",
				ArgsUsage: "<name>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of candidates to display",
						Value:   10,
					},
				},
			},
			{
				Name:      "pair",
				Usage:     "Judge whether two names refer to the same entity",
				ArgsUsage: "<name-a> <name-b>",
				Action:    pairCommand,
				Flags:     oracleFlags,
			},
			{
				Name:      "batch",
				Usage:     "Resolve names read one per line from a file (or - for stdin)",
				ArgsUsage: "<file>",
				Action:    batchCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of candidates per name",
						Value:   1,
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent match workers",
						Value:   10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument")
	}

	resolver, err := matchbook.NewResolver(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer resolver.Close()

	file, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	ctx := context.Background()
	skipHeader := c.Bool("header")
	total := 0
	batch := make([]*core.CatalogEntity, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := resolver.AddEntities(ctx, batch...); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		if skipHeader {
			skipHeader = false
			continue
		}
		entity := entityFromRow(row)
		if entity == nil {
			continue
		}
		batch = append(batch, entity)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Imported %d entities\n", total)
	return nil
}

// entityFromRow maps a CSV row to an entity. Column order is
// name,alt_name,category,city,state; trailing columns are optional.
func entityFromRow(row []string) *core.CatalogEntity {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	name := field(0)
	if name == "" {
		return nil
	}
	return &core.CatalogEntity{
		Name:     name,
		AltName:  field(1),
		Category: field(2),
		City:     field(3),
		State:    field(4),
	}
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one name argument")
	}

	resolver, err := matchbook.NewResolver(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer resolver.Close()

	query := c.Args().First()
	outcome, err := resolver.FindBestMatch(context.Background(), query, c.Int("limit"))
	if err != nil {
		return err
	}

	printOutcome(os.Stdout, query, outcome)
	return nil
}

func printOutcome(w io.Writer, query string, outcome *core.MatchOutcome) {
	if outcome.BestMatch != nil {
		fmt.Fprintf(w, "%s -> %s (%.3f)\n", query, outcome.BestMatch.Name, outcome.Confidence)
	} else {
		fmt.Fprintf(w, "%s -> no match\n", query)
	}
	for _, candidate := range outcome.Matches {
		fmt.Fprintf(w, "  %-40s %.3f %s\n",
			candidate.Entity.Name, candidate.Confidence, candidate.MatchType)
	}
}

func pairCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected exactly two name arguments")
	}

	pairOpts := []match.PairOption{}
	if host := c.String("oracle-host"); host != "" {
		cfg := oracle.NewConfig(
			oracle.WithHost(host),
			oracle.WithModel(c.String("oracle-model")),
		)
		judge, err := openai.NewJudge(cfg)
		if err != nil {
			return fmt.Errorf("failed to create oracle: %w", err)
		}
		defer judge.Close()
		pairOpts = append(pairOpts, match.WithOracle(judge))
	}

	pm, err := match.NewPairMatcher(pairOpts...)
	if err != nil {
		return err
	}

	verdict, err := pm.MatchPair(context.Background(), c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	state := "DIFFERENT"
	if verdict.IsMatch {
		state = "SAME"
	}
	fmt.Printf("%s (%.3f, %s)\n", state, verdict.Confidence, verdict.MatchType)
	fmt.Printf("  %s\n", verdict.Reasoning)
	return nil
}

func batchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}

	resolver, err := matchbook.NewResolver(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer resolver.Close()

	var input io.Reader = os.Stdin
	if name := c.Args().First(); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	var queries []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			queries = append(queries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	batch, err := resolver.NewBatchMatcher(match.WithWorkers(c.Int("workers")))
	if err != nil {
		return err
	}
	defer batch.Release()

	results, err := batch.FindBestMatches(context.Background(), queries, c.Int("limit"))
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("%s -> error: %v\n", result.Query, result.Err)
			continue
		}
		printOutcome(os.Stdout, result.Query, result.Outcome)
	}
	fmt.Fprintf(os.Stderr, "Resolved %d names, %d failed\n", len(results)-failed, failed)
	return nil
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
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
