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


// Seeder loads a demo reference catalog for local experimentation, then runs
// a few sample queries against it.
package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/veritell/matchbook"
	"github.com/veritell/matchbook/core"
)

// Demo catalog. Plausible company records with brand names, locations, and
// categories, covering abbreviations, punctuation, and legal suffixes.
var companies = []*core.CatalogEntity{
	{Name: "Amazon.com Inc", AltName: "Amazon", Category: "retail", City: "Seattle", State: "WA"},
	{Name: "Microsoft Corporation", AltName: "MSFT", Category: "software", City: "Redmond", State: "WA"},
	{Name: "Apple Inc", AltName: "Apple", Category: "hardware", City: "Cupertino", State: "CA"},
	{Name: "International Business Machines", AltName: "IBM", Category: "services", City: "Armonk", State: "NY"},
	{Name: "Alphabet Inc", AltName: "Google", Category: "software", City: "Mountain View", State: "CA"},
	{Name: "Johnson & Johnson", AltName: "JNJ", Category: "pharma", City: "New Brunswick", State: "NJ"},
	{Name: "Johnson Controls International", AltName: "Johnson Controls", Category: "industrial", City: "Milwaukee", State: "WI"},
	{Name: "Delta Air Lines Inc", AltName: "Delta", Category: "airline", City: "Atlanta", State: "GA"},
	{Name: "Delta Dental Plans Association", AltName: "Delta Dental", Category: "insurance", City: "Oak Brook", State: "IL"},
	{Name: "7-Eleven, Inc.", AltName: "7-Eleven", Category: "retail", City: "Irving", State: "TX"},
	{Name: "The Coca-Cola Company", AltName: "Coca-Cola", Category: "beverage", City: "Atlanta", State: "GA"},
	{Name: "PepsiCo, Inc.", AltName: "Pepsi", Category: "beverage", City: "Purchase", State: "NY"},
	{Name: "Ford Motor Company", AltName: "Ford", Category: "automotive", City: "Dearborn", State: "MI"},
	{Name: "General Motors Company", AltName: "GM", Category: "automotive", City: "Detroit", State: "MI"},
	{Name: "First National Bank", Category: "banking", City: "Omaha", State: "NE"},
	{Name: "Riverside National Insurance", Category: "insurance", City: "Riverside", State: "CA"},
	{Name: "Quorvex Industries", Category: "manufacturing", City: "Columbus", State: "OH"},
	{Name: "Quorvex Logistics Group", Category: "logistics", City: "Columbus", State: "OH"},
	{Name: "Zentara Dynamics LLC", AltName: "Zentara", Category: "robotics", City: "Austin", State: "TX"},
	{Name: "Helix & Vane Co", Category: "consulting", City: "Denver", State: "CO"},
	{Name: "Smith Farms Ltd", Category: "agriculture", City: "Lincoln", State: "NE"},
	{Name: "Walker Logistics LLC", Category: "logistics", City: "Memphis", State: "TN"},
}

// Sample lookups run after seeding to show the engine working.
var sampleQueries = []string{
	"Amazon",
	"Microsft",
	"Johnson",
	"Delta",
	"IBM",
	"7 Eleven",
	"Quorvex",
}

var (
	dbPath   = flag.String("db", "", "path to catalog directory (empty runs in memory)")
	seedFile = flag.String("src", "", "optional file with one extra entity name per line")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over non-empty lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

func main() {
	logger := slog.Default()

	opts := []matchbook.ResolverOption{}
	if *dbPath == "" {
		opts = append(opts, matchbook.WithInMemory())
	}

	resolver, err := matchbook.NewResolver(*dbPath, opts...)
	if err != nil {
		logger.Error("failed to open catalog", "err", err)
		os.Exit(1)
	}
	defer resolver.Close()

	ctx := context.Background()

	entities := companies
	if *seedFile != "" {
		lines, err := linesFromFile(*seedFile)
		if err != nil {
			logger.Error("failed to open seed file", "file", *seedFile, "err", err)
			os.Exit(1)
		}
		for name := range lines {
			entities = append(entities, &core.CatalogEntity{Name: name})
		}
	}

	if _, err := resolver.AddEntities(ctx, entities...); err != nil {
		logger.Error("failed to seed catalog", "err", err)
		os.Exit(1)
	}

	count, err := resolver.Store().Count(ctx)
	if err != nil {
		logger.Error("failed to count catalog", "err", err)
		os.Exit(1)
	}
	logger.Info("catalog seeded", "entities", count)

	for _, query := range sampleQueries {
		outcome, err := resolver.FindBestMatch(ctx, query, 3)
		if err != nil {
			logger.Error("match failed", "query", query, "err", err)
			continue
		}
		if outcome.BestMatch != nil {
			logger.Info("resolved",
				"query", query,
				"match", outcome.BestMatch.Name,
				"confidence", outcome.Confidence)
		} else {
			logger.Info("no confident match", "query", query, "candidates", len(outcome.Matches))
		}
	}
}
